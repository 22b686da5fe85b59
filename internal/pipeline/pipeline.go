// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package pipeline wires the per-transaction fetch -> ingest -> build ->
// render -> persist sequence into a single orchestrated call, the shape
// the CLI's default command drives.
package pipeline

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/n42blockchain/evmcfg/internal/block"
	"github.com/n42blockchain/evmcfg/internal/cfgbuild"
	"github.com/n42blockchain/evmcfg/internal/disasm"
	"github.com/n42blockchain/evmcfg/internal/render"
	"github.com/n42blockchain/evmcfg/internal/rpcclient"
	"github.com/n42blockchain/evmcfg/internal/tracing"
	"github.com/n42blockchain/evmcfg/log"
	evmerrors "github.com/n42blockchain/evmcfg/pkg/errors"
)

// Result bundles every artefact produced for one transaction.
type Result struct {
	Trace          tracing.Trace
	Blocks         []*block.BasicBlock
	TransactionCFG *cfgbuild.CFG
	ContractCFGs   map[string]*cfgbuild.CFG
	StaticCFGs     map[string]*cfgbuild.CFG
}

// Run fetches the transaction, its trace, and the runtime bytecode of
// every contract the trace touches, then builds and persists all CFG
// products under outputDir/<txHash without its 0x prefix>/.
func Run(ctx context.Context, client *rpcclient.Client, txHash, outputDir string) (*Result, error) {
	runLog := log.New("run", uuid.New().String(), "tx", txHash)
	runLog.Info("starting cfg reconstruction")

	tx, err := client.GetTransactionByHash(ctx, txHash)
	if err != nil {
		return nil, evmerrors.Wrapf(err, "fetch transaction %s", txHash)
	}
	destination := ""
	if tx.To != nil {
		destination = *tx.To
	}

	rawTrace, err := client.TraceTransaction(ctx, txHash)
	if err != nil {
		return nil, evmerrors.Wrapf(err, "fetch trace %s", txHash)
	}

	rawSteps := make([]tracing.RawStep, len(rawTrace.StructLogs))
	for i, sl := range rawTrace.StructLogs {
		rawSteps[i] = tracing.RawStep{PC: sl.PC, Op: sl.Op, Depth: sl.Depth, Stack: sl.Stack}
	}
	trace := tracing.Ingest(rawSteps, destination)

	addresses := distinctAddresses(trace)

	programs := make(map[string]*disasm.Program, len(addresses))
	var allBlocks []*block.BasicBlock
	blockIndexes := make(map[string]*block.Index, len(addresses))

	for _, addr := range addresses {
		codeHex, err := client.GetCode(ctx, addr)
		if err != nil {
			return nil, evmerrors.Wrapf(err, "fetch code for %s", addr)
		}
		code, err := decodeHex(codeHex)
		if err != nil {
			return nil, evmerrors.Wrapf(evmerrors.ErrMalformedTrace, "decode code for %s", addr)
		}

		prog := disasm.Disassemble(code)
		programs[addr] = prog

		blocks := block.Partition(prog, addr)
		allBlocks = append(allBlocks, blocks...)
		blockIndexes[addr] = block.NewIndex(blocks)
	}

	lookup := func(address string, pc uint64) (*block.BasicBlock, bool) {
		idx, ok := blockIndexes[address]
		if !ok {
			return nil, false
		}
		return idx.BlockStartingAt(pc)
	}

	txCFG := cfgbuild.BuildDynamicTransactionCFG(txHash, trace, lookup)

	contractCFGs := make(map[string]*cfgbuild.CFG, len(addresses))
	staticCFGs := make(map[string]*cfgbuild.CFG, len(addresses))
	for _, addr := range addresses {
		steps := stepsForContract(trace, addr)
		contractCFGs[addr] = cfgbuild.BuildDynamicContractCFG(addr, steps, lookup)
		staticCFGs[addr] = cfgbuild.BuildStaticContractCFG(addr, programs[addr], blockIndexes[addr].All())
	}

	result := &Result{
		Trace:          trace,
		Blocks:         allBlocks,
		TransactionCFG: txCFG,
		ContractCFGs:   contractCFGs,
		StaticCFGs:     staticCFGs,
	}

	if err := persist(result, txHash, outputDir); err != nil {
		return nil, evmerrors.Wrapf(err, "persist artefacts for %s", txHash)
	}

	runLog.Info("built cfg artefacts", "contracts", len(addresses))
	return result, nil
}

func distinctAddresses(trace tracing.Trace) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range trace.Steps {
		if s.ContractAddress == "" || seen[s.ContractAddress] {
			continue
		}
		seen[s.ContractAddress] = true
		out = append(out, s.ContractAddress)
	}
	return out
}

func stepsForContract(trace tracing.Trace, address string) []tracing.Step {
	var out []tracing.Step
	for _, s := range trace.Steps {
		if s.ContractAddress == address {
			out = append(out, s)
		}
	}
	return out
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

func persist(r *Result, txHash, outputDir string) error {
	dir := filepath.Join(outputDir, strings.TrimPrefix(txHash, "0x"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	traceJSON, err := json.MarshalIndent(r.Trace, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "trace.json"), traceJSON, 0o644); err != nil {
		return err
	}

	blocksJSON, err := json.MarshalIndent(r.Blocks, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "blocks.json"), blocksJSON, 0o644); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, "transaction_cfg.dot"),
		[]byte(render.TransactionCFG(r.TransactionCFG).String()), 0o644); err != nil {
		return err
	}

	for addr, cfg := range r.ContractCFGs {
		name := fmt.Sprintf("contract_%s_cfg.dot", shortAddr(addr))
		if err := os.WriteFile(filepath.Join(dir, name), []byte(render.CFG(cfg).String()), 0o644); err != nil {
			return err
		}
	}
	for addr, cfg := range r.StaticCFGs {
		name := fmt.Sprintf("contract_%s_static_cfg.dot", shortAddr(addr))
		if err := os.WriteFile(filepath.Join(dir, name), []byte(render.CFG(cfg).String()), 0o644); err != nil {
			return err
		}
	}

	return nil
}

func shortAddr(addr string) string {
	s := strings.TrimPrefix(addr, "0x")
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
