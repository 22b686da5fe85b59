// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package cfgbuild

import (
	"testing"

	"github.com/n42blockchain/evmcfg/internal/block"
	"github.com/n42blockchain/evmcfg/internal/tracing"
)

func makeBlock(contractAddress string, startPC, endPC uint64) *block.BasicBlock {
	return &block.BasicBlock{
		ContractAddress: contractAddress,
		StartPC:         startPC,
		EndPC:           endPC,
	}
}

// S4: cross-contract CALL — the dynamic transaction CFG has exactly one
// CALL edge between blocks of different contracts.
func TestDynamicTransactionCrossContractCall(t *testing.T) {
	caller := "0xaaaa"
	callee := "0xbbbb"

	blocks := map[string]*block.BasicBlock{
		caller + ":0": makeBlock(caller, 0, 0),
		callee + ":0": makeBlock(callee, 0, 0),
	}
	lookup := func(address string, pc uint64) (*block.BasicBlock, bool) {
		b, ok := blocks[address+":"+tracing.NormalizePC(pc)[2:]]
		return b, ok
	}

	steps := []tracing.Step{
		{ContractAddress: caller, PC: "0x0", Op: 0xf1, Mnemonic: "CALL"},
		{ContractAddress: callee, PC: "0x0", Op: 0x00, Mnemonic: "STOP"},
	}

	cfg := BuildDynamicTransactionCFG("tx1", tracing.Trace{Steps: steps}, lookup)

	var callEdges int
	for _, e := range cfg.Edges() {
		if e.Kind == EdgeCall {
			callEdges++
			if e.Source.ContractAddress != caller || e.Target.ContractAddress != callee {
				t.Errorf("CALL edge crosses %s -> %s, want %s -> %s",
					e.Source.ContractAddress, e.Target.ContractAddress, caller, callee)
			}
		}
	}
	if callEdges != 1 {
		t.Errorf("got %d CALL edges, want exactly 1", callEdges)
	}
}

func TestDynamicTransactionSkipsUnknownBlock(t *testing.T) {
	contract := "0xaaaa"
	blocks := map[uint64]*block.BasicBlock{
		0: makeBlock(contract, 0, 0),
	}
	lookup := func(address string, pc uint64) (*block.BasicBlock, bool) {
		b, ok := blocks[pc]
		return b, ok
	}

	steps := []tracing.Step{
		{ContractAddress: contract, PC: "0x0", Op: 0x00, Mnemonic: "STOP"},
		{ContractAddress: contract, PC: "0x99", Mnemonic: "UNKNOWN"},
	}

	cfg := BuildDynamicTransactionCFG("tx1", tracing.Trace{Steps: steps}, lookup)
	if len(cfg.Edges()) != 0 {
		t.Errorf("got %d edges, want 0 (unknown block should be skipped, not aborted)", len(cfg.Edges()))
	}
	if len(cfg.Nodes()) != 1 {
		t.Errorf("got %d nodes, want 1 (only the resolvable starting block)", len(cfg.Nodes()))
	}
}
