// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package render

import (
	"strings"
	"testing"

	"github.com/n42blockchain/evmcfg/internal/block"
	"github.com/n42blockchain/evmcfg/internal/cfgbuild"
	"github.com/n42blockchain/evmcfg/internal/disasm"
)

func TestCFGRenderContainsNodesAndEdges(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x06, 0x57, 0x00, 0x5b, 0x00}
	prog := disasm.Disassemble(code)
	blocks := block.Partition(prog, "0xabc")
	cfg := cfgbuild.BuildStaticContractCFG("0xabc", prog, blocks)

	out := render(cfg)
	if !strings.Contains(out, "digraph") {
		t.Error("expected DOT output to contain a digraph declaration")
	}
	if !strings.Contains(out, "CONDITION_TRUE") || !strings.Contains(out, "CONDITION_FALSE") {
		t.Error("expected edge labels to include both condition kinds")
	}
}

func render(cfg *cfgbuild.CFG) string {
	return CFG(cfg).String()
}

func TestTransactionCFGAppliesFillColor(t *testing.T) {
	cfg := cfgbuild.New("tx1")
	a := &block.BasicBlock{ContractAddress: "0xaaaa", StartPC: 0, EndPC: 0}
	cfg.AddNode(a)

	out := TransactionCFG(cfg).String()
	if !strings.Contains(out, "fillcolor") {
		t.Error("expected transaction render to set fillcolor on nodes")
	}
}
