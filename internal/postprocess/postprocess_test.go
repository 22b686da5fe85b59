// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package postprocess

import (
	"testing"

	"github.com/n42blockchain/evmcfg/internal/block"
	"github.com/n42blockchain/evmcfg/internal/cfgbuild"
	"github.com/n42blockchain/evmcfg/internal/disasm"
)

func cfgFromBlocks(blocks []*block.BasicBlock) *cfgbuild.CFG {
	cfg := cfgbuild.New("0xabc")
	for _, b := range blocks {
		cfg.AddNode(b)
	}
	return cfg
}

func TestFindInterestingNodesFindsSstore(t *testing.T) {
	code := []byte{0x55, 0x00} // SSTORE, STOP
	prog := disasm.Disassemble(code)
	blocks := block.Partition(prog, "0xabc")
	cfg := cfgFromBlocks(blocks)

	matches := FindInterestingNodes(cfg, DefaultInterestingMnemonics)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Mnemonic != "SSTORE" {
		t.Errorf("mnemonic = %s, want SSTORE", matches[0].Mnemonic)
	}
}

func TestFindInterestingNodesNoneWhenAbsent(t *testing.T) {
	code := []byte{0x01, 0x00} // ADD STOP
	prog := disasm.Disassemble(code)
	blocks := block.Partition(prog, "0xabc")
	cfg := cfgFromBlocks(blocks)

	matches := FindInterestingNodes(cfg, DefaultInterestingMnemonics)
	if len(matches) != 0 {
		t.Errorf("got %d matches, want 0", len(matches))
	}
}
