// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package cfgbuild

import (
	"testing"

	"github.com/n42blockchain/evmcfg/internal/block"
	"github.com/n42blockchain/evmcfg/internal/disasm"
)

func TestAddNodeDedup(t *testing.T) {
	code := []byte{0x00}
	prog := disasm.Disassemble(code)
	blocks := block.Partition(prog, "0xabc")

	cfg := New("tx1")
	n1 := cfg.AddNode(blocks[0])
	n2 := cfg.AddNode(blocks[0])
	if n1 != n2 {
		t.Error("AddNode should return the same node for an already-present key")
	}
	if len(cfg.Nodes()) != 1 {
		t.Errorf("got %d nodes, want 1", len(cfg.Nodes()))
	}
}

func TestAddEdgeMonotonicIDs(t *testing.T) {
	cfg := New("tx1")
	a := NodeKey{ContractAddress: "0xa", StartPC: 0}
	b := NodeKey{ContractAddress: "0xa", StartPC: 1}
	c := NodeKey{ContractAddress: "0xa", StartPC: 2}

	e1 := cfg.AddEdge(a, b, EdgeJump)
	e2 := cfg.AddEdge(b, c, EdgeSequence)
	if e1.ID != 0 || e2.ID != 1 {
		t.Errorf("edge IDs = %d, %d, want 0, 1", e1.ID, e2.ID)
	}
	if len(cfg.Edges()) != 2 {
		t.Errorf("got %d edges, want 2", len(cfg.Edges()))
	}
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	cfg := New("tx1")
	a := NodeKey{ContractAddress: "0xa", StartPC: 0}
	b := NodeKey{ContractAddress: "0xa", StartPC: 1}
	c := NodeKey{ContractAddress: "0xa", StartPC: 2}
	cfg.AddEdge(a, b, EdgeJump)
	cfg.AddEdge(b, c, EdgeSequence)

	cfg.RemoveNode(b)

	if cfg.HasEdgeTouching(b) {
		t.Error("removing a node should remove every edge touching it")
	}
	if len(cfg.Edges()) != 0 {
		t.Errorf("got %d edges after removal, want 0", len(cfg.Edges()))
	}
}

func TestEdgeKindString(t *testing.T) {
	if EdgeCall.String() != "CALL" {
		t.Errorf("EdgeCall.String() = %s, want CALL", EdgeCall.String())
	}
	if EdgeKind(999).String() != "UNKNOWN" {
		t.Errorf("unrecognized EdgeKind should stringify as UNKNOWN")
	}
}
