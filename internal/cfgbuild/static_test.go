// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package cfgbuild

import (
	"testing"

	"github.com/n42blockchain/evmcfg/internal/block"
	"github.com/n42blockchain/evmcfg/internal/disasm"
)

const addr = "0xabc"

func buildStatic(t *testing.T, code []byte) (*CFG, []*block.BasicBlock) {
	t.Helper()
	prog := disasm.Disassemble(code)
	blocks := block.Partition(prog, addr)
	cfg := BuildStaticContractCFG(addr, prog, blocks)
	return cfg, blocks
}

// S1: single-contract linear bytecode, one block, no edges.
func TestStaticLinearNoEdges(t *testing.T) {
	code := []byte{0x60, 0x01, 0x60, 0x02, 0x01, 0x00} // PUSH1 1 PUSH1 2 ADD STOP
	cfg, blocks := buildStatic(t, code)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if len(cfg.Edges()) != 0 {
		t.Errorf("got %d edges, want 0", len(cfg.Edges()))
	}
	if blocks[0].Terminator().String() != "STOP" {
		t.Errorf("terminator = %s, want STOP", blocks[0].Terminator())
	}
}

// S2: JUMPI with both branches resolvable.
func TestStaticJumpiBothBranches(t *testing.T) {
	// PUSH1 1, PUSH1 6, JUMPI, STOP, JUMPDEST, STOP
	code := []byte{0x60, 0x01, 0x60, 0x06, 0x57, 0x00, 0x5b, 0x00}
	cfg, blocks := buildStatic(t, code)
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}

	edges := cfg.Edges()
	var sawTrue, sawFalse bool
	for _, e := range edges {
		if e.Source.StartPC != 0 {
			continue
		}
		switch e.Kind {
		case EdgeConditionTrue:
			sawTrue = true
			if e.Target.StartPC != 6 {
				t.Errorf("CONDITION_TRUE target pc = %d, want 6", e.Target.StartPC)
			}
		case EdgeConditionFalse:
			sawFalse = true
			if e.Target.StartPC != 5 {
				t.Errorf("CONDITION_FALSE target pc = %d, want 5", e.Target.StartPC)
			}
		}
	}
	if !sawTrue || !sawFalse {
		t.Errorf("expected both CONDITION_TRUE and CONDITION_FALSE edges, got %d edges total", len(edges))
	}
}

// S3: unresolved JUMP target (computed via an unsupported opcode) leaves
// the source block with zero outgoing edges, and it is not pruned
// because it starts at pc 0.
func TestStaticUnresolvedJumpKeepsBlock(t *testing.T) {
	code := []byte{0x54, 0x56} // SLOAD, JUMP
	cfg, blocks := buildStatic(t, code)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if len(cfg.Edges()) != 0 {
		t.Errorf("got %d edges, want 0 (target unresolved)", len(cfg.Edges()))
	}
	if len(cfg.Nodes()) != 1 {
		t.Errorf("block should survive pruning because it starts at pc 0, got %d nodes", len(cfg.Nodes()))
	}
}

// S5: a JUMP whose resolved target equals its own block's start pc
// produces no edge.
func TestStaticSelfLoopSuppressed(t *testing.T) {
	code := []byte{0x60, 0x00, 0x56} // PUSH1 0x00, JUMP
	cfg, _ := buildStatic(t, code)
	if len(cfg.Edges()) != 0 {
		t.Errorf("got %d edges, want 0 (self-loop must be suppressed)", len(cfg.Edges()))
	}
}

// S6: an unreachable, non-pc-0, non-JUMPDEST block is pruned.
func TestStaticUnreachableBlockPruned(t *testing.T) {
	code := []byte{0x00, 0x01, 0x00} // STOP, ADD, STOP
	cfg, blocks := buildStatic(t, code)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if len(cfg.Nodes()) != 1 {
		t.Errorf("got %d nodes after pruning, want 1", len(cfg.Nodes()))
	}
	if _, ok := cfg.NodeAt(NodeKey{ContractAddress: addr, StartPC: 1}); ok {
		t.Error("block starting at pc 1 should have been pruned")
	}
}

// Invariant 7: pruning preserves every JUMPDEST-starting block and the
// block starting at pc 0, even with no incoming edges.
func TestStaticPruningPreservesJumpdestAndPCZero(t *testing.T) {
	// block A: pc0 STOP (no successors). block B: pc1 JUMPDEST, pc2 STOP, unreachable but JUMPDEST-starting.
	code := []byte{0x00, 0x5b, 0x00}
	cfg, _ := buildStatic(t, code)
	if _, ok := cfg.NodeAt(NodeKey{ContractAddress: addr, StartPC: 0}); !ok {
		t.Error("pc 0 block must survive pruning")
	}
	if _, ok := cfg.NodeAt(NodeKey{ContractAddress: addr, StartPC: 1}); !ok {
		t.Error("JUMPDEST-starting block must survive pruning even with no incoming edges")
	}
}

func TestStaticCallFallthroughEdge(t *testing.T) {
	// block0: pc0 CALL (terminator) -> fallthrough pc1 with EdgeCall.
	// block1: pc1 JUMPDEST, pc2 ADD, pc3 JUMP (target unresolvable: CALL precedes it).
	code := []byte{0xf1, 0x5b, 0x01, 0x56}
	cfg, _ := buildStatic(t, code)
	var sawCall bool
	for _, e := range cfg.Edges() {
		if e.Kind == EdgeCall {
			sawCall = true
			if e.Source.StartPC != 0 || e.Target.StartPC != 1 {
				t.Errorf("CALL edge = %v->%v, want 0->1", e.Source.StartPC, e.Target.StartPC)
			}
		}
	}
	if !sawCall {
		t.Error("expected a CALL fall-through edge")
	}
}

func TestStaticCallCodeCollapsesToCallEdge(t *testing.T) {
	// block0: pc0 CALLCODE (terminator) -> fallthrough pc1, kind EdgeCall.
	code := []byte{0xf2, 0x5b, 0x00}
	cfg, _ := buildStatic(t, code)
	var sawCall bool
	for _, e := range cfg.Edges() {
		if e.Kind == EdgeCall {
			sawCall = true
			if e.Source.StartPC != 0 || e.Target.StartPC != 1 {
				t.Errorf("CALLCODE edge = %v->%v, want 0->1", e.Source.StartPC, e.Target.StartPC)
			}
		}
	}
	if !sawCall {
		t.Error("expected CALLCODE to synthesize an EdgeCall fall-through, not a distinct kind")
	}
}
