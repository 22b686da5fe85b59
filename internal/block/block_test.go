// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.

package block

import (
	"testing"

	"github.com/n42blockchain/evmcfg/internal/disasm"
	"github.com/n42blockchain/evmcfg/internal/opcode"
)

func TestPartitionSplitsOnTerminatorAndJumpdest(t *testing.T) {
	// pc0: PUSH1 0x04  pc2: JUMP  pc3: JUMPDEST  pc4: STOP
	code := []byte{0x60, 0x04, 0x56, 0x5b, 0x00}
	prog := disasm.Disassemble(code)
	blocks := Partition(prog, "0xabc")

	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].StartPC != 0 || blocks[0].EndPC != 2 {
		t.Errorf("block 0 = [%d,%d], want [0,2]", blocks[0].StartPC, blocks[0].EndPC)
	}
	if blocks[0].Terminator() != opcode.JUMP {
		t.Errorf("block 0 terminator = %s, want JUMP", blocks[0].Terminator())
	}
	if blocks[1].StartPC != 3 || blocks[1].EndPC != 4 {
		t.Errorf("block 1 = [%d,%d], want [3,4]", blocks[1].StartPC, blocks[1].EndPC)
	}
}

func TestPartitionFirstInstructionStartsBlock(t *testing.T) {
	code := []byte{0x01, 0x01, 0x00} // ADD ADD STOP, no terminator until the end
	prog := disasm.Disassemble(code)
	blocks := Partition(prog, "0xabc")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].StartPC != 0 {
		t.Errorf("block 0 StartPC = %d, want 0", blocks[0].StartPC)
	}
}

func TestPartitionTrailingNonTerminatorBlock(t *testing.T) {
	code := []byte{0x00, 0x01, 0x02} // STOP ADD MUL: trailing block has no terminator
	prog := disasm.Disassemble(code)
	blocks := Partition(prog, "0xabc")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[1].EndsInTerminator() {
		t.Error("trailing block should not end in a terminator")
	}
}

func TestPartitionEmpty(t *testing.T) {
	prog := disasm.Disassemble(nil)
	blocks := Partition(prog, "0xabc")
	if blocks != nil {
		t.Errorf("expected nil blocks for empty program, got %d", len(blocks))
	}
}

func TestIndexLookups(t *testing.T) {
	code := []byte{0x60, 0x04, 0x56, 0x5b, 0x00}
	prog := disasm.Disassemble(code)
	blocks := Partition(prog, "0xabc")
	idx := NewIndex(blocks)

	if b, ok := idx.BlockStartingAt(3); !ok || b.StartPC != 3 {
		t.Errorf("BlockStartingAt(3) failed: %v %v", b, ok)
	}
	if _, ok := idx.BlockStartingAt(4); ok {
		t.Error("BlockStartingAt(4) should fail: 4 is not a block start")
	}
	if b, ok := idx.BlockContaining(1); !ok || b.StartPC != 0 {
		t.Errorf("BlockContaining(1) failed: %v %v", b, ok)
	}
	if b, ok := idx.BlockContaining(4); !ok || b.StartPC != 3 {
		t.Errorf("BlockContaining(4) failed: %v %v", b, ok)
	}
	if len(idx.All()) != 2 {
		t.Errorf("All() = %d blocks, want 2", len(idx.All()))
	}
}
