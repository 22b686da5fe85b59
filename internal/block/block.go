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

// Package block partitions a disassembled instruction stream into basic
// blocks: syntactic runs of instructions that end at a terminator or just
// before a JUMPDEST.
package block

import (
	"github.com/n42blockchain/evmcfg/internal/disasm"
	"github.com/n42blockchain/evmcfg/internal/opcode"
)

// BasicBlock is a contiguous, non-empty run of instructions belonging to
// one contract. Blocks are immutable once built.
type BasicBlock struct {
	ContractAddress string
	StartPC         uint64
	EndPC           uint64 // pc of the last instruction in the block
	Instructions    []disasm.Instruction
}

// Terminator returns the opcode of the block's final instruction.
func (b BasicBlock) Terminator() opcode.OpCode {
	return b.Instructions[len(b.Instructions)-1].Op
}

// EndsInTerminator reports whether the block ends because its last
// instruction is a terminator opcode, as opposed to running off the end
// of the contract.
func (b BasicBlock) EndsInTerminator() bool {
	return b.Terminator().IsTerminator()
}

// Partition splits prog's instructions into basic blocks for the given
// contract address.
//
// Split rules, evaluated per instruction in order:
//   - the current block ends at this instruction if its opcode is a
//     terminator;
//   - the current block ends before this instruction (a new block starts)
//     if its opcode is JUMPDEST;
//   - otherwise the instruction extends the current block.
//
// The first instruction always begins a block. If the stream is
// non-empty and its last instruction is not a terminator, the trailing
// block still ends there (it simply runs off the end of the contract).
func Partition(prog *disasm.Program, contractAddress string) []*BasicBlock {
	if len(prog.Instructions) == 0 {
		return nil
	}

	var blocks []*BasicBlock
	var cur []disasm.Instruction

	flush := func() {
		if len(cur) == 0 {
			return
		}
		blocks = append(blocks, &BasicBlock{
			ContractAddress: contractAddress,
			StartPC:         cur[0].PC,
			EndPC:           cur[len(cur)-1].PC,
			Instructions:    cur,
		})
		cur = nil
	}

	for _, ins := range prog.Instructions {
		if ins.Op == opcode.JUMPDEST {
			flush()
		}
		cur = append(cur, ins)
		if ins.Op.IsTerminator() {
			flush()
		}
	}
	flush()

	return blocks
}

// Index provides map-backed, near-constant-time lookup of a block by its
// exact start pc, plus lookup of the block containing a given pc by a
// linear scan over the blocks.
type Index struct {
	byStart map[uint64]*BasicBlock
	blocks  []*BasicBlock
}

// NewIndex builds an Index over blocks.
func NewIndex(blocks []*BasicBlock) *Index {
	idx := &Index{
		byStart: make(map[uint64]*BasicBlock, len(blocks)),
		blocks:  blocks,
	}
	for _, b := range blocks {
		idx.byStart[b.StartPC] = b
	}
	return idx
}

// BlockStartingAt returns the block whose StartPC equals pc, if any.
func (idx *Index) BlockStartingAt(pc uint64) (*BasicBlock, bool) {
	b, ok := idx.byStart[pc]
	return b, ok
}

// BlockContaining returns the block that owns pc, i.e. StartPC <= pc <=
// last instruction's pc. It scans the blocks in order and returns the
// first match.
func (idx *Index) BlockContaining(pc uint64) (*BasicBlock, bool) {
	for _, b := range idx.blocks {
		if pc >= b.StartPC && pc <= b.EndPC {
			return b, true
		}
	}
	return nil, false
}

// All returns every block in the index, in the order Partition produced
// them.
func (idx *Index) All() []*BasicBlock {
	return idx.blocks
}
