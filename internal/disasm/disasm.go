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

// Package disasm turns raw EVM bytecode into a PC-indexed instruction
// stream, handling the variable-width PUSH immediates that make a plain
// byte-offset walk insufficient.
package disasm

import "github.com/n42blockchain/evmcfg/internal/opcode"

// Instruction is a single decoded EVM instruction at a fixed program counter.
type Instruction struct {
	PC        uint64
	Op        opcode.OpCode
	Immediate []byte // non-nil only for PUSH1..PUSH32
}

// Mnemonic returns the instruction's opcode name.
func (ins Instruction) Mnemonic() string {
	return ins.Op.String()
}

// Len returns the instruction's encoded width in bytes, including any
// PUSH immediate.
func (ins Instruction) Len() uint64 {
	return uint64(ins.Op.Length())
}

// NextPC returns the program counter of the instruction immediately
// following ins.
func (ins Instruction) NextPC() uint64 {
	return ins.PC + ins.Len()
}

// Program is the result of disassembling one contract's bytecode: an
// ordered instruction stream plus an index from pc to position in that
// stream, for O(1) lookup of "the instruction starting at pc".
type Program struct {
	Code         []byte
	Instructions []Instruction
	pcIndex      map[uint64]int
}

// At returns the instruction starting at pc and true, or the zero
// Instruction and false if pc does not begin an instruction in this
// program (e.g. it falls inside a PUSH immediate, or is out of range).
func (p *Program) At(pc uint64) (Instruction, bool) {
	idx, ok := p.pcIndex[pc]
	if !ok {
		return Instruction{}, false
	}
	return p.Instructions[idx], true
}

// IndexOf returns the position of the instruction starting at pc within
// Instructions, or -1 if none does.
func (p *Program) IndexOf(pc uint64) int {
	idx, ok := p.pcIndex[pc]
	if !ok {
		return -1
	}
	return idx
}

// Disassemble walks code left to right, decoding one instruction per
// iteration. PUSH1..PUSH32 consume their immediate bytes and advance pc by
// n+1; every other opcode advances pc by 1. A byte that is not a
// recognized opcode is still emitted, as a single-byte INVALID
// instruction — disassembly never aborts partway through. If code ends in
// the middle of what would be a PUSH immediate, the immediate is
// truncated to the bytes actually present.
func Disassemble(code []byte) *Program {
	prog := &Program{
		Code:    code,
		pcIndex: make(map[uint64]int, len(code)),
	}

	pc := uint64(0)
	for int(pc) < len(code) {
		op := opcode.OpCode(code[pc])
		ins := Instruction{PC: pc, Op: op}

		if n := op.PushSize(); n > 0 {
			start := pc + 1
			end := start + uint64(n)
			if end > uint64(len(code)) {
				end = uint64(len(code))
			}
			ins.Immediate = append([]byte(nil), code[start:end]...)
		}

		prog.pcIndex[pc] = len(prog.Instructions)
		prog.Instructions = append(prog.Instructions, ins)
		pc = ins.NextPC()
	}

	return prog
}

// Reassemble reconstructs the original byte sequence from an instruction
// stream by concatenating each instruction's opcode byte and immediate in
// order. Disassemble followed by Reassemble reproduces the input
// byte-for-byte as long as the input contained no truncated trailing PUSH.
func Reassemble(instructions []Instruction) []byte {
	var out []byte
	for _, ins := range instructions {
		out = append(out, byte(ins.Op))
		out = append(out, ins.Immediate...)
	}
	return out
}
