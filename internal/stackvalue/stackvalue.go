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

// Package stackvalue resolves JUMP/JUMPI targets that were computed by a
// concrete, interpretable sequence of stack operations.
//
// The analyzer simulates FORWARD from the start of the contract up to
// (not including) the jump site, on an abstract stack seeded empty. A
// prior, reverse-order simulation in this tool's ancestor produced wrong
// targets whenever a block was preceded by any PUSH/arithmetic the
// reverse scan skipped past; this package always walks forward.
package stackvalue

import (
	"github.com/holiman/uint256"

	"github.com/n42blockchain/evmcfg/internal/disasm"
	"github.com/n42blockchain/evmcfg/internal/opcode"
)

// supported is the closed set of opcodes the analyzer can interpret
// concretely. Any other opcode encountered during simulation aborts
// analysis.
var supported = map[opcode.OpCode]bool{
	opcode.POP: true, opcode.ADD: true, opcode.SUB: true,
	opcode.MUL: true, opcode.DIV: true,
}

func isSupported(op opcode.OpCode) bool {
	return op.IsPush() || op.IsDup() || op.IsSwap() || supported[op]
}

// Resolve simulates prog's instructions strictly before siteOrdinal (the
// position of the JUMP/JUMPI instruction, in disasm.Program.Instructions
// order — not its pc) and returns the resolved top-of-stack as a target
// pc. ok is false if the simulation aborts (unsupported opcode, stack
// underflow) or the stack is empty once simulation reaches the site.
func Resolve(prog *disasm.Program, siteOrdinal int) (target uint64, ok bool) {
	var stack []*uint256.Int

	push := func(v *uint256.Int) {
		stack = append(stack, v)
	}
	pop := func() (*uint256.Int, bool) {
		if len(stack) == 0 {
			return nil, false
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, true
	}
	peek := func(depth int) (*uint256.Int, bool) {
		// depth is 1-indexed from the top.
		i := len(stack) - depth
		if i < 0 {
			return nil, false
		}
		return stack[i], true
	}

	for i := 0; i < siteOrdinal && i < len(prog.Instructions); i++ {
		ins := prog.Instructions[i]
		op := ins.Op

		if !isSupported(op) {
			return 0, false
		}

		switch {
		case op.IsPush():
			push(new(uint256.Int).SetBytes(ins.Immediate))

		case op.IsDup():
			v, okPeek := peek(op.DupDepth())
			if !okPeek {
				return 0, false
			}
			push(new(uint256.Int).Set(v))

		case op.IsSwap():
			n := op.SwapDepth()
			topIdx := len(stack) - 1
			otherIdx := len(stack) - 1 - n
			if topIdx < 0 || otherIdx < 0 {
				return 0, false
			}
			stack[topIdx], stack[otherIdx] = stack[otherIdx], stack[topIdx]

		case op == opcode.POP:
			if _, okPop := pop(); !okPop {
				return 0, false
			}

		case op == opcode.ADD, op == opcode.SUB, op == opcode.MUL, op == opcode.DIV:
			right, okPop := pop()
			if !okPop {
				return 0, false
			}
			left, okPop := pop()
			if !okPop {
				return 0, false
			}
			result := new(uint256.Int)
			switch op {
			case opcode.ADD:
				result.Add(left, right)
			case opcode.SUB:
				result.Sub(left, right)
			case opcode.MUL:
				result.Mul(left, right)
			case opcode.DIV:
				if right.IsZero() {
					result.Clear()
				} else {
					result.Div(left, right)
				}
			}
			push(result)
		}
	}

	top, okPop := pop()
	if !okPop {
		return 0, false
	}
	if !top.IsUint64() {
		return 0, false
	}
	return top.Uint64(), true
}
