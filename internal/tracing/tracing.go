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

// Package tracing normalizes raw structured-log traces (the debug_trace*
// wire format) into the Step/Trace shapes the CFG builders consume, and
// tracks which contract address is executing at each step.
package tracing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/n42blockchain/evmcfg/internal/opcode"
)

// RawStep is one structured-log entry as it arrives over the wire, named
// and typed after StructLogRes.
type RawStep struct {
	PC    uint64   `json:"pc"`
	Op    string   `json:"op"`
	Depth int      `json:"depth"`
	Stack []string `json:"stack"`
}

// Step is a single normalized execution step, labelled with the contract
// address whose code is executing.
type Step struct {
	ContractAddress string
	PC              string // "0x"-prefixed, no zero-padding
	Op              opcode.OpCode
	Mnemonic        string
	Stack           []string // each "0x"-prefixed; bare "0x" for an empty item
	Depth           int
}

// Trace is the normalized, ordered step stream for one transaction.
type Trace struct {
	Steps []Step
}

// NormalizeAddress lowercases a 20-byte hex address and ensures a "0x"
// prefix. An address that cannot be parsed as 20 bytes of hex normalizes
// to the empty string.
func NormalizeAddress(raw string) string {
	s := strings.ToLower(strings.TrimPrefix(raw, "0x"))
	if len(s) != 40 {
		return ""
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return ""
		}
	}
	return "0x" + s
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')
}

// NormalizePC renders pc as an unpadded "0x"-prefixed hex string.
func NormalizePC(pc uint64) string {
	return "0x" + strconv.FormatUint(pc, 16)
}

// ParsePC parses a normalized pc string back into a uint64.
func ParsePC(s string) (uint64, error) {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return 0, fmt.Errorf("tracing: empty pc string")
	}
	return strconv.ParseUint(s, 16, 64)
}

// NormalizeStackItem normalizes one raw stack entry: "0x"-prefixed, with
// an empty raw value mapping to the bare string "0x".
func NormalizeStackItem(raw string) string {
	if raw == "" {
		return "0x"
	}
	if strings.HasPrefix(raw, "0x") {
		return raw
	}
	return "0x" + raw
}

// callStack tracks the chain of executing contract addresses. The top of
// the stack is the address whose code is currently running.
type callStack struct {
	addrs []string
}

func newCallStack(destination string) *callStack {
	return &callStack{addrs: []string{destination}}
}

func (cs *callStack) current() string {
	return cs.addrs[len(cs.addrs)-1]
}

func (cs *callStack) push(addr string) {
	cs.addrs = append(cs.addrs, addr)
}

func (cs *callStack) pop() {
	if len(cs.addrs) > 1 {
		cs.addrs = cs.addrs[:len(cs.addrs)-1]
	}
}

func (cs *callStack) depth() int {
	return len(cs.addrs)
}

// Ingest normalizes rawSteps into a Trace, tracking which contract
// address is executing across CALL-family calls and the
// STOP/RETURN/REVERT/INVALID/SELFDESTRUCT steps that end a callee frame.
//
// Each step is emitted labelled with the address executing *before* the
// step's opcode runs, since CALL/CALLCODE/DELEGATECALL/STATICCALL still
// execute in the caller's frame; the callee's frame begins with the next
// step. CREATE/CREATE2 leave the current address unchanged — the new
// contract's address is not observable from the step alone, a known
// limitation of call-stack tracking from structured logs.
func Ingest(rawSteps []RawStep, destination string) Trace {
	cs := newCallStack(NormalizeAddress(destination))
	var steps []Step

	for _, raw := range rawSteps {
		op, _ := opcode.ByName(strings.ToUpper(raw.Op))

		// Wire order is bottom-first (top-of-stack last); Step.Stack is
		// top-first, so the copy reverses it.
		stack := make([]string, len(raw.Stack))
		for i, item := range raw.Stack {
			stack[len(raw.Stack)-1-i] = NormalizeStackItem(item)
		}

		steps = append(steps, Step{
			ContractAddress: cs.current(),
			PC:              NormalizePC(raw.PC),
			Op:              op,
			Mnemonic:        op.String(),
			Stack:           stack,
			Depth:           raw.Depth,
		})

		switch {
		case op.IsCallFamily():
			if len(raw.Stack) >= 2 {
				callee := NormalizeAddress(stripHexPad(raw.Stack[len(raw.Stack)-2]))
				cs.push(callee)
			} else {
				cs.push("")
			}

		case op.IsCreateFamily():
			// current unchanged; see doc comment.

		case op == opcode.STOP, op == opcode.RETURN, op == opcode.REVERT,
			op == opcode.INVALID, op == opcode.SELFDESTRUCT:
			if cs.depth() > 1 {
				cs.pop()
			}
		}
	}

	return Trace{Steps: steps}
}

// stripHexPad trims a stack item down to its trailing 40 hex characters,
// since an address pushed as a full 32-byte stack word is left-padded
// with zeros.
func stripHexPad(raw string) string {
	s := strings.TrimPrefix(raw, "0x")
	if len(s) > 40 {
		s = s[len(s)-40:]
	}
	return s
}
