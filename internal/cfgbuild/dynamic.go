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

package cfgbuild

import (
	"github.com/n42blockchain/evmcfg/internal/block"
	"github.com/n42blockchain/evmcfg/internal/opcode"
	"github.com/n42blockchain/evmcfg/internal/tracing"
	"github.com/n42blockchain/evmcfg/log"
)

// BlockLookup resolves a (contract address, start pc) pair to the
// BasicBlock that begins there, across every contract touched by a
// trace.
type BlockLookup func(contractAddress string, startPC uint64) (*block.BasicBlock, bool)

func terminatorEdgeKind(op opcode.OpCode) EdgeKind {
	switch op {
	case opcode.JUMP, opcode.JUMPI:
		return EdgeJump
	case opcode.CALL, opcode.CALLCODE, opcode.DELEGATECALL, opcode.STATICCALL:
		return EdgeCall
	case opcode.RETURN, opcode.REVERT:
		return EdgeReturn
	case opcode.SELFDESTRUCT:
		return EdgeDestruct
	case opcode.STOP, opcode.INVALID:
		return EdgeTerminate
	case opcode.CREATE, opcode.CREATE2:
		return EdgeCreate
	default:
		return EdgeUnknown
	}
}

// BuildDynamicTransactionCFG walks trace's full step stream (potentially
// spanning many contracts) and produces one CFG whose nodes are the
// basic blocks actually exercised and whose edges are the observed
// terminator-to-successor transitions.
//
// A step referencing no known (contract, start_pc) is logged and
// skipped; the walk continues from the next step rather than aborting.
func BuildDynamicTransactionCFG(name string, trace tracing.Trace, lookup BlockLookup) *CFG {
	return buildDynamic(name, trace.Steps, lookup)
}

// BuildDynamicContractCFG is identical to BuildDynamicTransactionCFG
// except the caller has already filtered trace down to one contract's
// steps; the CFG's identifier is the contract address rather than a
// transaction hash.
func BuildDynamicContractCFG(contractAddress string, steps []tracing.Step, lookup BlockLookup) *CFG {
	return buildDynamic(contractAddress, steps, lookup)
}

func buildDynamic(name string, steps []tracing.Step, lookup BlockLookup) *CFG {
	cfg := New(name)
	if len(steps) == 0 {
		return cfg
	}

	pc0, err := tracing.ParsePC(steps[0].PC)
	if err != nil {
		log.Warn("dynamic cfg: unparseable pc on first step", "pc", steps[0].PC)
		return cfg
	}
	curBlock, ok := lookup(steps[0].ContractAddress, pc0)
	if !ok {
		log.Warn("dynamic cfg: unknown starting block",
			"address", steps[0].ContractAddress, "pc", steps[0].PC)
		return cfg
	}
	curNode := cfg.AddNode(curBlock)

	for i := 1; i < len(steps); i++ {
		prev := steps[i-1]
		if !prev.Op.IsTerminator() {
			continue
		}

		step := steps[i]
		pc, err := tracing.ParsePC(step.PC)
		if err != nil {
			log.Warn("dynamic cfg: unparseable pc", "pc", step.PC)
			continue
		}

		targetBlock, ok := lookup(step.ContractAddress, pc)
		if !ok {
			log.Warn("dynamic cfg: step references unknown basic block",
				"address", step.ContractAddress, "pc", step.PC)
			continue
		}

		targetNode := cfg.AddNode(targetBlock)
		cfg.AddEdge(curNode.Key, targetNode.Key, terminatorEdgeKind(prev.Op))
		curNode = targetNode
	}

	return cfg
}
