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
	"github.com/n42blockchain/evmcfg/internal/disasm"
	"github.com/n42blockchain/evmcfg/internal/opcode"
	"github.com/n42blockchain/evmcfg/internal/stackvalue"
)

// BuildStaticContractCFG derives a complete CFG from bytecode alone: one
// node per basic block, plus edges synthesized from each block's
// terminator per the opcode-class rules (fall-through pc arithmetic,
// CONDITION_TRUE/FALSE for JUMPI, resolved JUMP targets, self-loop
// suppression), followed by a single-pass unreachable-block pruning.
func BuildStaticContractCFG(contractAddress string, prog *disasm.Program, blocks []*block.BasicBlock) *CFG {
	cfg := New(contractAddress)
	idx := block.NewIndex(blocks)

	// Phase 1: one node per block.
	for _, b := range blocks {
		cfg.AddNode(b)
	}

	// Phase 2: edge synthesis.
	for _, b := range blocks {
		synthesizeEdges(cfg, prog, idx, b)
	}

	// Phase 3: single-pass unreachable-block pruning.
	pruneUnreachable(cfg, blocks)

	return cfg
}

func synthesizeEdges(cfg *CFG, prog *disasm.Program, idx *block.Index, b *block.BasicBlock) {
	term := b.Instructions[len(b.Instructions)-1]
	op := term.Op
	sourceKey := NodeKey{ContractAddress: b.ContractAddress, StartPC: b.StartPC}

	addEdgeTo := func(targetPC uint64, kind EdgeKind) {
		target, ok := idx.BlockStartingAt(targetPC)
		if !ok {
			return // out-of-range / non-block-start successor: silently dropped
		}
		targetKey := NodeKey{ContractAddress: b.ContractAddress, StartPC: target.StartPC}
		if targetKey == sourceKey {
			return // self-loop suppression
		}
		cfg.AddEdge(sourceKey, targetKey, kind)
	}

	switch op {
	case opcode.JUMPI:
		fallThrough := term.NextPC()
		addEdgeTo(fallThrough, EdgeConditionFalse)
		if tgt, ok := resolveTarget(prog, term.PC); ok {
			addEdgeTo(tgt, EdgeConditionTrue)
		}

	case opcode.JUMP:
		if tgt, ok := resolveTarget(prog, term.PC); ok {
			addEdgeTo(tgt, EdgeJump)
		}

	case opcode.STOP, opcode.RETURN, opcode.REVERT, opcode.INVALID, opcode.SELFDESTRUCT:
		// no successors

	case opcode.CALL, opcode.CALLCODE:
		addEdgeTo(term.NextPC(), EdgeCall)
	case opcode.DELEGATECALL:
		addEdgeTo(term.NextPC(), EdgeDelegateCall)
	case opcode.STATICCALL:
		addEdgeTo(term.NextPC(), EdgeStaticCall)
	case opcode.CREATE, opcode.CREATE2:
		addEdgeTo(term.NextPC(), EdgeCreate)

	default:
		// block ended implicitly at a JUMPDEST-introduced split
		addEdgeTo(term.NextPC(), EdgeSequence)
	}
}

// resolveTarget locates the instruction ordinal for the JUMP/JUMPI at pc
// and hands it to the stack value analyzer.
func resolveTarget(prog *disasm.Program, sitePC uint64) (uint64, bool) {
	ordinal := prog.IndexOf(sitePC)
	if ordinal < 0 {
		return 0, false
	}
	return stackvalue.Resolve(prog, ordinal)
}

// pruneUnreachable removes every node that has no incoming edge, does
// not start at pc 0, and does not begin with a JUMPDEST. It runs exactly
// once: a node that becomes unreachable only after a neighbour is
// removed in this same pass is not re-examined.
func pruneUnreachable(cfg *CFG, blocks []*block.BasicBlock) {
	hasIncoming := make(map[NodeKey]bool, len(blocks))
	for _, e := range cfg.Edges() {
		hasIncoming[e.Target] = true
	}

	var toRemove []NodeKey
	for _, b := range blocks {
		key := NodeKey{ContractAddress: b.ContractAddress, StartPC: b.StartPC}
		if hasIncoming[key] {
			continue
		}
		if b.StartPC == 0 {
			continue
		}
		if b.Instructions[0].Op == opcode.JUMPDEST {
			continue
		}
		toRemove = append(toRemove, key)
	}

	for _, key := range toRemove {
		cfg.RemoveNode(key)
	}
}
