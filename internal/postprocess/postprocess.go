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

// Package postprocess scans a built CFG for nodes whose instructions
// include an interesting mnemonic — cross-contract calls or storage
// writes, by default — so a reviewer can jump straight to the blocks
// that matter in a large graph.
package postprocess

import (
	"github.com/n42blockchain/evmcfg/internal/cfgbuild"
)

// DefaultInterestingMnemonics is the default set of opcodes worth
// flagging: cross-contract calls and storage writes.
var DefaultInterestingMnemonics = []string{"CALL", "CALLCODE", "DELEGATECALL", "STATICCALL", "SSTORE"}

// Match is one instruction in one node that matched an interesting
// mnemonic.
type Match struct {
	Node      cfgbuild.NodeKey
	PC        uint64
	Mnemonic  string
}

// FindInterestingNodes scans every node of c for instructions whose
// mnemonic is in mnemonics, returning one Match per hit. Order follows
// CFG node insertion order, then instruction order within a block.
func FindInterestingNodes(c *cfgbuild.CFG, mnemonics []string) []Match {
	wanted := make(map[string]bool, len(mnemonics))
	for _, m := range mnemonics {
		wanted[m] = true
	}

	var matches []Match
	for _, n := range c.Nodes() {
		if n.Block == nil {
			continue
		}
		for _, ins := range n.Block.Instructions {
			if wanted[ins.Mnemonic()] {
				matches = append(matches, Match{
					Node:     n.Key,
					PC:       ins.PC,
					Mnemonic: ins.Mnemonic(),
				})
			}
		}
	}
	return matches
}
