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

// Package render turns a CFG into a DOT graph.
package render

import (
	"fmt"
	"strings"

	"github.com/emicklei/dot"

	"github.com/n42blockchain/evmcfg/internal/cfgbuild"
)

// edgeColors is the fixed palette recommended for edge kinds. Not
// contract-critical: a renderer that drops or recolors these still
// produces a valid graph.
var edgeColors = map[cfgbuild.EdgeKind]string{
	cfgbuild.EdgeJump:           "orange",
	cfgbuild.EdgeCall:           "green",
	cfgbuild.EdgeDelegateCall:   "green",
	cfgbuild.EdgeStaticCall:     "green",
	cfgbuild.EdgeReturn:         "blue",
	cfgbuild.EdgeDestruct:       "red",
	cfgbuild.EdgeTerminate:      "grey",
	cfgbuild.EdgeCreate:         "darkgreen",
	cfgbuild.EdgeConditionTrue:  "green",
	cfgbuild.EdgeConditionFalse: "red",
	cfgbuild.EdgeUnknown:        "grey",
	cfgbuild.EdgeSequence:       "black",
	cfgbuild.EdgeInvalid:        "grey",
}

// nodeID renders a stable, DOT-safe identifier for a CFG node.
func nodeID(key cfgbuild.NodeKey) string {
	return fmt.Sprintf("%s_%d", key.ContractAddress, key.StartPC)
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10]
}

func nodeLabel(n *cfgbuild.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\npc [%d, %d]\n", shortAddr(n.Key.ContractAddress), n.Block.StartPC, n.Block.EndPC)
	if len(n.Block.Instructions) > 0 {
		fmt.Fprintf(&b, "term: %s\n", n.Block.Terminator())
	}
	for _, ins := range n.Block.Instructions {
		fmt.Fprintf(&b, "%d: %s\n", ins.PC, ins.Mnemonic())
	}
	return b.String()
}

// CFG renders one CFG as a DOT directed graph. Each node carries the
// shortened contract address, start/end pc, terminator, and full
// instruction list; each edge is labelled with its ID and kind.
func CFG(c *cfgbuild.CFG) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	g.Attr("label", c.Name)

	nodes := make(map[cfgbuild.NodeKey]dot.Node, len(c.Nodes()))
	for _, n := range c.Nodes() {
		id := nodeID(n.Key)
		gn := g.Node(id).Label(nodeLabel(n))
		nodes[n.Key] = gn
	}

	for _, e := range c.Edges() {
		src, ok := nodes[e.Source]
		if !ok {
			continue
		}
		dst, ok := nodes[e.Target]
		if !ok {
			continue
		}
		edge := g.Edge(src, dst).Label(fmt.Sprintf("#%d (%s)", e.ID, e.Kind))
		if color, ok := edgeColors[e.Kind]; ok {
			edge.Attr("color", color)
		}
	}

	return g
}

// transactionPalette cycles through a fixed set of colors to distinguish
// contracts in a multi-contract transaction-level render, supplementing
// the fixed per-kind edge palette with a per-contract node fill.
var transactionPalette = []string{
	"lightblue", "lightyellow", "lightpink", "lightgreen", "lightgrey", "lightcyan",
}

// TransactionCFG renders a dynamic transaction CFG like CFG, additionally
// coloring each node's fill by which contract it belongs to so that a
// multi-contract trace's call boundaries are visually obvious.
func TransactionCFG(c *cfgbuild.CFG) *dot.Graph {
	g := CFG(c)

	colorByAddress := make(map[string]string)
	next := 0
	colorFor := func(addr string) string {
		if color, ok := colorByAddress[addr]; ok {
			return color
		}
		color := transactionPalette[next%len(transactionPalette)]
		colorByAddress[addr] = color
		next++
		return color
	}

	for _, node := range c.Nodes() {
		gn, ok := g.FindNodeById(nodeID(node.Key))
		if !ok {
			continue
		}
		gn.Attr("style", "filled")
		gn.Attr("fillcolor", colorFor(node.Key.ContractAddress))
	}

	return g
}
