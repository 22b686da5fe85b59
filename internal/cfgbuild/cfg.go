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

// Package cfgbuild owns the CFG data structure and the three builders
// that populate one: the dynamic transaction builder, the dynamic
// per-contract builder, and the static per-contract builder.
package cfgbuild

import "github.com/n42blockchain/evmcfg/internal/block"

// EdgeKind classifies the control-flow relationship an Edge represents.
type EdgeKind int

const (
	EdgeUnknown EdgeKind = iota
	EdgeJump
	EdgeJumpI
	EdgeConditionTrue
	EdgeConditionFalse
	EdgeCall
	EdgeDelegateCall
	EdgeStaticCall
	EdgeCreate
	EdgeReturn
	EdgeDestruct
	EdgeTerminate
	EdgeInvalid
	EdgeSequence
)

var edgeKindNames = map[EdgeKind]string{
	EdgeUnknown:         "UNKNOWN",
	EdgeJump:            "JUMP",
	EdgeJumpI:           "JUMPI",
	EdgeConditionTrue:   "CONDITION_TRUE",
	EdgeConditionFalse:  "CONDITION_FALSE",
	EdgeCall:            "CALL",
	EdgeDelegateCall:    "DELEGATECALL",
	EdgeStaticCall:      "STATICCALL",
	EdgeCreate:          "CREATE",
	EdgeReturn:          "RETURN",
	EdgeDestruct:        "DESTRUCT",
	EdgeTerminate:       "TERMINATE",
	EdgeInvalid:         "INVALID",
	EdgeSequence:        "SEQUENCE",
}

func (k EdgeKind) String() string {
	if name, ok := edgeKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// NodeKey identifies a CFG node by the block it wraps.
type NodeKey struct {
	ContractAddress string
	StartPC         uint64
}

// Node is a CFG vertex wrapping one basic block.
type Node struct {
	Key   NodeKey
	Block *block.BasicBlock
}

// Edge is a CFG arc. IDs are assigned in insertion order starting at 0
// and never reused within a CFG's lifetime.
type Edge struct {
	ID     int
	Source NodeKey
	Target NodeKey
	Kind   EdgeKind
}

// CFG is an ordered collection of Nodes and Edges plus the monotonic
// counter that assigns edge IDs. Nodes are owned by the CFG; removing a
// node cascades to every edge touching it.
type CFG struct {
	Name  string
	nodes []NodeKey
	byKey map[NodeKey]*Node
	edges []*Edge
	nextID int
}

// New creates an empty CFG identified by name (a transaction hash or a
// contract address, depending on the builder).
func New(name string) *CFG {
	return &CFG{
		Name:  name,
		byKey: make(map[NodeKey]*Node),
	}
}

// AddNode inserts a node wrapping b if a node with the same key is not
// already present, and returns the (possibly pre-existing) node for that key.
func (c *CFG) AddNode(b *block.BasicBlock) *Node {
	key := NodeKey{ContractAddress: b.ContractAddress, StartPC: b.StartPC}
	if existing, ok := c.byKey[key]; ok {
		return existing
	}
	n := &Node{Key: key, Block: b}
	c.byKey[key] = n
	c.nodes = append(c.nodes, key)
	return n
}

// NodeAt returns the node at key, if present.
func (c *CFG) NodeAt(key NodeKey) (*Node, bool) {
	n, ok := c.byKey[key]
	return n, ok
}

// AddEdge records an edge from source to target with kind, assigning it
// the next monotonic edge ID. Both source and target must already be
// nodes in this CFG.
func (c *CFG) AddEdge(source, target NodeKey, kind EdgeKind) *Edge {
	e := &Edge{ID: c.nextID, Source: source, Target: target, Kind: kind}
	c.nextID++
	c.edges = append(c.edges, e)
	return e
}

// RemoveNode deletes the node at key along with every edge whose source
// or target is key.
func (c *CFG) RemoveNode(key NodeKey) {
	delete(c.byKey, key)

	for i, k := range c.nodes {
		if k == key {
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			break
		}
	}

	kept := c.edges[:0]
	for _, e := range c.edges {
		if e.Source == key || e.Target == key {
			continue
		}
		kept = append(kept, e)
	}
	c.edges = kept
}

// Nodes returns every node, in insertion order.
func (c *CFG) Nodes() []*Node {
	out := make([]*Node, 0, len(c.nodes))
	for _, k := range c.nodes {
		out = append(out, c.byKey[k])
	}
	return out
}

// Edges returns every edge, in insertion (ID) order.
func (c *CFG) Edges() []*Edge {
	return c.edges
}

// HasEdgeTouching reports whether any edge references key as source or
// target. Exposed mainly for tests asserting RemoveNode's cascade.
func (c *CFG) HasEdgeTouching(key NodeKey) bool {
	for _, e := range c.edges {
		if e.Source == key || e.Target == key {
			return true
		}
	}
	return false
}
