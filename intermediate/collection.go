// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intermediate

import (
	"iter"
	"slices"
)

var emptyCollection = &Collection{readOnly: true}

// Collection is the ordered list of a node's children.
//
// The zero value is an empty, mutable collection. Collections returned by
// leaf nodes are read-only, and mutating them panics.
type Collection struct {
	nodes    []Node
	readOnly bool

	// Incremented on every structural change. References use it to tell
	// whether a cached index is still valid.
	gen uint64
}

// NewCollection returns a new mutable collection containing nodes.
func NewCollection(nodes ...Node) *Collection {
	c := new(Collection)
	c.Add(nodes...)
	return c
}

// ReadOnly returns whether this collection rejects mutations.
func (c *Collection) ReadOnly() bool {
	return c.readOnly
}

// Len returns the number of nodes in this collection.
func (c *Collection) Len() int {
	return len(c.nodes)
}

// At returns the nth node. Panics if n is out of bounds.
func (c *Collection) At(n int) Node {
	return c.nodes[n]
}

// IndexOf returns the index of node in this collection, comparing by
// identity, or -1 if it is not present.
func (c *Collection) IndexOf(node Node) int {
	for i, n := range c.nodes {
		if n == node {
			return i
		}
	}
	return -1
}

// All returns an iterator over the nodes in this collection and their
// indices.
//
// Mutating the collection during iteration is not supported.
func (c *Collection) All() iter.Seq2[int, Node] {
	return slices.All(c.nodes)
}

// Values returns an iterator over the nodes in this collection.
func (c *Collection) Values() iter.Seq[Node] {
	return slices.Values(c.nodes)
}

// Backward returns an iterator over the nodes in this collection in reverse
// order.
func (c *Collection) Backward() iter.Seq2[int, Node] {
	return slices.Backward(c.nodes)
}

// Add appends nodes to the end of the collection.
func (c *Collection) Add(nodes ...Node) {
	c.mutate()
	for _, n := range nodes {
		c.nodes = append(c.nodes, mustNode(n))
	}
}

// AddAll appends every node in that to the end of this collection.
func (c *Collection) AddAll(that *Collection) {
	if that == nil {
		return
	}
	c.Add(slices.Clone(that.nodes)...)
}

// Insert inserts nodes so that the first of them is at index n.
func (c *Collection) Insert(n int, nodes ...Node) {
	c.mutate()
	for _, node := range nodes {
		mustNode(node)
	}
	c.nodes = slices.Insert(c.nodes, n, nodes...)
}

// SetAt replaces the nth node.
func (c *Collection) SetAt(n int, node Node) {
	c.mutate()
	c.nodes[n] = mustNode(node)
}

// RemoveAt removes the nth node.
func (c *Collection) RemoveAt(n int) {
	c.mutate()
	c.nodes = slices.Delete(c.nodes, n, n+1)
}

// Remove removes node, comparing by identity. Returns whether it was found.
func (c *Collection) Remove(node Node) bool {
	i := c.IndexOf(node)
	if i < 0 {
		return false
	}
	c.RemoveAt(i)
	return true
}

// Clear removes every node from this collection.
func (c *Collection) Clear() {
	c.mutate()
	clear(c.nodes)
	c.nodes = c.nodes[:0]
}

func (c *Collection) mutate() {
	if c.readOnly {
		panic("razorcompile/intermediate: mutated a read-only collection")
	}
	c.gen++
}

func mustNode(n Node) Node {
	if n == nil {
		panic("razorcompile/intermediate: nil node added to collection")
	}
	return n
}
