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
	"errors"
	"fmt"
)

var (
	// ErrNilParent is returned when editing through a reference with no
	// parent.
	ErrNilParent = errors.New("reference has no parent")
	// ErrReadOnly is returned when editing through a reference whose parent
	// cannot have children.
	ErrReadOnly = errors.New("parent's children are read-only")
	// ErrStaleReference is returned when a reference's node is no longer a
	// child of its parent. Look the node up again and retry.
	ErrStaleReference = errors.New("node is no longer a child of its parent")
)

// Reference identifies a node by its parent, so that it can be edited in
// place.
//
// A reference remains usable across edits of its parent's children: the
// node's position is re-derived by identity whenever it may have moved.
type Reference struct {
	Parent Node
	Node   Node

	// The position Node was last seen at, and the parent collection's
	// generation when it was seen there.
	slot int
	gen  uint64
}

// NewReference returns a reference to node, which is a child of parent.
func NewReference(parent, node Node) Reference {
	return Reference{Parent: parent, Node: node, slot: -1}
}

// InsertBefore inserts nodes immediately before the referenced node.
func (r *Reference) InsertBefore(nodes ...Node) error {
	c, i, err := r.locate("insert before")
	if err != nil {
		return err
	}
	c.Insert(i, nodes...)
	r.remember(c, i+len(nodes))
	return nil
}

// InsertAfter inserts nodes immediately after the referenced node.
func (r *Reference) InsertAfter(nodes ...Node) error {
	c, i, err := r.locate("insert after")
	if err != nil {
		return err
	}
	c.Insert(i+1, nodes...)
	r.remember(c, i)
	return nil
}

// Replace replaces the referenced node with node. Afterwards, the reference
// refers to node.
func (r *Reference) Replace(node Node) error {
	c, i, err := r.locate("replace")
	if err != nil {
		return err
	}
	c.SetAt(i, node)
	r.Node = node
	r.remember(c, i)
	return nil
}

// Remove removes the referenced node from its parent. Further edits through
// this reference fail with [ErrStaleReference].
func (r *Reference) Remove() error {
	c, i, err := r.locate("remove")
	if err != nil {
		return err
	}
	c.RemoveAt(i)
	r.slot = -1
	return nil
}

func (r *Reference) locate(op string) (*Collection, int, error) {
	if r.Parent == nil {
		return nil, 0, fmt.Errorf("%s: %w", op, ErrNilParent)
	}

	c := r.Parent.Children()
	if c.ReadOnly() {
		return nil, 0, fmt.Errorf("%s: %v: %w", op, r.Parent.Kind(), ErrReadOnly)
	}

	if r.slot >= 0 && r.gen == c.gen && r.slot < c.Len() && c.At(r.slot) == r.Node {
		return c, r.slot, nil
	}

	i := c.IndexOf(r.Node)
	if i < 0 {
		return nil, 0, fmt.Errorf("%s: %v in %v: %w", op, kindOf(r.Node), r.Parent.Kind(), ErrStaleReference)
	}
	return c, i, nil
}

func (r *Reference) remember(c *Collection, slot int) {
	r.slot = slot
	r.gen = c.gen
}

func kindOf(n Node) Kind {
	if n == nil {
		return KindUnknown
	}
	return n.Kind()
}
