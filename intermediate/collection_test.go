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

package intermediate_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/razorcompile/intermediate"
)

func contents(c *intermediate.Collection) []string {
	var out []string
	for n := range c.Values() {
		out = append(out, n.(intermediate.TokenNode).Content())
	}
	return out
}

func TestCollection(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	a, b, c := intermediate.HTMLToken("a"), intermediate.HTMLToken("b"), intermediate.HTMLToken("c")
	coll := intermediate.NewCollection(a, c)
	coll.Insert(1, b)
	assert.Equal([]string{"a", "b", "c"}, contents(coll))
	assert.Equal(1, coll.IndexOf(b))
	assert.Equal(-1, coll.IndexOf(intermediate.HTMLToken("b")))

	var backward []string
	for _, n := range coll.Backward() {
		backward = append(backward, n.(*intermediate.Token).Text)
	}
	assert.Equal([]string{"c", "b", "a"}, backward)

	assert.True(coll.Remove(b))
	assert.False(coll.Remove(b))
	assert.Equal([]string{"a", "c"}, contents(coll))

	coll.SetAt(0, b)
	assert.Equal([]string{"b", "c"}, contents(coll))

	other := intermediate.NewCollection(a)
	other.AddAll(coll)
	assert.Equal([]string{"a", "b", "c"}, contents(other))
	assert.Equal(2, coll.Len())

	coll.Clear()
	assert.Equal(0, coll.Len())
	assert.False(coll.ReadOnly())
}

func TestLeafChildren(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	leaves := []intermediate.Node{
		intermediate.CSharpToken("x"),
		intermediate.LazyCSharpToken(func() string { return "x" }),
		&intermediate.Using{Content: "System"},
		&intermediate.Field{Name: "_x"},
		&intermediate.DirectiveToken{Content: "x"},
	}
	for _, leaf := range leaves {
		children := leaf.Children()
		assert.NotNil(children)
		assert.True(children.ReadOnly(), "%v", leaf.Kind())
		assert.Equal(0, children.Len())
		assert.Panics(func() { children.Add(intermediate.HTMLToken("y")) })
	}

	// Containers start out with an empty, mutable collection.
	class := new(intermediate.Class)
	assert.False(class.Children().ReadOnly())
	assert.Same(class.Children(), class.Children())
}

func TestNilChildPanics(t *testing.T) {
	t.Parallel()

	coll := intermediate.NewCollection()
	assert.Panics(t, func() { coll.Add(nil) })
	assert.Panics(t, func() { coll.Insert(0, intermediate.HTMLToken("x"), nil) })
	assert.Equal(t, 0, coll.Len())
}

func TestReference(t *testing.T) {
	t.Parallel()

	setup := func() (*intermediate.HTMLContent, []intermediate.Node) {
		parent := new(intermediate.HTMLContent)
		nodes := []intermediate.Node{
			intermediate.HTMLToken("A"),
			intermediate.HTMLToken("B"),
			intermediate.HTMLToken("C"),
		}
		parent.Children().Add(nodes...)
		return parent, nodes
	}

	t.Run("insert", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		parent, nodes := setup()
		ref := intermediate.NewReference(parent, nodes[1])
		require.NoError(t, ref.InsertBefore(intermediate.HTMLToken("X")))
		require.NoError(t, ref.InsertAfter(intermediate.HTMLToken("Y"), intermediate.HTMLToken("Z")))
		require.NoError(t, ref.InsertBefore(intermediate.HTMLToken("W")))
		assert.Equal([]string{"A", "X", "W", "B", "Y", "Z", "C"}, contents(parent.Children()))
	})

	t.Run("replace", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		parent, nodes := setup()
		ref := intermediate.NewReference(parent, nodes[1])
		d := intermediate.HTMLToken("D")
		require.NoError(t, ref.Replace(d))
		assert.Equal([]string{"A", "D", "C"}, contents(parent.Children()))
		assert.Same(d, ref.Node)

		// The reference now follows the replacement.
		require.NoError(t, ref.InsertAfter(intermediate.HTMLToken("E")))
		assert.Equal([]string{"A", "D", "E", "C"}, contents(parent.Children()))
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		parent, nodes := setup()
		ref := intermediate.NewReference(parent, nodes[1])
		require.NoError(t, ref.Remove())
		assert.Equal([]string{"A", "C"}, contents(parent.Children()))

		err := ref.InsertAfter(intermediate.HTMLToken("X"))
		assert.ErrorIs(err, intermediate.ErrStaleReference)
		assert.ErrorIs(ref.Remove(), intermediate.ErrStaleReference)
		assert.Equal([]string{"A", "C"}, contents(parent.Children()))
	})

	t.Run("moved", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		parent, nodes := setup()
		ref := intermediate.NewReference(parent, nodes[2])
		require.NoError(t, ref.InsertBefore(intermediate.HTMLToken("X")))

		// Edit the collection behind the reference's back.
		parent.Children().RemoveAt(0)
		parent.Children().Insert(0, intermediate.HTMLToken("1"), intermediate.HTMLToken("2"))

		require.NoError(t, ref.Replace(intermediate.HTMLToken("Z")))
		assert.Equal([]string{"1", "2", "B", "X", "Z"}, contents(parent.Children()))
	})

	t.Run("misuse", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		tok := intermediate.HTMLToken("A")
		ref := intermediate.NewReference(nil, tok)
		assert.ErrorIs(ref.Remove(), intermediate.ErrNilParent)

		ref = intermediate.NewReference(intermediate.HTMLToken("leaf"), tok)
		assert.ErrorIs(ref.InsertBefore(intermediate.HTMLToken("B")), intermediate.ErrReadOnly)

		parent, _ := setup()
		ref = intermediate.NewReference(parent, tok)
		assert.ErrorIs(ref.Replace(intermediate.HTMLToken("B")), intermediate.ErrStaleReference)
	})
}

func TestDescendantReferencesReplaceAll(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// Nested expressions: replacing in post-order must never orphan a
	// reference collected earlier.
	inner := intermediate.WithChildren(new(intermediate.CSharpExpression), intermediate.CSharpToken("inner"))
	outer := intermediate.WithChildren(new(intermediate.CSharpExpression), intermediate.CSharpToken("("), inner)
	doc := intermediate.WithChildren(new(intermediate.Document), outer, intermediate.HTMLToken("tail"))

	refs := intermediate.FindDescendantReferences[*intermediate.CSharpExpression](doc)
	require.Len(t, refs, 2)
	assert.Same(inner, refs[0].Node)
	assert.Same(outer, refs[1].Node)

	for i := range refs {
		children := slices.Collect(refs[i].Node.Children().Values())
		code := intermediate.WithChildren(new(intermediate.CSharpCode), children...)
		require.NoError(t, refs[i].Replace(code))
	}

	codes := intermediate.FindAll[*intermediate.CSharpCode](doc)
	assert.Len(codes, 2)
	assert.Empty(intermediate.FindAll[*intermediate.CSharpExpression](doc))
	assert.True(slices.ContainsFunc(codes, func(c *intermediate.CSharpCode) bool {
		return c.Children().At(0).(*intermediate.Token).Text == "("
	}))
}
