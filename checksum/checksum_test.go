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

package checksum_test

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/razorcompile/checksum"
)

func TestCreate(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(checksum.Create("foo"), checksum.Create("foo"))
	assert.NotEqual(checksum.Create("foo"), checksum.Create("bar"))
	assert.NotEqual(checksum.Null, checksum.Create(""))
	assert.True(checksum.Null.IsNull())
	assert.False(checksum.Create("").IsNull())
}

func TestOrderSensitive(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	b1 := checksum.NewBuilder()
	b1.AppendInt32(0)
	b1.AppendNull()

	b2 := checksum.NewBuilder()
	b2.AppendNull()
	b2.AppendInt32(0)

	assert.NotEqual(b1.FreeAndGetChecksum(), b2.FreeAndGetChecksum())

	c1, c2 := checksum.Create("a"), checksum.Create("b")
	assert.NotEqual(
		checksum.CombineAll([]checksum.Checksum{c1, c2}),
		checksum.CombineAll([]checksum.Checksum{c2, c1}),
	)
	assert.Equal(checksum.Combine(c1, c2), checksum.CombineAll([]checksum.Checksum{c1, c2}))
	assert.NotEqual(checksum.Combine3(c1, c2, c1), checksum.Combine(c1, c2))
}

func TestTypeTags(t *testing.T) {
	t.Parallel()

	sum := func(f func(*checksum.Builder)) checksum.Checksum {
		var b checksum.Builder
		f(&b)
		return b.FreeAndGetChecksum()
	}

	sums := []checksum.Checksum{
		sum(func(b *checksum.Builder) { b.AppendInt32(0) }),
		sum(func(b *checksum.Builder) { b.AppendInt64(0) }),
		sum(func(b *checksum.Builder) { b.AppendString("\x00") }),
		sum(func(b *checksum.Builder) { b.AppendString("") }),
		sum(func(b *checksum.Builder) { b.AppendNull() }),
		sum(func(b *checksum.Builder) { b.AppendBool(false) }),
		sum(func(b *checksum.Builder) { b.AppendChecksum(checksum.Null) }),
		sum(func(b *checksum.Builder) { b.AppendString("ab"); b.AppendString("c") }),
		sum(func(b *checksum.Builder) { b.AppendString("a"); b.AppendString("bc") }),
	}

	seen := make(map[checksum.Checksum]int)
	for i, s := range sums {
		if j, ok := seen[s]; ok {
			t.Errorf("checksum %d collides with %d", i, j)
		}
		seen[s] = i
	}

	// int and int32 of the same value agree, as do nil and AppendNull.
	assert.Equal(t,
		sum(func(b *checksum.Builder) { b.AppendData(42) }),
		sum(func(b *checksum.Builder) { b.AppendInt32(42) }),
	)
	assert.Equal(t,
		sum(func(b *checksum.Builder) { b.AppendData((*string)(nil)) }),
		sum(func(b *checksum.Builder) { b.AppendNull() }),
	)
}

func TestLongString(t *testing.T) {
	t.Parallel()

	// Longer than the scratch buffer, with a surrogate pair straddling the
	// chunk boundary.
	s := strings.Repeat("x", 511) + "😀" + strings.Repeat("é", 3000)

	var b checksum.Builder
	b.AppendString(s)
	got := b.FreeAndGetChecksum()

	units := utf16.Encode([]rune(s))
	h := sha256.New()
	h.Write([]byte{4}) // kindString
	h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(units))))
	for _, u := range units {
		h.Write(binary.LittleEndian.AppendUint16(nil, u))
	}
	assert.Equal(t, checksum.From(h.Sum(nil)), got)
}

func TestCombineIsHashed(t *testing.T) {
	t.Parallel()

	a, b := checksum.Create("a"), checksum.Create("b")
	h := sha256.New()
	h.Write(a[:])
	h.Write(b[:])
	assert.Equal(t, checksum.From(h.Sum(nil)), checksum.Combine(a, b))
}

func TestFrom(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { checksum.From(make([]byte, checksum.Size-1)) })

	c := checksum.Create("foo")
	assert.Equal(t, c, checksum.From(c[:]))
	assert.Equal(t, c, checksum.FromData(c.Data()))
	assert.Equal(t, c.Data().Data1, c.HashCode())

	parsed, err := checksum.Parse(c.String())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)

	_, err = checksum.Parse("Zm9v")
	assert.Error(t, err)
}

func TestBuilderFreed(t *testing.T) {
	t.Parallel()

	pool := checksum.NewPool()
	b := pool.NewBuilder()
	b.AppendString("foo")
	sum := b.FreeAndGetChecksum()
	assert.Equal(t, checksum.Create("foo"), sum)
	assert.Panics(t, func() { b.AppendBool(true) })
	assert.Panics(t, func() { b.FreeAndGetChecksum() })
	assert.Panics(t, func() { b.AppendData(struct{}{}) })

	// Pooled state is reset before reuse.
	b = pool.NewBuilder()
	b.AppendString("foo")
	assert.Equal(t, sum, b.FreeAndGetChecksum())
}

func TestWithChildren(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	a, b, c := checksum.Create("a"), checksum.Create("b"), checksum.Create("c")
	leaf := checksum.NewCollection(a, b)
	assert.Equal(checksum.Combine(a, b), leaf.Sum())

	tree := checksum.NewWithChildren(leaf, c)
	assert.Equal(checksum.Combine(leaf.Sum(), c), tree.Sum())
	assert.Equal(2, tree.Len())
	assert.Equal(c, tree.At(1).Sum())

	other := checksum.NewWithChildren(checksum.NewCollection(a, c), c, a)
	assert.Equal([]int{0, 2}, tree.Diff(other))
	assert.Empty(tree.Diff(tree))
}
