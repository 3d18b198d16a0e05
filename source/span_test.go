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

package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/razorcompile/source"
)

func TestSpan(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	s := source.New("Index.razor", 10, 1, 4, 5)
	assert.Equal(15, s.End())
	assert.True(s.Contains(10))
	assert.True(s.Contains(14))
	assert.False(s.Contains(15))
	assert.False(s.Contains(9))
	assert.Equal("(10:1,4 [5] Index.razor)", s.String())

	empty := source.New("", 3, 0, 3, 0)
	assert.True(empty.Contains(3))
	assert.False(empty.Contains(4))
	assert.Equal("(3:0,3 [0])", empty.String())

	assert.True(s.Encloses(source.New("Index.razor", 11, 1, 5, 2)))
	assert.False(s.Encloses(source.New("Other.razor", 11, 1, 5, 2)))
	assert.False(s.Encloses(source.New("Index.razor", 11, 1, 5, 9)))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	a := source.New("a", 5, 0, 5, 1)
	b := source.New("a", 5, 0, 5, 3)
	c := source.New("b", 0, 0, 0, 1)

	assert.Negative(t, source.Compare(a, b))
	assert.Negative(t, source.Compare(b, c))
	assert.Positive(t, source.Compare(c, a))
	assert.Zero(t, source.Compare(a, a))
}
