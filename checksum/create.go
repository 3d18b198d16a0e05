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

package checksum

// Summer is any value with a content checksum.
type Summer interface {
	Sum() Checksum
}

// Create returns the checksum of a single string.
func Create(s string) Checksum {
	b := Default.NewBuilder()
	b.AppendString(s)
	return b.FreeAndGetChecksum()
}

// Combine returns the checksum of two checksums, in order.
func Combine(a, b Checksum) Checksum {
	return Default.Combine(a, b)
}

// Combine3 returns the checksum of three checksums, in order.
func Combine3(a, b, c Checksum) Checksum {
	return Default.Combine(a, b, c)
}

// CombineAll returns the checksum of an ordered sequence of checksums.
func CombineAll(sums []Checksum) Checksum {
	return Default.Combine(sums...)
}

// Combine hashes the raw bytes of each checksum, in order, into a fresh
// hash drawn from p.
//
// Note that this is not the same as appending each checksum to a [Builder],
// which also writes type tags.
func (p *Pool) Combine(sums ...Checksum) Checksum {
	st := p.get()
	defer p.put(st)

	for i := range sums {
		st.hash.Write(sums[i][:])
	}
	return finish(st.hash)
}

// WithChildren is a composite checksum over an ordered list of children,
// each of which is either a [Checksum] or another WithChildren.
//
// This is used to fingerprint whole graphs (say, a tag helper and all of its
// attributes) while keeping the per-child checksums around for diffing.
type WithChildren struct {
	sum      Checksum
	children []Summer
}

// NewWithChildren computes a composite checksum over children.
func NewWithChildren(children ...Summer) *WithChildren {
	sums := make([]Checksum, len(children))
	for i, child := range children {
		sums[i] = child.Sum()
	}
	return &WithChildren{
		sum:      CombineAll(sums),
		children: children,
	}
}

// NewCollection is a shorthand for a [WithChildren] whose children are all
// leaf checksums.
func NewCollection(sums ...Checksum) *WithChildren {
	children := make([]Summer, len(sums))
	for i, sum := range sums {
		children[i] = sum
	}
	return &WithChildren{
		sum:      CombineAll(sums),
		children: children,
	}
}

// Sum implements [Summer].
func (w *WithChildren) Sum() Checksum {
	return w.sum
}

// Len returns the number of direct children.
func (w *WithChildren) Len() int {
	return len(w.children)
}

// At returns the nth child.
func (w *WithChildren) At(n int) Summer {
	return w.children[n]
}

// Diff returns the indices of children whose checksums differ between w and
// that. Children present in only one of the two are always reported.
func (w *WithChildren) Diff(that *WithChildren) []int {
	var out []int
	for i := range max(w.Len(), that.Len()) {
		if i >= w.Len() || i >= that.Len() || w.At(i).Sum() != that.At(i).Sum() {
			out = append(out, i)
		}
	}
	return out
}
