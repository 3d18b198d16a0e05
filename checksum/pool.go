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

import (
	"crypto/sha256"
	"hash"
	"sync"
)

// chunkSize bounds the scratch buffer used to feed strings into a hash.
const chunkSize = 1024

// Pool is a pool of hashing state for [Builder]s.
//
// Pools are usually owned by a long-lived session, see [NewPool]. A zero
// Pool is empty and ready to use; when it runs dry, fresh state is allocated.
type Pool struct {
	pool sync.Pool
}

// Default is the pool used by the package-level helpers such as [Create].
var Default = NewPool()

// state is the reusable part of a builder.
type state struct {
	hash    hash.Hash
	scratch [chunkSize]byte
}

// NewPool returns a new, empty pool.
func NewPool() *Pool {
	return new(Pool)
}

// NewBuilder returns a builder that draws its hashing state from p.
func (p *Pool) NewBuilder() *Builder {
	return &Builder{pool: p, state: p.get()}
}

func (p *Pool) get() *state {
	if s, ok := p.pool.Get().(*state); ok {
		return s
	}
	return &state{hash: sha256.New()}
}

func (p *Pool) put(s *state) {
	s.hash.Reset()
	p.pool.Put(s)
}

// finish finalizes h into a checksum.
func finish(h hash.Hash) Checksum {
	var sum [sha256.Size]byte
	return From(h.Sum(sum[:0]))
}
