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
	"encoding/binary"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
)

// kind is the discriminator written before every field appended to a
// [Builder]. It keeps e.g. the integer 0 and the string "\x00" apart.
type kind byte

const (
	kindNull kind = iota
	kindBool
	kindInt32
	kindInt64
	kindString
	kindChecksum
)

// Builder incrementally computes a [Checksum] from a sequence of typed
// fields.
//
// A zero Builder draws its state from [Default]. A Builder must not be used
// after [Builder.FreeAndGetChecksum].
type Builder struct {
	pool  *Pool
	state *state
	freed bool
}

// NewBuilder returns a builder backed by the [Default] pool.
func NewBuilder() *Builder {
	return Default.NewBuilder()
}

// AppendNull appends an absent value.
func (b *Builder) AppendNull() {
	b.kind(kindNull)
}

// AppendBool appends a boolean.
func (b *Builder) AppendBool(v bool) {
	b.kind(kindBool)
	if v {
		b.write([]byte{1})
	} else {
		b.write([]byte{0})
	}
}

// AppendInt32 appends a 32-bit integer.
func (b *Builder) AppendInt32(v int32) {
	b.kind(kindInt32)
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	b.write(buf[:])
}

// AppendInt64 appends a 64-bit integer.
func (b *Builder) AppendInt64(v int64) {
	b.kind(kindInt64)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	b.write(buf[:])
}

// AppendInt appends an int, using the 32-bit encoding when it fits so that
// an int and an int32 with the same value agree.
func (b *Builder) AppendInt(v int) {
	if small, err := safecast.Conv[int32](v); err == nil {
		b.AppendInt32(small)
		return
	}
	b.AppendInt64(int64(v))
}

// AppendString appends a string.
//
// The string is hashed as little-endian UTF-16 code units, preceded by the
// number of code units, and fed to the hash in bounded chunks.
func (b *Builder) AppendString(s string) {
	b.kind(kindString)

	var n int64
	for _, r := range s {
		n += int64(utf16.RuneLen(r))
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	b.write(buf[:])

	st := b.live()
	chunk := st.scratch[:0]
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]

		if len(chunk)+4 > cap(chunk) {
			st.hash.Write(chunk)
			chunk = chunk[:0]
		}
		if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
			chunk = binary.LittleEndian.AppendUint16(chunk, uint16(r1))
			chunk = binary.LittleEndian.AppendUint16(chunk, uint16(r2))
		} else {
			chunk = binary.LittleEndian.AppendUint16(chunk, uint16(r))
		}
	}
	st.hash.Write(chunk)
}

// AppendChecksum appends a nested checksum.
func (b *Builder) AppendChecksum(c Checksum) {
	b.kind(kindChecksum)
	b.write(c[:])
}

// AppendData appends an arbitrary supported value.
//
// Supported values are nil, bool, int, int32, int64, string, *string (nil
// appends null), [Checksum] and [Summer]. Anything else panics.
func (b *Builder) AppendData(v any) {
	switch v := v.(type) {
	case nil:
		b.AppendNull()
	case bool:
		b.AppendBool(v)
	case int:
		b.AppendInt(v)
	case int32:
		b.AppendInt32(v)
	case int64:
		b.AppendInt64(v)
	case string:
		b.AppendString(v)
	case *string:
		if v == nil {
			b.AppendNull()
		} else {
			b.AppendString(*v)
		}
	case Checksum:
		b.AppendChecksum(v)
	case Summer:
		b.AppendChecksum(v.Sum())
	default:
		panic(fmt.Sprintf("razorcompile/checksum: cannot append value of type %T", v))
	}
}

// AppendStrings appends a length-prefixed sequence of strings.
func (b *Builder) AppendStrings(ss []string) {
	b.AppendInt(len(ss))
	for _, s := range ss {
		b.AppendString(s)
	}
}

// FreeAndGetChecksum finalizes the builder, returns its state to the pool
// it came from, and returns the resulting checksum.
func (b *Builder) FreeAndGetChecksum() Checksum {
	st := b.live()
	sum := finish(st.hash)
	b.pool.put(st)
	b.state = nil
	b.freed = true
	return sum
}

func (b *Builder) kind(k kind) {
	b.write([]byte{byte(k)})
}

func (b *Builder) write(p []byte) {
	b.live().hash.Write(p)
}

// live returns this builder's state, lazily allocating it for zero builders.
func (b *Builder) live() *state {
	if b.freed {
		panic("razorcompile/checksum: builder used after FreeAndGetChecksum")
	}
	if b.state == nil {
		if b.pool == nil {
			b.pool = Default
		}
		b.state = b.pool.get()
	}
	return b.state
}
