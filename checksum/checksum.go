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

// Package checksum provides stable content fingerprints for descriptor graphs.
//
// A [Checksum] is a fixed-size value computed by feeding typed fields into a
// [Builder]. Field order and field types are part of the result, so two
// builders that append the same values in the same order always agree, even
// across process runs. Checksums are cache keys, not a security primitive.
package checksum

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Size is the number of bytes in a [Checksum].
const Size = 20

// Checksum is a content fingerprint.
//
// Checksums are comparable and may be used as map keys directly.
type Checksum [Size]byte

// Null is the checksum of absent input.
var Null Checksum

// HashData is a [Checksum] reinterpreted as machine words.
type HashData struct {
	Data1, Data2 uint64
	Data3        uint32
}

// From copies a checksum out of the first [Size] bytes of b.
//
// Panics if b is too short; a truncated checksum is always a bug.
func From(b []byte) Checksum {
	if len(b) < Size {
		panic(fmt.Sprintf("razorcompile/checksum: need %d bytes, got %d", Size, len(b)))
	}
	var c Checksum
	copy(c[:], b)
	return c
}

// FromData is the inverse of [Checksum.Data].
func FromData(d HashData) Checksum {
	var c Checksum
	binary.LittleEndian.PutUint64(c[0:8], d.Data1)
	binary.LittleEndian.PutUint64(c[8:16], d.Data2)
	binary.LittleEndian.PutUint32(c[16:20], d.Data3)
	return c
}

// Parse decodes a checksum produced by [Checksum.String].
func Parse(s string) (Checksum, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Null, fmt.Errorf("checksum: invalid encoding: %w", err)
	}
	if len(b) != Size {
		return Null, fmt.Errorf("checksum: expected %d bytes, got %d", Size, len(b))
	}
	return From(b), nil
}

// IsNull returns whether this is the [Null] checksum.
func (c Checksum) IsNull() bool {
	return c == Null
}

// Data returns the words making up this checksum.
func (c Checksum) Data() HashData {
	return HashData{
		Data1: binary.LittleEndian.Uint64(c[0:8]),
		Data2: binary.LittleEndian.Uint64(c[8:16]),
		Data3: binary.LittleEndian.Uint32(c[16:20]),
	}
}

// HashCode returns a hash of this checksum suitable for bucketing.
//
// Only the first word participates. Checksums are already uniformly
// distributed, so this is as good as mixing all of them; equality still
// compares every byte.
func (c Checksum) HashCode() uint64 {
	return c.Data().Data1
}

// Sum implements [Summer].
func (c Checksum) Sum() Checksum {
	return c
}

// String implements [fmt.Stringer].
func (c Checksum) String() string {
	return base64.StdEncoding.EncodeToString(c[:])
}

// MarshalText implements [encoding.TextMarshaler].
func (c Checksum) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Checksum) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
