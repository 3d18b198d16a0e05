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

package descriptor

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bufbuild/razorcompile/cache"
	"github.com/bufbuild/razorcompile/checksum"
	"github.com/bufbuild/razorcompile/report"
)

// codecVersion is written at the start of every encoded stream.
const codecVersion = 1

// ErrChecksumMismatch is returned by [Decoder.Decode] when a decoded tag
// helper does not hash to the checksum it was written with.
var ErrChecksumMismatch = errors.New("descriptor: checksum mismatch")

// Encode writes tag helpers to w.
//
// Each tag helper is preceded by its checksum, which lets a [Decoder] skip
// over tag helpers it already has.
func Encode(w io.Writer, helpers []*TagHelper) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeInt(codecVersion); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(helpers)); err != nil {
		return err
	}
	for _, h := range helpers {
		sum := h.Checksum()
		if err := enc.EncodeBytes(sum[:]); err != nil {
			return err
		}
		if err := enc.Encode(h); err != nil {
			return fmt.Errorf("descriptor: encoding %q: %w", h.Name, err)
		}
	}
	return nil
}

// Decoder reads tag helpers written by [Encode].
//
// Both fields are optional.
type Decoder struct {
	// Tag helpers already present in this cache are not decoded again, and
	// newly decoded ones are added to it.
	Cache *TagHelperCache
	// Every decoded string is interned here.
	Strings *cache.StringCache
	// If set, every decoded tag helper is re-hashed and compared against its
	// recorded checksum.
	Verify bool
}

// Decode reads a stream written by [Encode].
func (d *Decoder) Decode(r io.Reader) ([]*TagHelper, error) {
	dec := msgpack.NewDecoder(r)
	version, err := dec.DecodeInt()
	if err != nil {
		return nil, err
	}
	if version != codecVersion {
		return nil, fmt.Errorf("descriptor: unsupported encoding version %d", version)
	}

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if _, err := safecast.Conv[uint32](n); err != nil {
		return nil, fmt.Errorf("descriptor: invalid tag helper count %d", n)
	}

	out := make([]*TagHelper, 0, min(n, 1024))
	for range n {
		raw, err := dec.DecodeBytes()
		if err != nil {
			return nil, err
		}
		if len(raw) != checksum.Size {
			return nil, fmt.Errorf("descriptor: invalid checksum length %d", len(raw))
		}
		sum := checksum.From(raw)

		if d.Cache != nil {
			if h, ok := d.Cache.Get(sum); ok {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				out = append(out, h)
				continue
			}
		}

		h := new(TagHelper)
		if err := dec.Decode(h); err != nil {
			return nil, err
		}
		if d.Strings != nil {
			internTagHelper(h, d.Strings.Intern)
		}
		if d.Verify && h.Checksum() != sum {
			return nil, fmt.Errorf("%w for %q", ErrChecksumMismatch, h.Name)
		}
		if d.Cache != nil {
			h = d.Cache.Add(h)
		}
		out = append(out, h)
	}
	return out, nil
}

func internTagHelper(h *TagHelper, intern func(string) string) {
	h.Kind = intern(h.Kind)
	h.Name = intern(h.Name)
	h.AssemblyName = intern(h.AssemblyName)
	h.DisplayName = intern(h.DisplayName)
	h.Documentation = intern(h.Documentation)
	h.TagOutputHint = intern(h.TagOutputHint)
	h.Metadata = internMetadata(h.Metadata, intern)
	internDiagnostics(h.Diagnostics, intern)

	for _, r := range h.TagMatchingRules {
		r.TagName = intern(r.TagName)
		r.ParentTag = intern(r.ParentTag)
		internDiagnostics(r.Diagnostics, intern)
		for _, a := range r.Attributes {
			a.Name = intern(a.Name)
			a.Value = intern(a.Value)
			a.DisplayName = intern(a.DisplayName)
			a.Metadata = internMetadata(a.Metadata, intern)
			internDiagnostics(a.Diagnostics, intern)
		}
	}
	for _, a := range h.BoundAttributes {
		a.Kind = intern(a.Kind)
		a.Name = intern(a.Name)
		a.PropertyName = intern(a.PropertyName)
		a.TypeName = intern(a.TypeName)
		a.IndexerNamePrefix = intern(a.IndexerNamePrefix)
		a.IndexerTypeName = intern(a.IndexerTypeName)
		a.DisplayName = intern(a.DisplayName)
		a.Documentation = intern(a.Documentation)
		a.Metadata = internMetadata(a.Metadata, intern)
		internDiagnostics(a.Diagnostics, intern)
		for _, p := range a.Parameters {
			p.Name = intern(p.Name)
			p.PropertyName = intern(p.PropertyName)
			p.TypeName = intern(p.TypeName)
			p.DisplayName = intern(p.DisplayName)
			p.Documentation = intern(p.Documentation)
			p.Metadata = internMetadata(p.Metadata, intern)
			internDiagnostics(p.Diagnostics, intern)
		}
	}
	for _, c := range h.AllowedChildTags {
		c.Name = intern(c.Name)
		c.DisplayName = intern(c.DisplayName)
		internDiagnostics(c.Diagnostics, intern)
	}
}

func internMetadata(m Metadata, intern func(string) string) Metadata {
	if len(m) == 0 {
		return m
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[intern(k)] = intern(v)
	}
	return out
}

func internDiagnostics(diagnostics []*report.Diagnostic, intern func(string) string) {
	for _, d := range diagnostics {
		d.Tag = report.Tag(intern(string(d.Tag)))
		d.Message = intern(d.Message)
		if d.Span != nil {
			d.Span.Path = intern(d.Span.Path)
		}
	}
}
