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
	"strings"

	"github.com/rivo/uniseg"
)

// Mode controls what a [Formatter] prints for a node that provides both
// content and properties.
type Mode int8

const (
	PreferContent Mode = iota
	PreferProperties
)

var escaper = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`)

// Formatter prints intermediate nodes for debugging and snapshot tests.
//
// Each node prints as a single line: its kind, its span if it has one, and
// then either its content in quotes or its properties in braces.
//
//	Token (0:0,0 [5]) "Hello"
//	Class { Name: Counter, BaseType: ComponentBase }
//
// A formatter may be reused, but not concurrently.
type Formatter struct {
	Mode Mode
	// If positive, content wider than this many terminal columns is
	// truncated and suffixed with "...". Widths of three or less truncate
	// without the suffix. Width is measured before escaping, so an escaped
	// control character adds two columns.
	Width int

	out *strings.Builder

	// Per-node state, written by Node.FormatNode.
	content string
	props   []property
}

type property struct {
	name, value string
}

// NewFormatter returns a formatter that writes to out.
func NewFormatter(out *strings.Builder) *Formatter {
	return &Formatter{out: out}
}

// String formats a single node.
func String(n Node) string {
	var out strings.Builder
	NewFormatter(&out).FormatNode(n)
	return out.String()
}

// WriteContent sets the content of the node being formatted. Empty content is
// ignored.
func (f *Formatter) WriteContent(content string) {
	if content != "" {
		f.content = content
	}
}

// WriteProperty adds a property to the node being formatted. Properties with
// an empty value are ignored.
func (f *Formatter) WriteProperty(name, value string) {
	if value != "" {
		f.props = append(f.props, property{name, value})
	}
}

// FormatNode writes a single line describing n, without a trailing newline.
func (f *Formatter) FormatNode(n Node) {
	defer f.reset()

	if ext, ok := n.(Extension); ok {
		f.out.WriteString(escaper.Replace(ext.ExtensionName()))
	} else {
		f.out.WriteString(n.Kind().String())
	}
	if span, ok := n.Source(); ok {
		f.out.WriteByte(' ')
		f.out.WriteString(escaper.Replace(span.String()))
	}

	n.FormatNode(f)

	useContent := f.content != "" && (f.Mode == PreferContent || len(f.props) == 0)
	switch {
	case useContent:
		f.out.WriteString(` "`)
		f.out.WriteString(escaper.Replace(f.truncate(f.content)))
		f.out.WriteByte('"')
	case len(f.props) > 0:
		f.out.WriteString(" {")
		for i, p := range f.props {
			if i > 0 {
				f.out.WriteByte(',')
			}
			f.out.WriteByte(' ')
			f.out.WriteString(p.name)
			f.out.WriteString(": ")
			f.out.WriteString(escaper.Replace(p.value))
		}
		f.out.WriteString(" }")
	}
}

// FormatTree writes one line per node in the tree rooted at root, indenting
// each node by two spaces per level of depth.
func (f *Formatter) FormatTree(root Node) {
	Inspect(root, func(n Node, w *Walker) bool {
		for range w.Depth() {
			f.out.WriteString("  ")
		}
		f.FormatNode(n)
		f.out.WriteByte('\n')
		return true
	})
}

func (f *Formatter) truncate(s string) string {
	if f.Width <= 0 || uniseg.StringWidth(s) <= f.Width {
		return s
	}

	suffix := "..."
	if f.Width <= len(suffix) {
		suffix = ""
	}
	limit := f.Width - len(suffix)

	var (
		width int
		cut   int
		state = -1
		rest  = s
	)
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width+w > limit {
			break
		}
		width += w
		cut += len(cluster)
	}
	return s[:cut] + suffix
}

func (f *Formatter) reset() {
	f.content = ""
	clear(f.props)
	f.props = f.props[:0]
}

// childContent concatenates the content of n's token children.
func childContent(n Node) string {
	var b strings.Builder
	for child := range n.Children().Values() {
		if tok, ok := child.(TokenNode); ok {
			b.WriteString(tok.Content())
		}
	}
	return b.String()
}
