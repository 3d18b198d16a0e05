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
	"fmt"

	"github.com/bufbuild/razorcompile/checksum"
)

// DirectiveKind is the syntactic shape of a directive.
type DirectiveKind int8

const (
	DirectiveSingleLine DirectiveKind = iota
	DirectiveRazorBlock
	DirectiveCodeBlock
)

// String implements [fmt.Stringer].
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveSingleLine:
		return "SingleLine"
	case DirectiveRazorBlock:
		return "RazorBlock"
	case DirectiveCodeBlock:
		return "CodeBlock"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", int(k))
	}
}

// DirectiveTokenKind is the kind of value a directive token accepts.
type DirectiveTokenKind int8

const (
	TokenType DirectiveTokenKind = iota
	TokenNamespace
	TokenMember
	TokenString
	TokenAttribute
	TokenBoolean
	TokenIdentifierOrExpression
)

// String implements [fmt.Stringer].
func (k DirectiveTokenKind) String() string {
	switch k {
	case TokenType:
		return "Type"
	case TokenNamespace:
		return "Namespace"
	case TokenMember:
		return "Member"
	case TokenString:
		return "String"
	case TokenAttribute:
		return "Attribute"
	case TokenBoolean:
		return "Boolean"
	case TokenIdentifierOrExpression:
		return "IdentifierOrExpression"
	default:
		return fmt.Sprintf("DirectiveTokenKind(%d)", int(k))
	}
}

// Directive describes a directive such as @page or @inject.
//
// Directive nodes in an intermediate tree point at their descriptor, and
// finders match on descriptor identity.
type Directive struct {
	Name        string        `msgpack:"name"`
	Kind        DirectiveKind `msgpack:"kind,omitempty"`
	DisplayName string        `msgpack:"display,omitempty"`
	Description string        `msgpack:"description,omitempty"`

	Tokens []*DirectiveToken `msgpack:"tokens,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (d *Directive) Sum() checksum.Checksum {
	return d.memo.get(func(b *checksum.Builder) {
		b.AppendString(d.Name)
		b.AppendInt32(int32(d.Kind))
		b.AppendString(d.DisplayName)
		b.AppendString(d.Description)
		appendAll(b, d.Tokens)
	})
}

// DirectiveToken describes one argument of a [Directive].
type DirectiveToken struct {
	Kind        DirectiveTokenKind `msgpack:"kind"`
	Name        string             `msgpack:"name,omitempty"`
	Description string             `msgpack:"description,omitempty"`
	Optional    bool               `msgpack:"optional,omitempty"`

	memo memo
}

// Sum implements [checksum.Summer].
func (t *DirectiveToken) Sum() checksum.Checksum {
	return t.memo.get(func(b *checksum.Builder) {
		b.AppendInt32(int32(t.Kind))
		b.AppendString(t.Name)
		b.AppendString(t.Description)
		b.AppendBool(t.Optional)
	})
}
