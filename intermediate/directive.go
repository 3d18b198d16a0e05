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
	"iter"

	"github.com/bufbuild/razorcompile/descriptor"
)

// Directive is a use of a directive, such as `@inject IFoo Foo`. Its children
// are the directive's tokens and, for block directives, its body.
type Directive struct {
	Base

	Name      string
	Directive *descriptor.Directive
}

// Tokens returns an iterator over this directive's [DirectiveToken] children.
func (n *Directive) Tokens() iter.Seq[*DirectiveToken] {
	return childrenOfType[*DirectiveToken](n)
}

func (*Directive) Kind() Kind              { return KindDirective }
func (n *Directive) Accept(v Visitor) bool { return v.VisitDirective(n) }

func (n *Directive) FormatNode(f *Formatter) {
	f.WriteContent(n.Name)
	if n.Directive != nil {
		f.WriteProperty("Directive", n.Directive.DisplayName)
	}
}

// DirectiveToken is one argument of a [Directive].
type DirectiveToken struct {
	leaf

	Content string
	Token   *descriptor.DirectiveToken
}

func (*DirectiveToken) Kind() Kind              { return KindDirectiveToken }
func (n *DirectiveToken) Accept(v Visitor) bool { return v.VisitDirectiveToken(n) }

func (n *DirectiveToken) FormatNode(f *Formatter) {
	f.WriteContent(n.Content)
	f.WriteProperty("Content", n.Content)
	if n.Token != nil {
		f.WriteProperty("Token", n.Token.Kind.String())
	}
}

// MalformedDirective is a directive that could not be parsed completely. It
// carries diagnostics explaining why.
type MalformedDirective struct {
	Base

	Name      string
	Directive *descriptor.Directive
}

// Tokens returns an iterator over the [DirectiveToken]s that were recovered.
func (n *MalformedDirective) Tokens() iter.Seq[*DirectiveToken] {
	return childrenOfType[*DirectiveToken](n)
}

func (*MalformedDirective) Kind() Kind              { return KindMalformedDirective }
func (n *MalformedDirective) Accept(v Visitor) bool { return v.VisitMalformedDirective(n) }

func (n *MalformedDirective) FormatNode(f *Formatter) {
	f.WriteContent(n.Name)
	if n.Directive != nil {
		f.WriteProperty("Directive", n.Directive.DisplayName)
	}
}
