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
	"fmt"
	"sync/atomic"

	"github.com/bufbuild/razorcompile/source"
)

// TokenKind is the language a token's content is written in.
type TokenKind int8

const (
	TokenUnknown TokenKind = iota
	TokenHTML
	TokenCSharp
)

// String implements [fmt.Stringer].
func (k TokenKind) String() string {
	switch k {
	case TokenUnknown:
		return "Unknown"
	case TokenHTML:
		return "Html"
	case TokenCSharp:
		return "CSharp"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// TokenNode is implemented by [Token] and [LazyToken].
type TokenNode interface {
	Node

	// Content returns the token's text. For lazy tokens, this may compute it.
	Content() string
	// HasContent returns whether Content would return a non-empty string.
	HasContent() bool
	IsLazy() bool

	IsCSharp() bool
	IsHTML() bool
}

var (
	_ TokenNode = (*Token)(nil)
	_ TokenNode = (*LazyToken)(nil)
)

type token struct {
	leaf
	TokenKind TokenKind
}

// IsCSharp returns whether this is a C# token.
func (t *token) IsCSharp() bool { return t.TokenKind == TokenCSharp }

// IsHTML returns whether this is an HTML token.
func (t *token) IsHTML() bool { return t.TokenKind == TokenHTML }

// Token is a leaf node holding a fragment of markup or code.
type Token struct {
	token
	Text string
}

// NewToken returns a new token. At most one span may be given.
func NewToken(kind TokenKind, content string, span ...source.Span) *Token {
	t := &Token{Text: content}
	t.TokenKind = kind
	setOptionalSource(t, span)
	return t
}

// HTMLToken returns a new HTML token.
func HTMLToken(content string, span ...source.Span) *Token {
	return NewToken(TokenHTML, content, span...)
}

// CSharpToken returns a new C# token.
func CSharpToken(content string, span ...source.Span) *Token {
	return NewToken(TokenCSharp, content, span...)
}

func (*Token) Kind() Kind        { return KindToken }
func (t *Token) Content() string { return t.Text }
func (t *Token) HasContent() bool {
	return t.Text != ""
}
func (*Token) IsLazy() bool { return false }

// Accept implements [Node].
func (t *Token) Accept(v Visitor) bool { return v.VisitToken(t) }

// FormatNode implements [Node].
func (t *Token) FormatNode(f *Formatter) {
	f.WriteContent(t.Text)
	f.WriteProperty("TokenKind", t.TokenKind.String())
}

// LazyToken is a token whose content is computed on first use.
//
// The content factory runs at most once, even when Content is called from
// several goroutines at the same time; callers that lose the race wait for the
// winner. Once computed, the content never changes.
type LazyToken struct {
	token

	factory func() string
	state   atomic.Pointer[lazyContent]
}

type lazyContent struct {
	done     chan struct{}
	value    string
	panicked any
}

// NewLazyToken returns a new lazy token. At most one span may be given.
func NewLazyToken(kind TokenKind, factory func() string, span ...source.Span) *LazyToken {
	if factory == nil {
		panic("razorcompile/intermediate: nil lazy token factory")
	}
	t := &LazyToken{factory: factory}
	t.TokenKind = kind
	setOptionalSource(t, span)
	return t
}

// LazyCSharpToken returns a new lazy C# token.
func LazyCSharpToken(factory func() string, span ...source.Span) *LazyToken {
	return NewLazyToken(TokenCSharp, factory, span...)
}

func (*LazyToken) Kind() Kind   { return KindLazyToken }
func (*LazyToken) IsLazy() bool { return true }

// Content returns this token's content, computing it if necessary.
//
// If the factory panics, the panic is re-raised in every caller.
func (t *LazyToken) Content() string {
	s := t.state.Load()
	if s == nil {
		mine := &lazyContent{done: make(chan struct{})}
		if t.state.CompareAndSwap(nil, mine) {
			mine.run(t.factory)
			return mine.value
		}
		s = t.state.Load()
	}

	<-s.done
	if s.panicked != nil {
		panic(s.panicked)
	}
	return s.value
}

// HasContent computes the content and returns whether it is non-empty.
func (t *LazyToken) HasContent() bool {
	return t.Content() != ""
}

// Materialized returns whether the content has already been computed.
func (t *LazyToken) Materialized() bool {
	s := t.state.Load()
	if s == nil {
		return false
	}
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (c *lazyContent) run(factory func() string) {
	defer close(c.done)
	defer func() {
		if r := recover(); r != nil {
			c.panicked = r
			panic(r)
		}
	}()
	c.value = factory()
}

// Accept implements [Node].
func (t *LazyToken) Accept(v Visitor) bool { return v.VisitLazyToken(t) }

// FormatNode implements [Node].
func (t *LazyToken) FormatNode(f *Formatter) {
	f.WriteContent(t.Content())
	f.WriteProperty("TokenKind", t.TokenKind.String())
}

func setOptionalSource(n Node, span []source.Span) {
	switch len(span) {
	case 0:
	case 1:
		n.SetSource(span[0])
	default:
		panic("razorcompile/intermediate: more than one span given")
	}
}
