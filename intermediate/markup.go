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

// HTMLContent is literal markup. Its children are [TokenNode]s.
type HTMLContent struct{ Base }

func (*HTMLContent) Kind() Kind                { return KindHTMLContent }
func (n *HTMLContent) Accept(v Visitor) bool   { return v.VisitHTMLContent(n) }
func (n *HTMLContent) FormatNode(f *Formatter) { f.WriteContent(childContent(n)) }

// HTMLAttribute is a markup attribute whose value may mix literal text and
// code. Its children are the value's parts.
type HTMLAttribute struct {
	Base

	Name string
	// The text before and after the value, such as ` class="` and `"`.
	Prefix, Suffix string
}

func (*HTMLAttribute) Kind() Kind              { return KindHTMLAttribute }
func (n *HTMLAttribute) Accept(v Visitor) bool { return v.VisitHTMLAttribute(n) }

func (n *HTMLAttribute) FormatNode(f *Formatter) {
	f.WriteContent(n.Prefix + n.Suffix)
	f.WriteProperty("Name", n.Name)
	f.WriteProperty("Prefix", n.Prefix)
	f.WriteProperty("Suffix", n.Suffix)
}

// HTMLAttributeValue is a literal part of an [HTMLAttribute]'s value.
type HTMLAttributeValue struct {
	Base
	Prefix string
}

func (*HTMLAttributeValue) Kind() Kind              { return KindHTMLAttributeValue }
func (n *HTMLAttributeValue) Accept(v Visitor) bool { return v.VisitHTMLAttributeValue(n) }

func (n *HTMLAttributeValue) FormatNode(f *Formatter) {
	f.WriteContent(childContent(n))
	f.WriteProperty("Prefix", n.Prefix)
}

// MarkupElement is a markup element with a start and end tag. Its children
// are the element's attributes and body.
type MarkupElement struct {
	Base
	TagName string
}

func (*MarkupElement) Kind() Kind                { return KindMarkupElement }
func (n *MarkupElement) Accept(v Visitor) bool   { return v.VisitMarkupElement(n) }
func (n *MarkupElement) FormatNode(f *Formatter) { f.WriteContent(n.TagName) }

// MarkupBlock is a block of markup emitted verbatim.
type MarkupBlock struct {
	leaf
	Content string
}

func (*MarkupBlock) Kind() Kind                { return KindMarkupBlock }
func (n *MarkupBlock) Accept(v Visitor) bool   { return v.VisitMarkupBlock(n) }
func (n *MarkupBlock) FormatNode(f *Formatter) { f.WriteContent(n.Content) }

// CSharpExpression is an expression whose value is written to the output.
// Its children are [TokenNode]s.
type CSharpExpression struct{ Base }

func (*CSharpExpression) Kind() Kind                { return KindCSharpExpression }
func (n *CSharpExpression) Accept(v Visitor) bool   { return v.VisitCSharpExpression(n) }
func (n *CSharpExpression) FormatNode(f *Formatter) { f.WriteContent(childContent(n)) }

// CSharpCode is a block of statements. Its children are [TokenNode]s.
type CSharpCode struct{ Base }

func (*CSharpCode) Kind() Kind                { return KindCSharpCode }
func (n *CSharpCode) Accept(v Visitor) bool   { return v.VisitCSharpCode(n) }
func (n *CSharpCode) FormatNode(f *Formatter) { f.WriteContent(childContent(n)) }

// CSharpExpressionAttributeValue is an expression part of an
// [HTMLAttribute]'s value.
type CSharpExpressionAttributeValue struct {
	Base
	Prefix string
}

func (*CSharpExpressionAttributeValue) Kind() Kind { return KindCSharpExpressionAttributeValue }
func (n *CSharpExpressionAttributeValue) Accept(v Visitor) bool {
	return v.VisitCSharpExpressionAttributeValue(n)
}

func (n *CSharpExpressionAttributeValue) FormatNode(f *Formatter) {
	f.WriteContent(childContent(n))
	f.WriteProperty("Prefix", n.Prefix)
}

// CSharpCodeAttributeValue is a statement part of an [HTMLAttribute]'s value.
type CSharpCodeAttributeValue struct {
	Base
	Prefix string
}

func (*CSharpCodeAttributeValue) Kind() Kind { return KindCSharpCodeAttributeValue }
func (n *CSharpCodeAttributeValue) Accept(v Visitor) bool {
	return v.VisitCSharpCodeAttributeValue(n)
}

func (n *CSharpCodeAttributeValue) FormatNode(f *Formatter) {
	f.WriteContent(childContent(n))
	f.WriteProperty("Prefix", n.Prefix)
}
