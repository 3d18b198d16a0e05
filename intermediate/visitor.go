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

// Visitor is implemented by types that act on intermediate nodes.
//
// Each method is called by the corresponding node's Accept method, and
// returns whether a [Walker] should descend into the node's children.
// Embed [BaseVisitor] to implement only the methods of interest.
type Visitor interface {
	VisitDocument(*Document) bool
	VisitNamespace(*Namespace) bool
	VisitUsing(*Using) bool
	VisitClass(*Class) bool
	VisitMethod(*Method) bool
	VisitField(*Field) bool
	VisitProperty(*Property) bool

	VisitHTMLContent(*HTMLContent) bool
	VisitHTMLAttribute(*HTMLAttribute) bool
	VisitHTMLAttributeValue(*HTMLAttributeValue) bool
	VisitMarkupElement(*MarkupElement) bool
	VisitMarkupBlock(*MarkupBlock) bool

	VisitCSharpExpression(*CSharpExpression) bool
	VisitCSharpCode(*CSharpCode) bool
	VisitCSharpExpressionAttributeValue(*CSharpExpressionAttributeValue) bool
	VisitCSharpCodeAttributeValue(*CSharpCodeAttributeValue) bool

	VisitToken(*Token) bool
	VisitLazyToken(*LazyToken) bool

	VisitDirective(*Directive) bool
	VisitDirectiveToken(*DirectiveToken) bool
	VisitMalformedDirective(*MalformedDirective) bool

	VisitTagHelper(*TagHelper) bool
	VisitTagHelperBody(*TagHelperBody) bool
	VisitTagHelperProperty(*TagHelperProperty) bool
	VisitTagHelperHTMLAttribute(*TagHelperHTMLAttribute) bool
	VisitTagHelperDirectiveAttribute(*TagHelperDirectiveAttribute) bool

	VisitComponent(*Component) bool
	VisitComponentAttribute(*ComponentAttribute) bool
	VisitComponentChildContent(*ComponentChildContent) bool
	VisitComponentTypeArgument(*ComponentTypeArgument) bool
	VisitReferenceCapture(*ReferenceCapture) bool
	VisitSetKey(*SetKey) bool
	VisitSplat(*Splat) bool
	VisitFormName(*FormName) bool
	VisitRenderMode(*RenderMode) bool

	VisitExtension(Extension) bool
}

// BaseVisitor is a [Visitor] that visits every node and does nothing.
type BaseVisitor struct{}

var _ Visitor = BaseVisitor{}

func (BaseVisitor) VisitDocument(*Document) bool                                             { return true }
func (BaseVisitor) VisitNamespace(*Namespace) bool                                           { return true }
func (BaseVisitor) VisitUsing(*Using) bool                                                   { return true }
func (BaseVisitor) VisitClass(*Class) bool                                                   { return true }
func (BaseVisitor) VisitMethod(*Method) bool                                                 { return true }
func (BaseVisitor) VisitField(*Field) bool                                                   { return true }
func (BaseVisitor) VisitProperty(*Property) bool                                             { return true }
func (BaseVisitor) VisitHTMLContent(*HTMLContent) bool                                       { return true }
func (BaseVisitor) VisitHTMLAttribute(*HTMLAttribute) bool                                   { return true }
func (BaseVisitor) VisitHTMLAttributeValue(*HTMLAttributeValue) bool                         { return true }
func (BaseVisitor) VisitMarkupElement(*MarkupElement) bool                                   { return true }
func (BaseVisitor) VisitMarkupBlock(*MarkupBlock) bool                                       { return true }
func (BaseVisitor) VisitCSharpExpression(*CSharpExpression) bool                             { return true }
func (BaseVisitor) VisitCSharpCode(*CSharpCode) bool                                         { return true }
func (BaseVisitor) VisitCSharpExpressionAttributeValue(*CSharpExpressionAttributeValue) bool { return true }
func (BaseVisitor) VisitCSharpCodeAttributeValue(*CSharpCodeAttributeValue) bool             { return true }
func (BaseVisitor) VisitToken(*Token) bool                                                   { return true }
func (BaseVisitor) VisitLazyToken(*LazyToken) bool                                           { return true }
func (BaseVisitor) VisitDirective(*Directive) bool                                           { return true }
func (BaseVisitor) VisitDirectiveToken(*DirectiveToken) bool                                 { return true }
func (BaseVisitor) VisitMalformedDirective(*MalformedDirective) bool                         { return true }
func (BaseVisitor) VisitTagHelper(*TagHelper) bool                                           { return true }
func (BaseVisitor) VisitTagHelperBody(*TagHelperBody) bool                                   { return true }
func (BaseVisitor) VisitTagHelperProperty(*TagHelperProperty) bool                           { return true }
func (BaseVisitor) VisitTagHelperHTMLAttribute(*TagHelperHTMLAttribute) bool                 { return true }
func (BaseVisitor) VisitTagHelperDirectiveAttribute(*TagHelperDirectiveAttribute) bool       { return true }
func (BaseVisitor) VisitComponent(*Component) bool                                           { return true }
func (BaseVisitor) VisitComponentAttribute(*ComponentAttribute) bool                         { return true }
func (BaseVisitor) VisitComponentChildContent(*ComponentChildContent) bool                   { return true }
func (BaseVisitor) VisitComponentTypeArgument(*ComponentTypeArgument) bool                   { return true }
func (BaseVisitor) VisitReferenceCapture(*ReferenceCapture) bool                             { return true }
func (BaseVisitor) VisitSetKey(*SetKey) bool                                                 { return true }
func (BaseVisitor) VisitSplat(*Splat) bool                                                   { return true }
func (BaseVisitor) VisitFormName(*FormName) bool                                             { return true }
func (BaseVisitor) VisitRenderMode(*RenderMode) bool                                         { return true }
func (BaseVisitor) VisitExtension(Extension) bool                                            { return true }

// funcVisitor sends every node to a single function.
type funcVisitor func(Node) bool

func (f funcVisitor) VisitDocument(n *Document) bool                                             { return f(n) }
func (f funcVisitor) VisitNamespace(n *Namespace) bool                                           { return f(n) }
func (f funcVisitor) VisitUsing(n *Using) bool                                                   { return f(n) }
func (f funcVisitor) VisitClass(n *Class) bool                                                   { return f(n) }
func (f funcVisitor) VisitMethod(n *Method) bool                                                 { return f(n) }
func (f funcVisitor) VisitField(n *Field) bool                                                   { return f(n) }
func (f funcVisitor) VisitProperty(n *Property) bool                                             { return f(n) }
func (f funcVisitor) VisitHTMLContent(n *HTMLContent) bool                                       { return f(n) }
func (f funcVisitor) VisitHTMLAttribute(n *HTMLAttribute) bool                                   { return f(n) }
func (f funcVisitor) VisitHTMLAttributeValue(n *HTMLAttributeValue) bool                         { return f(n) }
func (f funcVisitor) VisitMarkupElement(n *MarkupElement) bool                                   { return f(n) }
func (f funcVisitor) VisitMarkupBlock(n *MarkupBlock) bool                                       { return f(n) }
func (f funcVisitor) VisitCSharpExpression(n *CSharpExpression) bool                             { return f(n) }
func (f funcVisitor) VisitCSharpCode(n *CSharpCode) bool                                         { return f(n) }
func (f funcVisitor) VisitCSharpExpressionAttributeValue(n *CSharpExpressionAttributeValue) bool { return f(n) }
func (f funcVisitor) VisitCSharpCodeAttributeValue(n *CSharpCodeAttributeValue) bool             { return f(n) }
func (f funcVisitor) VisitToken(n *Token) bool                                                   { return f(n) }
func (f funcVisitor) VisitLazyToken(n *LazyToken) bool                                           { return f(n) }
func (f funcVisitor) VisitDirective(n *Directive) bool                                           { return f(n) }
func (f funcVisitor) VisitDirectiveToken(n *DirectiveToken) bool                                 { return f(n) }
func (f funcVisitor) VisitMalformedDirective(n *MalformedDirective) bool                         { return f(n) }
func (f funcVisitor) VisitTagHelper(n *TagHelper) bool                                           { return f(n) }
func (f funcVisitor) VisitTagHelperBody(n *TagHelperBody) bool                                   { return f(n) }
func (f funcVisitor) VisitTagHelperProperty(n *TagHelperProperty) bool                           { return f(n) }
func (f funcVisitor) VisitTagHelperHTMLAttribute(n *TagHelperHTMLAttribute) bool                 { return f(n) }
func (f funcVisitor) VisitTagHelperDirectiveAttribute(n *TagHelperDirectiveAttribute) bool       { return f(n) }
func (f funcVisitor) VisitComponent(n *Component) bool                                           { return f(n) }
func (f funcVisitor) VisitComponentAttribute(n *ComponentAttribute) bool                         { return f(n) }
func (f funcVisitor) VisitComponentChildContent(n *ComponentChildContent) bool                   { return f(n) }
func (f funcVisitor) VisitComponentTypeArgument(n *ComponentTypeArgument) bool                   { return f(n) }
func (f funcVisitor) VisitReferenceCapture(n *ReferenceCapture) bool                             { return f(n) }
func (f funcVisitor) VisitSetKey(n *SetKey) bool                                                 { return f(n) }
func (f funcVisitor) VisitSplat(n *Splat) bool                                                   { return f(n) }
func (f funcVisitor) VisitFormName(n *FormName) bool                                             { return f(n) }
func (f funcVisitor) VisitRenderMode(n *RenderMode) bool                                         { return f(n) }
func (f funcVisitor) VisitExtension(n Extension) bool                                            { return f(n) }
