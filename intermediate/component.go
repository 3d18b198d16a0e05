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

// Component is an element that resolved to a component. Its children are its
// attributes, child content, type arguments and captures.
type Component struct {
	Base

	TagName   string
	TypeName  string
	Component *descriptor.TagHelper
}

// Attributes returns an iterator over this component's attributes.
func (n *Component) Attributes() iter.Seq[*ComponentAttribute] {
	return childrenOfType[*ComponentAttribute](n)
}

// ChildContents returns an iterator over this component's child content.
func (n *Component) ChildContents() iter.Seq[*ComponentChildContent] {
	return childrenOfType[*ComponentChildContent](n)
}

// TypeArguments returns an iterator over this component's explicit type
// arguments.
func (n *Component) TypeArguments() iter.Seq[*ComponentTypeArgument] {
	return childrenOfType[*ComponentTypeArgument](n)
}

func (*Component) Kind() Kind              { return KindComponent }
func (n *Component) Accept(v Visitor) bool { return v.VisitComponent(n) }

func (n *Component) FormatNode(f *Formatter) {
	f.WriteContent(n.TagName)
	f.WriteProperty("TagName", n.TagName)
	f.WriteProperty("TypeName", n.TypeName)
	f.WriteProperty("Component", tagHelperNames(n.Component))
}

// ComponentAttribute is an attribute passed to a component parameter. Its
// children are the value.
type ComponentAttribute struct {
	Base

	AttributeName      string
	PropertyName       string
	TypeName           string
	AttributeStructure AttributeStructure
	BoundAttribute     *descriptor.BoundAttribute
	TagHelper          *descriptor.TagHelper
}

func (*ComponentAttribute) Kind() Kind              { return KindComponentAttribute }
func (n *ComponentAttribute) Accept(v Visitor) bool { return v.VisitComponentAttribute(n) }

func (n *ComponentAttribute) FormatNode(f *Formatter) {
	f.WriteContent(n.AttributeName)
	f.WriteProperty("AttributeName", n.AttributeName)
	f.WriteProperty("PropertyName", n.PropertyName)
	f.WriteProperty("TypeName", n.TypeName)
	f.WriteProperty("AttributeStructure", n.AttributeStructure.String())
	if n.BoundAttribute != nil {
		f.WriteProperty("BoundAttribute", n.BoundAttribute.Name)
	}
}

// ComponentChildContent is a fragment of markup passed to a component as a
// render fragment parameter.
type ComponentChildContent struct {
	Base

	AttributeName string
	// The name of the lambda parameter the content is written against, such
	// as "context".
	ParameterName string
	TypeName      string
}

func (*ComponentChildContent) Kind() Kind              { return KindComponentChildContent }
func (n *ComponentChildContent) Accept(v Visitor) bool { return v.VisitComponentChildContent(n) }

func (n *ComponentChildContent) FormatNode(f *Formatter) {
	f.WriteContent(n.AttributeName)
	f.WriteProperty("AttributeName", n.AttributeName)
	f.WriteProperty("ParameterName", n.ParameterName)
	f.WriteProperty("TypeName", n.TypeName)
}

// ComponentTypeArgument is an explicit generic argument of a component. Its
// children are the argument's tokens.
type ComponentTypeArgument struct {
	Base
	TypeParameterName string
}

func (*ComponentTypeArgument) Kind() Kind              { return KindComponentTypeArgument }
func (n *ComponentTypeArgument) Accept(v Visitor) bool { return v.VisitComponentTypeArgument(n) }

func (n *ComponentTypeArgument) FormatNode(f *Formatter) {
	f.WriteContent(childContent(n))
	f.WriteProperty("TypeParameterName", n.TypeParameterName)
}

// ReferenceCapture is an `@ref` attribute that captures an element or
// component into a field.
type ReferenceCapture struct {
	Base

	IdentifierToken TokenNode
	FieldTypeName   string
	// Set when the capture targets a component rather than an element.
	ComponentCaptureTypeName string
}

func (*ReferenceCapture) Kind() Kind              { return KindReferenceCapture }
func (n *ReferenceCapture) Accept(v Visitor) bool { return v.VisitReferenceCapture(n) }

func (n *ReferenceCapture) FormatNode(f *Formatter) {
	if n.IdentifierToken != nil {
		f.WriteContent(n.IdentifierToken.Content())
	}
	f.WriteProperty("FieldTypeName", n.FieldTypeName)
	f.WriteProperty("ComponentCaptureTypeName", n.ComponentCaptureTypeName)
}

// SetKey is an `@key` attribute.
type SetKey struct {
	Base
	KeyValueToken TokenNode
}

func (*SetKey) Kind() Kind              { return KindSetKey }
func (n *SetKey) Accept(v Visitor) bool { return v.VisitSetKey(n) }

func (n *SetKey) FormatNode(f *Formatter) {
	if n.KeyValueToken != nil {
		f.WriteContent(n.KeyValueToken.Content())
	}
}

// Splat is an `@attributes` attribute. Its children are the expression.
type Splat struct{ Base }

func (*Splat) Kind() Kind                { return KindSplat }
func (n *Splat) Accept(v Visitor) bool   { return v.VisitSplat(n) }
func (n *Splat) FormatNode(f *Formatter) { f.WriteContent(childContent(n)) }

// FormName is an `@formname` attribute. Its children are the value.
type FormName struct{ Base }

func (*FormName) Kind() Kind                { return KindFormName }
func (n *FormName) Accept(v Visitor) bool   { return v.VisitFormName(n) }
func (n *FormName) FormatNode(f *Formatter) { f.WriteContent(childContent(n)) }

// RenderMode is an `@rendermode` directive or attribute. Its children are the
// expression.
type RenderMode struct{ Base }

func (*RenderMode) Kind() Kind                { return KindRenderMode }
func (n *RenderMode) Accept(v Visitor) bool   { return v.VisitRenderMode(n) }
func (n *RenderMode) FormatNode(f *Formatter) { f.WriteContent(childContent(n)) }

func childrenOfType[T Node](n Node) iter.Seq[T] {
	return func(yield func(T) bool) {
		for child := range n.Children().Values() {
			if t, ok := child.(T); ok && !yield(t) {
				return
			}
		}
	}
}
