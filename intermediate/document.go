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

import "strings"

// Document is the root of an intermediate tree.
type Document struct {
	Base

	// Identifies the lowering that produced this document, such as "mvc.1.0.view"
	// or "component.1.0".
	DocumentKind string
}

func (*Document) Kind() Kind                { return KindDocument }
func (n *Document) Accept(v Visitor) bool   { return v.VisitDocument(n) }
func (n *Document) FormatNode(f *Formatter) { f.WriteProperty("DocumentKind", n.DocumentKind) }

// Namespace is a namespace declaration.
type Namespace struct {
	Base
	Name string
}

func (*Namespace) Kind() Kind                { return KindNamespace }
func (n *Namespace) Accept(v Visitor) bool   { return v.VisitNamespace(n) }
func (n *Namespace) FormatNode(f *Formatter) { f.WriteContent(n.Name) }

// Using is a using directive, such as "System.Linq".
type Using struct {
	leaf
	Content              string
	HasExplicitSemicolon bool
}

func (*Using) Kind() Kind              { return KindUsing }
func (n *Using) Accept(v Visitor) bool { return v.VisitUsing(n) }

func (n *Using) FormatNode(f *Formatter) {
	f.WriteContent(n.Content)
	f.WriteProperty("Content", n.Content)
	f.WriteProperty("HasExplicitSemicolon", boolProperty(n.HasExplicitSemicolon))
}

// TypeParameter is a generic type parameter of a [Class].
type TypeParameter struct {
	Name        string
	Constraints string
}

// Class is a class declaration.
type Class struct {
	Base

	Name           string
	Modifiers      []string
	BaseType       string
	Interfaces     []string
	TypeParameters []TypeParameter
}

func (*Class) Kind() Kind              { return KindClass }
func (n *Class) Accept(v Visitor) bool { return v.VisitClass(n) }

func (n *Class) FormatNode(f *Formatter) {
	f.WriteContent(n.Name)
	f.WriteProperty("Name", n.Name)
	f.WriteProperty("Modifiers", strings.Join(n.Modifiers, ", "))
	f.WriteProperty("BaseType", n.BaseType)
	f.WriteProperty("Interfaces", strings.Join(n.Interfaces, ", "))

	params := make([]string, len(n.TypeParameters))
	for i, p := range n.TypeParameters {
		params[i] = p.Name
	}
	f.WriteProperty("TypeParameters", strings.Join(params, ", "))
}

// MethodParameter is a parameter of a [Method].
type MethodParameter struct {
	Modifiers []string
	TypeName  string
	Name      string
}

func (p MethodParameter) String() string {
	var b strings.Builder
	for _, m := range p.Modifiers {
		b.WriteString(m)
		b.WriteByte(' ')
	}
	b.WriteString(p.TypeName)
	b.WriteByte(' ')
	b.WriteString(p.Name)
	return b.String()
}

// Method is a method declaration. Its children are its body.
type Method struct {
	Base

	Name       string
	Modifiers  []string
	ReturnType string
	Parameters []MethodParameter
}

func (*Method) Kind() Kind              { return KindMethod }
func (n *Method) Accept(v Visitor) bool { return v.VisitMethod(n) }

func (n *Method) FormatNode(f *Formatter) {
	f.WriteContent(n.Name)
	f.WriteProperty("Name", n.Name)
	f.WriteProperty("Modifiers", strings.Join(n.Modifiers, ", "))
	f.WriteProperty("ReturnType", n.ReturnType)

	params := make([]string, len(n.Parameters))
	for i, p := range n.Parameters {
		params[i] = p.String()
	}
	f.WriteProperty("Parameters", strings.Join(params, ", "))
}

// Field is a field declaration.
type Field struct {
	leaf

	Name      string
	Type      string
	Modifiers []string

	// Compiler warning codes to suppress around the declaration.
	SuppressWarnings []string
}

func (*Field) Kind() Kind              { return KindField }
func (n *Field) Accept(v Visitor) bool { return v.VisitField(n) }

func (n *Field) FormatNode(f *Formatter) {
	f.WriteContent(n.Name)
	f.WriteProperty("Name", n.Name)
	f.WriteProperty("Type", n.Type)
	f.WriteProperty("Modifiers", strings.Join(n.Modifiers, ", "))
	f.WriteProperty("SuppressWarnings", strings.Join(n.SuppressWarnings, ", "))
}

// Property is a property declaration with an expression body.
type Property struct {
	leaf

	Name      string
	Type      string
	Modifiers []string
	Body      string
}

func (*Property) Kind() Kind              { return KindProperty }
func (n *Property) Accept(v Visitor) bool { return v.VisitProperty(n) }

func (n *Property) FormatNode(f *Formatter) {
	f.WriteContent(n.Name)
	f.WriteProperty("Name", n.Name)
	f.WriteProperty("Type", n.Type)
	f.WriteProperty("Modifiers", strings.Join(n.Modifiers, ", "))
	f.WriteProperty("Body", n.Body)
}

func boolProperty(b bool) string {
	if b {
		return "true"
	}
	return ""
}
