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

package intermediate_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/razorcompile/descriptor"
	"github.com/bufbuild/razorcompile/intermediate"
	"github.com/bufbuild/razorcompile/internal/golden"
	"github.com/bufbuild/razorcompile/report"
	"github.com/bufbuild/razorcompile/source"
)

// testNode is the YAML shape of a node in a golden test case.
type testNode struct {
	Kind      string   `yaml:"kind"`
	Name      string   `yaml:"name"`
	Content   string   `yaml:"content"`
	Type      string   `yaml:"type"`
	Base      string   `yaml:"base"`
	Prefix    string   `yaml:"prefix"`
	Suffix    string   `yaml:"suffix"`
	Modifiers []string `yaml:"modifiers"`

	// Offset, line, column and length.
	Span []int `yaml:"span"`
	// Diagnostics, written as "TAG: message".
	Errors   []string `yaml:"errors"`
	Warnings []string `yaml:"warnings"`

	Children []*testNode `yaml:"children"`
}

func TestGolden(t *testing.T) {
	t.Parallel()

	corpus := golden.Corpus{
		Root:       "testdata/tree",
		Refresh:    "RAZORCOMPILE_REFRESH",
		Extensions: []string{"yaml"},
		Outputs: []golden.Output{
			{Extension: "tree.txt"},
			{Extension: "props.txt"},
			{Extension: "diags.txt"},
		},
	}

	corpus.Run(t, func(t *testing.T, path, text string, outputs []string) {
		var desc testNode
		require.NoError(t, yaml.Unmarshal([]byte(text), &desc))
		root := build(t, path, &desc)

		var tree strings.Builder
		intermediate.NewFormatter(&tree).FormatTree(root)
		outputs[0] = tree.String()

		var props strings.Builder
		f := intermediate.NewFormatter(&props)
		f.Mode = intermediate.PreferProperties
		f.FormatTree(root)
		outputs[1] = props.String()

		var diags strings.Builder
		for _, d := range intermediate.AllDiagnostics(root) {
			fmt.Fprintln(&diags, d.Error())
		}
		outputs[2] = diags.String()
	})
}

var pageDirective = &descriptor.Directive{
	Name:        "page",
	Kind:        descriptor.DirectiveSingleLine,
	DisplayName: "page",
	Tokens:      []*descriptor.DirectiveToken{{Kind: descriptor.TokenString, Name: "route"}},
}

func build(t *testing.T, path string, desc *testNode) intermediate.Node {
	t.Helper()

	var node intermediate.Node
	switch desc.Kind {
	case "Document":
		node = &intermediate.Document{DocumentKind: desc.Type}
	case "Namespace":
		node = &intermediate.Namespace{Name: desc.Name}
	case "Using":
		node = &intermediate.Using{Content: desc.Content}
	case "Class":
		node = &intermediate.Class{Name: desc.Name, Modifiers: desc.Modifiers, BaseType: desc.Base}
	case "Method":
		node = &intermediate.Method{Name: desc.Name, Modifiers: desc.Modifiers, ReturnType: desc.Type}
	case "Field":
		node = &intermediate.Field{Name: desc.Name, Modifiers: desc.Modifiers, Type: desc.Type}
	case "Property":
		node = &intermediate.Property{Name: desc.Name, Modifiers: desc.Modifiers, Type: desc.Type, Body: desc.Content}
	case "HTMLContent":
		node = new(intermediate.HTMLContent)
	case "HTMLAttribute":
		node = &intermediate.HTMLAttribute{Name: desc.Name, Prefix: desc.Prefix, Suffix: desc.Suffix}
	case "HTMLAttributeValue":
		node = &intermediate.HTMLAttributeValue{Prefix: desc.Prefix}
	case "MarkupElement":
		node = &intermediate.MarkupElement{TagName: desc.Name}
	case "MarkupBlock":
		node = &intermediate.MarkupBlock{Content: desc.Content}
	case "CSharpExpression":
		node = new(intermediate.CSharpExpression)
	case "CSharpCode":
		node = new(intermediate.CSharpCode)
	case "CSharpExpressionAttributeValue":
		node = &intermediate.CSharpExpressionAttributeValue{Prefix: desc.Prefix}
	case "HTML":
		node = intermediate.HTMLToken(desc.Content)
	case "CSharp":
		node = intermediate.CSharpToken(desc.Content)
	case "LazyCSharp":
		content := desc.Content
		node = intermediate.LazyCSharpToken(func() string { return content })
	case "Directive":
		node = &intermediate.Directive{Name: desc.Name, Directive: pageDirective}
	case "MalformedDirective":
		node = &intermediate.MalformedDirective{Name: desc.Name, Directive: pageDirective}
	case "DirectiveToken":
		node = &intermediate.DirectiveToken{Content: desc.Content, Token: pageDirective.Tokens[0]}
	case "Component":
		node = &intermediate.Component{TagName: desc.Name, TypeName: desc.Type}
	case "ComponentAttribute":
		node = &intermediate.ComponentAttribute{AttributeName: desc.Name, PropertyName: desc.Name, TypeName: desc.Type}
	case "ComponentChildContent":
		node = &intermediate.ComponentChildContent{AttributeName: desc.Name, ParameterName: "context", TypeName: desc.Type}
	default:
		t.Fatalf("%s: unknown node kind %q", path, desc.Kind)
	}

	if len(desc.Span) == 4 {
		node.SetSource(source.New(path, desc.Span[0], desc.Span[1], desc.Span[2], desc.Span[3]))
	}

	addDiagnostics := func(diags []string, newDiag func(report.Tag, *source.Span, string, ...any) *report.Diagnostic) {
		for _, d := range diags {
			tag, msg, _ := strings.Cut(d, ": ")
			var span *source.Span
			if s, ok := node.Source(); ok {
				span = &s
			}
			node.Diagnostics().Add(newDiag(report.Tag(tag), span, "%s", msg))
		}
	}
	addDiagnostics(desc.Errors, report.Errorf)
	addDiagnostics(desc.Warnings, report.Warningf)

	for _, child := range desc.Children {
		node.Children().Add(build(t, path, child))
	}
	return node
}
