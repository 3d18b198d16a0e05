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

import "fmt"

// Kind identifies the concrete type of a [Node].
type Kind int8

const (
	KindUnknown Kind = iota

	KindDocument
	KindNamespace
	KindUsing
	KindClass
	KindMethod
	KindField
	KindProperty

	KindHTMLContent
	KindHTMLAttribute
	KindHTMLAttributeValue
	KindMarkupElement
	KindMarkupBlock

	KindCSharpExpression
	KindCSharpCode
	KindCSharpExpressionAttributeValue
	KindCSharpCodeAttributeValue

	KindToken
	KindLazyToken

	KindDirective
	KindDirectiveToken
	KindMalformedDirective

	KindTagHelper
	KindTagHelperBody
	KindTagHelperProperty
	KindTagHelperHTMLAttribute
	KindTagHelperDirectiveAttribute

	KindComponent
	KindComponentAttribute
	KindComponentChildContent
	KindComponentTypeArgument
	KindReferenceCapture
	KindSetKey
	KindSplat
	KindFormName
	KindRenderMode

	KindExtension

	kindCount
)

var kindNames = [...]string{
	KindUnknown: "Unknown",

	KindDocument:  "Document",
	KindNamespace: "Namespace",
	KindUsing:     "Using",
	KindClass:     "Class",
	KindMethod:    "Method",
	KindField:     "Field",
	KindProperty:  "Property",

	KindHTMLContent:        "HTMLContent",
	KindHTMLAttribute:      "HTMLAttribute",
	KindHTMLAttributeValue: "HTMLAttributeValue",
	KindMarkupElement:      "MarkupElement",
	KindMarkupBlock:        "MarkupBlock",

	KindCSharpExpression:               "CSharpExpression",
	KindCSharpCode:                     "CSharpCode",
	KindCSharpExpressionAttributeValue: "CSharpExpressionAttributeValue",
	KindCSharpCodeAttributeValue:       "CSharpCodeAttributeValue",

	KindToken:     "Token",
	KindLazyToken: "LazyToken",

	KindDirective:          "Directive",
	KindDirectiveToken:     "DirectiveToken",
	KindMalformedDirective: "MalformedDirective",

	KindTagHelper:                   "TagHelper",
	KindTagHelperBody:               "TagHelperBody",
	KindTagHelperProperty:           "TagHelperProperty",
	KindTagHelperHTMLAttribute:      "TagHelperHTMLAttribute",
	KindTagHelperDirectiveAttribute: "TagHelperDirectiveAttribute",

	KindComponent:             "Component",
	KindComponentAttribute:    "ComponentAttribute",
	KindComponentChildContent: "ComponentChildContent",
	KindComponentTypeArgument: "ComponentTypeArgument",
	KindReferenceCapture:      "ReferenceCapture",
	KindSetKey:                "SetKey",
	KindSplat:                 "Splat",
	KindFormName:              "FormName",
	KindRenderMode:            "RenderMode",

	KindExtension: "Extension",
}

// String implements [fmt.Stringer].
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}
