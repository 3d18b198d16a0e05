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
	"strings"

	"github.com/bufbuild/razorcompile/descriptor"
)

// TagMode is how an element was written in the source.
type TagMode int8

const (
	StartTagAndEndTag TagMode = iota
	SelfClosing
	StartTagOnly
)

// String implements [fmt.Stringer].
func (m TagMode) String() string {
	switch m {
	case StartTagAndEndTag:
		return "StartTagAndEndTag"
	case SelfClosing:
		return "SelfClosing"
	case StartTagOnly:
		return "StartTagOnly"
	default:
		return fmt.Sprintf("TagMode(%d)", int(m))
	}
}

// AttributeStructure is how an attribute's value was quoted in the source.
type AttributeStructure int8

const (
	DoubleQuotes AttributeStructure = iota
	SingleQuotes
	NoQuotes
	Minimized
)

// String implements [fmt.Stringer].
func (s AttributeStructure) String() string {
	switch s {
	case DoubleQuotes:
		return "DoubleQuotes"
	case SingleQuotes:
		return "SingleQuotes"
	case NoQuotes:
		return "NoQuotes"
	case Minimized:
		return "Minimized"
	default:
		return fmt.Sprintf("AttributeStructure(%d)", int(s))
	}
}

// TagHelper is an element that one or more tag helpers bound to. Its children
// are its attributes and a [TagHelperBody].
type TagHelper struct {
	Base

	TagName    string
	TagMode    TagMode
	TagHelpers []*descriptor.TagHelper
}

// Body returns this element's body, or nil if it has none.
func (n *TagHelper) Body() *TagHelperBody {
	for child := range n.Children().Values() {
		if body, ok := child.(*TagHelperBody); ok {
			return body
		}
	}
	return nil
}

func (*TagHelper) Kind() Kind              { return KindTagHelper }
func (n *TagHelper) Accept(v Visitor) bool { return v.VisitTagHelper(n) }

func (n *TagHelper) FormatNode(f *Formatter) {
	f.WriteContent(n.TagName)
	f.WriteProperty("TagName", n.TagName)
	f.WriteProperty("TagMode", n.TagMode.String())
	f.WriteProperty("TagHelpers", tagHelperNames(n.TagHelpers...))
}

// TagHelperBody is the body of a [TagHelper] element.
type TagHelperBody struct{ Base }

func (*TagHelperBody) Kind() Kind              { return KindTagHelperBody }
func (n *TagHelperBody) Accept(v Visitor) bool { return v.VisitTagHelperBody(n) }
func (*TagHelperBody) FormatNode(*Formatter)   {}

// TagHelperProperty is an attribute that binds to a tag helper property. Its
// children are the attribute's value.
type TagHelperProperty struct {
	Base

	AttributeName      string
	AttributeStructure AttributeStructure
	BoundAttribute     *descriptor.BoundAttribute
	TagHelper          *descriptor.TagHelper

	// Set when the attribute matched the bound attribute's indexer prefix
	// rather than its name.
	IsIndexerNameMatch bool
}

func (*TagHelperProperty) Kind() Kind              { return KindTagHelperProperty }
func (n *TagHelperProperty) Accept(v Visitor) bool { return v.VisitTagHelperProperty(n) }

func (n *TagHelperProperty) FormatNode(f *Formatter) {
	f.WriteContent(n.AttributeName)
	f.WriteProperty("AttributeName", n.AttributeName)
	f.WriteProperty("AttributeStructure", n.AttributeStructure.String())
	if n.BoundAttribute != nil {
		f.WriteProperty("BoundAttribute", n.BoundAttribute.Name)
	}
	f.WriteProperty("IsIndexerNameMatch", boolProperty(n.IsIndexerNameMatch))
	f.WriteProperty("TagHelper", tagHelperNames(n.TagHelper))
}

// TagHelperHTMLAttribute is an attribute on a [TagHelper] element that did not
// bind to anything and is emitted as markup.
type TagHelperHTMLAttribute struct {
	Base

	AttributeName      string
	AttributeStructure AttributeStructure
}

func (*TagHelperHTMLAttribute) Kind() Kind              { return KindTagHelperHTMLAttribute }
func (n *TagHelperHTMLAttribute) Accept(v Visitor) bool { return v.VisitTagHelperHTMLAttribute(n) }

func (n *TagHelperHTMLAttribute) FormatNode(f *Formatter) {
	f.WriteContent(n.AttributeName)
	f.WriteProperty("AttributeName", n.AttributeName)
	f.WriteProperty("AttributeStructure", n.AttributeStructure.String())
}

// TagHelperDirectiveAttribute is a directive attribute, such as `@bind`,
// bound by a tag helper.
type TagHelperDirectiveAttribute struct {
	Base

	AttributeName string
	// The attribute as written, including its "@" prefix and any parameter.
	OriginalAttributeName string
	AttributeStructure    AttributeStructure
	BoundAttribute        *descriptor.BoundAttribute
	TagHelper             *descriptor.TagHelper
}

func (*TagHelperDirectiveAttribute) Kind() Kind { return KindTagHelperDirectiveAttribute }
func (n *TagHelperDirectiveAttribute) Accept(v Visitor) bool {
	return v.VisitTagHelperDirectiveAttribute(n)
}

func (n *TagHelperDirectiveAttribute) FormatNode(f *Formatter) {
	f.WriteContent(n.OriginalAttributeName)
	f.WriteProperty("AttributeName", n.AttributeName)
	f.WriteProperty("OriginalAttributeName", n.OriginalAttributeName)
	f.WriteProperty("AttributeStructure", n.AttributeStructure.String())
	if n.BoundAttribute != nil {
		f.WriteProperty("BoundAttribute", n.BoundAttribute.Name)
	}
	f.WriteProperty("TagHelper", tagHelperNames(n.TagHelper))
}

func tagHelperNames(helpers ...*descriptor.TagHelper) string {
	var b strings.Builder
	for _, h := range helpers {
		if h == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h.Name)
	}
	return b.String()
}
