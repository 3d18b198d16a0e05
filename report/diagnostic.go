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

// Package report defines the diagnostics attached to intermediate nodes and
// descriptors.
//
// Diagnostics describe malformed input. They are accumulated next to the
// construct they describe and collected explicitly; they are never used to
// abort processing of the rest of a document.
package report

import (
	"fmt"

	"github.com/bufbuild/razorcompile/checksum"
	"github.com/bufbuild/razorcompile/source"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Red. Indicates a semantic constraint violation.
	Error Level = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Informational remark.
	Info
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Tag is a machine-readable identifier for a diagnostic, such as RZ1034.
type Tag string

// Diagnostic is a message about some piece of source.
//
// Diagnostic implements error so that it can be returned by callers that want
// to, but nothing in this module ever does.
type Diagnostic struct {
	Tag     Tag
	Level   Level
	Message string

	// The location this diagnostic refers to, if any.
	Span *source.Span
}

// Errorf returns a new error-level diagnostic.
func Errorf(tag Tag, span *source.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Tag:     tag,
		Level:   Error,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// Warningf returns a new warning-level diagnostic.
func Warningf(tag Tag, span *source.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Tag:     tag,
		Level:   Warning,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

// Error implements [error].
func (d *Diagnostic) Error() string {
	if d.Span == nil {
		return fmt.Sprintf("%s %s: %s", d.Level, d.Tag, d.Message)
	}
	return fmt.Sprintf("%s %s %s: %s", d.Span, d.Level, d.Tag, d.Message)
}

// AppendTo appends this diagnostic's fields into a checksum builder.
func (d *Diagnostic) AppendTo(b *checksum.Builder) {
	b.AppendString(string(d.Tag))
	b.AppendInt32(int32(d.Level))
	b.AppendString(d.Message)
	if d.Span == nil {
		b.AppendNull()
		return
	}
	b.AppendString(d.Span.Path)
	b.AppendInt(d.Span.Offset)
	b.AppendInt(d.Span.Line)
	b.AppendInt(d.Span.Column)
	b.AppendInt(d.Span.Length)
}
