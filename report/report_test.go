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

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/razorcompile/checksum"
	"github.com/bufbuild/razorcompile/report"
	"github.com/bufbuild/razorcompile/source"
)

func span(offset int) *source.Span {
	s := source.New("Index.razor", offset, 0, offset, 1)
	return &s
}

func TestList(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var nilList *report.List
	assert.Zero(nilList.Len())
	assert.False(nilList.HasErrors())
	assert.Nil(nilList.Slice())
	for range nilList.All() {
		t.Fatal("nil list should be empty")
	}

	var l report.List
	l.Add(report.Warningf("RZ1", span(3), "three"), nil)
	assert.Equal(1, l.Len())
	assert.False(l.HasErrors())

	l.Add(report.Errorf("RZ2", nil, "no span"))
	assert.True(l.HasErrors())
	assert.Equal("no span", l.At(1).Message)
}

func TestSortStable(t *testing.T) {
	t.Parallel()

	a := report.Errorf("A", span(10), "a")
	b := report.Errorf("B", span(2), "b")
	c := report.Errorf("C", nil, "c")
	d := report.Errorf("D", span(2), "d")
	e := report.Errorf("E", nil, "e")

	diags := []*report.Diagnostic{a, b, c, d, e}
	report.SortStable(diags)
	assert.Equal(t, []*report.Diagnostic{c, e, b, d, a}, diags)
}

func TestDiagnostic(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	d := report.Errorf("RZ1034", span(4), "found %d problems", 2)
	assert.Equal(report.Error, d.Level)
	assert.Equal("(4:0,4 [1] Index.razor) error RZ1034: found 2 problems", d.Error())
	assert.Equal("warning RZ9: careful", report.Warningf("RZ9", nil, "careful").Error())
	assert.Equal("Level(9)", report.Level(9).String())

	sum := func(d *report.Diagnostic) checksum.Checksum {
		var b checksum.Builder
		d.AppendTo(&b)
		return b.FreeAndGetChecksum()
	}
	assert.Equal(sum(d), sum(report.Errorf("RZ1034", span(4), "found 2 problems")))
	assert.NotEqual(sum(d), sum(report.Errorf("RZ1034", span(5), "found 2 problems")))
	assert.NotEqual(sum(d), sum(report.Errorf("RZ1034", nil, "found 2 problems")))
}
