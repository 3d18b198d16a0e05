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

package golden_test

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/razorcompile/internal/golden"
)

func TestDiff(t *testing.T) { //nolint:paralleltest // Mutates color.NoColor.
	assert := assert.New(t)

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	assert.Empty(golden.Diff("a\nb\n", "a\nb\n"))
	diff := golden.Diff("a\nc\n", "a\nb\n")
	assert.Contains(diff, "--- want\n+++ got\n")
	assert.Contains(diff, "\n a\n-b\n+c\n")
}
