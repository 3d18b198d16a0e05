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

// Package golden provides a framework for writing file-based golden tests.
//
// The primary entry-point is [Corpus]. Define a new corpus in an ordinary Go
// test body and call [Corpus.Run] to execute it.
//
// Corpora can be "refreshed" to automatically generate the golden files
// instead of comparing against them. To do so, run the test with the
// environment variable named by [Corpus.Refresh] set to a glob matching the
// test files to regenerate, relative to the directory of the calling test.
package golden

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus. This is essentially a way of doing
// table-driven tests where the "table" is in your file system.
type Corpus struct {
	// The root of the test data directory. This path is relative to the
	// directory of the file that calls [Corpus.Run].
	Root string

	// An environment variable to check with regards to whether to run in
	// "refresh" mode or not.
	Refresh string

	// File extensions (without a dot) of files which define a test case,
	// such as "yaml".
	Extensions []string

	// Possible outputs of the test, which are found using Output.Extension.
	// If the file for a particular output is missing, it is treated as being
	// expected to be empty.
	Outputs []Output
}

// Output represents the output of a test case.
type Output struct {
	// The extension of the output. This is a suffix to the name of the test
	// case's main file; so if Corpus.Extensions contains "yaml" and this is
	// "tree.txt", for a test "foo.yaml" the runner looks for "foo.yaml.tree.txt".
	Extension string

	// The comparison function for this output. May be nil, in which case the
	// values are compared byte-for-byte.
	Compare CompareFunc
}

// CompareFunc compares two strings, and returns an error message if they do not
// match. Returns the empty string when they do.
type CompareFunc func(got, want string) string

// Run executes a golden test.
//
// test is called once per test case. It receives the path of the case
// relative to the calling test's directory, the text of the case, and a slice
// to write outputs into; outputs[i] corresponds to c.Outputs[i].
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	t.Helper()

	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)
	t.Logf("golden: searching for files in %q", root)

	var tests []string
	for _, ext := range c.Extensions {
		matches, err := doublestar.Glob(os.DirFS(root), "**/*."+ext)
		if err != nil {
			t.Fatalf("golden: error while globbing %q: %v", root, err)
		}
		for _, m := range matches {
			tests = append(tests, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	slices.Sort(tests)
	if len(tests) == 0 {
		t.Fatalf("golden: no test cases found in %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("golden: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("golden: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, path := range tests {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			bytes, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error while loading input file %q: %v", path, err)
			}

			results := make([]string, len(c.Outputs))
			test(t, name, string(bytes), results)

			refresh, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				path := fmt.Sprint(path, ".", output.Extension)
				if refresh {
					writeOutput(t, path, results[i])
					continue
				}

				want, err := os.ReadFile(path)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("golden: error while loading output file %q: %v", path, err)
					continue
				}

				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if msg := compare(results[i], string(want)); msg != "" {
					t.Errorf("golden: output mismatch for %q:\n%s", path, msg)
				}
			}
		})
	}
}

// Diff is the default [CompareFunc]. It returns a colorized unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	added := color.New(color.FgHiGreen, color.Bold)
	removed := color.New(color.FgHiRed, color.Bold)

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func writeOutput(t *testing.T, path, result string) {
	t.Helper()

	if result == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("golden: error while deleting output file %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(result), 0o600); err != nil {
		t.Errorf("golden: error while writing output file %q: %v", path, err)
	}
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("golden: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
