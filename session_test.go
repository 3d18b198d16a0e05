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

package razorcompile_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/razorcompile"
	"github.com/bufbuild/razorcompile/descriptor"
	"github.com/bufbuild/razorcompile/intermediate"
)

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestLoadOptions(t *testing.T) {
	t.Parallel()

	want := razorcompile.Options{
		DescriptorCacheSize: 200,
		StringCachePurge:    128,
		BatchDelay:          250 * time.Millisecond,
		FormatWidth:         80,
		VerifyChecksums:     true,
		LogLevel:            slog.LevelDebug,
	}

	tests := []struct {
		name, file, text string
	}{
		{
			name: "yaml",
			file: "razor.yaml",
			text: `
descriptor_cache_size: 200
string_cache_purge: 128
batch_delay: 250ms
format_width: 80
verify_checksums: true
log_level: debug
`,
		},
		{
			name: "toml",
			file: "razor.toml",
			text: `
descriptor_cache_size = 200
string_cache_purge = 128
batch_delay = "250ms"
format_width = 80
verify_checksums = true
log_level = "DEBUG"
`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			opts, err := razorcompile.LoadOptions(writeFile(t, test.file, test.text))
			require.NoError(t, err)
			assert.Equal(t, want, opts)
		})
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, file, text, err string
	}{
		{"unknown yaml key", "a.yml", "descriptor_cache: 1\n", "descriptor_cache"},
		{"unknown toml key", "a.toml", "cache = 1\n", `unknown option "cache"`},
		{"negative", "a.yaml", "format_width: -1\n", "format_width must not be negative"},
		{"bad duration", "a.toml", `batch_delay = "soon"`, "soon"},
		{"extension", "a.json", "{}", "unknown options file format"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := razorcompile.LoadOptions(writeFile(t, test.file, test.text))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}

	_, err := razorcompile.LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEmptyOptionsFile(t *testing.T) {
	t.Parallel()

	opts, err := razorcompile.LoadOptions(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, razorcompile.Options{}, opts)

	s := razorcompile.NewSession(opts, nil)
	assert.Equal(t, razorcompile.DefaultBatchDelay, s.Options().BatchDelay)
	assert.Positive(t, s.Options().DescriptorCacheSize)
}

func TestSessionDecoder(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	helper := func() *descriptor.TagHelper {
		return &descriptor.TagHelper{
			Kind:         descriptor.KindComponent,
			Name:         "App.Counter",
			AssemblyName: "App",
		}
	}

	var buf bytes.Buffer
	require.NoError(t, descriptor.Encode(&buf, []*descriptor.TagHelper{helper()}))
	data := buf.Bytes()

	s := razorcompile.NewSession(razorcompile.Options{VerifyChecksums: true}, nil)
	first, err := s.Decoder().Decode(bytes.NewReader(data))
	require.NoError(t, err)
	second, err := s.Decoder().Decode(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Same(first[0], second[0])
	assert.Equal(helper().Checksum(), first[0].Checksum())
	assert.Equal(1, s.TagHelpers().Len())

	// A second session shares nothing with the first.
	other := razorcompile.NewSession(razorcompile.Options{}, nil)
	third, err := other.Decoder().Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.NotSame(first[0], third[0])
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	s := razorcompile.NewSession(razorcompile.Options{}, nil)
	a := &descriptor.TagHelper{Kind: descriptor.KindTagHelper, Name: "A", AssemblyName: "App"}
	b := &descriptor.TagHelper{Kind: descriptor.KindTagHelper, Name: "B", AssemblyName: "App"}
	page := &descriptor.Directive{Name: "page"}

	base := s.Fingerprint(descriptor.NewCollection(a, b), page)
	assert.Equal(base, s.Fingerprint(descriptor.NewCollection(a, b), page))
	assert.NotEqual(base, s.Fingerprint(descriptor.NewCollection(a, b)))
	assert.NotEqual(base, s.Fingerprint(descriptor.NewCollection(a), page))
	assert.False(base.IsNull())
}

func TestSessionFormatter(t *testing.T) {
	t.Parallel()

	s := razorcompile.NewSession(razorcompile.Options{FormatWidth: 8}, nil)
	var out strings.Builder
	s.Formatter(&out).FormatNode(intermediate.HTMLToken("<div>hello</div>"))
	assert.Equal(t, `Token "<div>..."`, out.String())
}

func TestSessionQueue(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var logs bytes.Buffer
	var mu sync.Mutex
	handler := slog.NewTextHandler(&syncWriter{&logs, &mu}, &slog.HandlerOptions{Level: slog.LevelDebug})
	s := razorcompile.NewSession(razorcompile.Options{BatchDelay: time.Millisecond}, slog.New(handler))

	var got []string
	q := razorcompile.NewQueue(t.Context(), s, func(_ context.Context, items []string) error {
		got = append(got, items...)
		if len(got) == 1 {
			panic("first batch")
		}
		return nil
	})
	q.Add("a")
	require.NoError(t, q.Wait(t.Context()))
	q.Add("b")
	require.NoError(t, q.Wait(t.Context()))

	assert.Equal([]string{"a", "b"}, got)
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(logs.String(), "queue=batch")
	assert.Contains(logs.String(), "first batch")
}

func TestSessionLogLevel(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	handler := slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})
	s := razorcompile.NewSession(razorcompile.Options{LogLevel: slog.LevelWarn}, slog.New(handler))

	s.Logger().Info("dropped")
	s.Logger().With("k", "v").Warn("kept")
	assert.NotContains(t, logs.String(), "dropped")
	assert.Contains(t, logs.String(), "kept")
	assert.Contains(t, logs.String(), "k=v")
}

type syncWriter struct {
	buf *bytes.Buffer
	mu  *sync.Mutex
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}
