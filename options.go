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

package razorcompile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/razorcompile/cache"
)

// DefaultBatchDelay is the batch delay used when Options.BatchDelay is zero.
const DefaultBatchDelay = 100 * time.Millisecond

// ErrUnknownFormat is returned by [LoadOptions] for files that are neither
// YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown options file format")

// Options configures a [Session].
//
// The zero value is valid and selects defaults for everything.
type Options struct {
	// The number of tag helpers the descriptor cache holds before it starts
	// evicting the least recently used ones.
	DescriptorCacheSize int `yaml:"descriptor_cache_size" toml:"descriptor_cache_size"`

	// The minimum number of interned strings before the intern table is
	// scanned for collected entries.
	StringCachePurge int `yaml:"string_cache_purge" toml:"string_cache_purge"`

	// How long a work queue waits for more items before processing a batch.
	BatchDelay time.Duration `yaml:"batch_delay" toml:"batch_delay"`

	// If positive, debug output truncates node content to this many columns.
	FormatWidth int `yaml:"format_width" toml:"format_width"`

	// Re-hash decoded descriptors and reject ones whose checksum does not
	// match.
	VerifyChecksums bool `yaml:"verify_checksums" toml:"verify_checksums"`

	// The minimum level of log records a session emits.
	LogLevel slog.Level `yaml:"log_level" toml:"log_level"`
}

// LoadOptions reads options from a file. The format is chosen by extension:
// .yaml and .yml files are YAML, and .toml files are TOML. Unknown keys are an
// error.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}

	var opts Options
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return Options{}, fmt.Errorf("%s: %w", path, err)
		}

	case ".toml":
		md, err := toml.Decode(string(data), &opts)
		if err != nil {
			return Options{}, fmt.Errorf("%s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Options{}, fmt.Errorf("%s: unknown option %q", path, undecoded[0].String())
		}

	default:
		return Options{}, fmt.Errorf("%s: %w %q", path, ErrUnknownFormat, ext)
	}

	return opts, opts.Validate()
}

// Validate checks that every option is in range.
func (o Options) Validate() error {
	var errs []error
	if o.DescriptorCacheSize < 0 {
		errs = append(errs, fmt.Errorf("descriptor_cache_size must not be negative, got %d", o.DescriptorCacheSize))
	}
	if o.StringCachePurge < 0 {
		errs = append(errs, fmt.Errorf("string_cache_purge must not be negative, got %d", o.StringCachePurge))
	}
	if o.BatchDelay < 0 {
		errs = append(errs, fmt.Errorf("batch_delay must not be negative, got %v", o.BatchDelay))
	}
	if o.FormatWidth < 0 {
		errs = append(errs, fmt.Errorf("format_width must not be negative, got %d", o.FormatWidth))
	}
	return errors.Join(errs...)
}

// withDefaults fills in every unset option.
func (o Options) withDefaults() Options {
	if o.DescriptorCacheSize == 0 {
		o.DescriptorCacheSize = cache.DefaultSizeLimit
	}
	if o.BatchDelay == 0 {
		o.BatchDelay = DefaultBatchDelay
	}
	return o
}
