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
	"context"
	"log/slog"
	"strings"

	"github.com/bufbuild/razorcompile/cache"
	"github.com/bufbuild/razorcompile/checksum"
	"github.com/bufbuild/razorcompile/descriptor"
	"github.com/bufbuild/razorcompile/intermediate"
	"github.com/bufbuild/razorcompile/workqueue"
)

// Session owns the services shared by everything compiled in one editor or
// build session.
//
// All methods are safe to call concurrently.
type Session struct {
	opts Options
	log  *slog.Logger

	checksums  *checksum.Pool
	tagHelpers *descriptor.TagHelperCache
	strings    *cache.StringCache
}

// NewSession returns a new session. log may be nil, in which case nothing is
// logged.
func NewSession(opts Options, log *slog.Logger) *Session {
	opts = opts.withDefaults()
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = slog.New(levelHandler{log.Handler(), opts.LogLevel})

	return &Session{
		opts:       opts,
		log:        log,
		checksums:  checksum.NewPool(),
		tagHelpers: descriptor.NewTagHelperCache(opts.DescriptorCacheSize, log.With("cache", "tag_helpers")),
		strings:    cache.NewStringCache(opts.StringCachePurge),
	}
}

// Options returns this session's options, with defaults filled in.
func (s *Session) Options() Options { return s.opts }

// Logger returns this session's logger.
func (s *Session) Logger() *slog.Logger { return s.log }

// Checksums returns this session's checksum builder pool.
func (s *Session) Checksums() *checksum.Pool { return s.checksums }

// TagHelpers returns this session's descriptor cache.
func (s *Session) TagHelpers() *descriptor.TagHelperCache { return s.tagHelpers }

// Strings returns this session's string intern table.
func (s *Session) Strings() *cache.StringCache { return s.strings }

// Decoder returns a descriptor decoder backed by this session's caches.
func (s *Session) Decoder() *descriptor.Decoder {
	return &descriptor.Decoder{
		Cache:   s.tagHelpers,
		Strings: s.strings,
		Verify:  s.opts.VerifyChecksums,
	}
}

// Fingerprint returns a checksum identifying a project's compilation inputs:
// the tag helpers in scope and the directives the project recognizes.
//
// Equal fingerprints mean that previously generated output can be reused.
func (s *Session) Fingerprint(helpers *descriptor.Collection, directives ...*descriptor.Directive) checksum.Checksum {
	b := s.checksums.NewBuilder()
	b.AppendChecksum(s.tagHelpers.Checksum(helpers))
	b.AppendInt(len(directives))
	for _, d := range directives {
		b.AppendChecksum(d.Sum())
	}
	return b.FreeAndGetChecksum()
}

// Formatter returns a node formatter configured by this session's options.
func (s *Session) Formatter(out *strings.Builder) *intermediate.Formatter {
	f := intermediate.NewFormatter(out)
	f.Width = s.opts.FormatWidth
	return f
}

// NewQueue returns a work queue that uses the session's batch delay and
// logger.
func NewQueue[T any](
	ctx context.Context,
	s *Session,
	process workqueue.ProcessFunc[T],
	opts ...workqueue.Option[T],
) *workqueue.Queue[T] {
	opts = append([]workqueue.Option[T]{
		workqueue.WithLogger[T](s.log.With("queue", "batch")),
	}, opts...)
	return workqueue.New(ctx, s.opts.BatchDelay, process, opts...)
}

// levelHandler drops records below a minimum level.
type levelHandler struct {
	slog.Handler
	level slog.Level
}

func (h levelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level && h.Handler.Enabled(ctx, level)
}

func (h levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelHandler{h.Handler.WithAttrs(attrs), h.level}
}

func (h levelHandler) WithGroup(name string) slog.Handler {
	return levelHandler{h.Handler.WithGroup(name), h.level}
}
