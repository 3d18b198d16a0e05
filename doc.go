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

// Package razorcompile is the core of a compiler for templated markup
// documents: it holds the intermediate node tree those documents are lowered
// into, and the caching machinery that makes recompiling them in an editor
// cheap.
//
// The work is split across several packages:
//
//  1. intermediate defines the node tree, how to walk it, how to edit it
//     safely through references, and how to print it for snapshot tests.
//  2. descriptor defines tag helper and directive descriptors, which are the
//     inputs that tell lowering what markup means.
//  3. checksum fingerprints descriptors so that unchanged inputs can be
//     recognized across edits and process restarts.
//  4. cache holds the size-bounded, weak, and interning caches that sit on
//     top of those checksums.
//  5. workqueue batches the stream of edits an editor produces.
//
// # Session
//
// A Session owns one instance of each shared service: the checksum pool, the
// descriptor cache, and the string intern table. Services are never global;
// two sessions never share cached state. A Session is configured with
// [Options], which may be loaded from a YAML or TOML file:
//
//	opts, err := razorcompile.LoadOptions("razor.yaml")
//	if err != nil {
//		return err
//	}
//	session := razorcompile.NewSession(opts, slog.Default())
//
// Descriptors read back from disk with [Session.Decoder] are deduplicated
// against the session's cache, and their strings are interned:
//
//	helpers, err := session.Decoder().Decode(f)
package razorcompile
