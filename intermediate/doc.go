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

// Package intermediate defines the intermediate node tree: the typed,
// mutable tree that a templated-markup document is lowered into after
// parsing and before code generation.
//
// # Nodes
//
// Every node implements [Node]. Concrete node types are pointers to structs
// that embed [Base], which holds the parts every node has: an optional
// source span, an annotation map, diagnostics, and an ordered list of
// children. Nodes own their children exclusively; a node does not know its
// parent. Parents are reconstructed by [Walker] and [Reference].
//
// # Traversal
//
// Traversals never recurse on the Go stack, so that pathologically deep trees
// (which large generated markup files produce) cannot exhaust it. [Walker]
// performs a pre-order walk with an explicit stack and tracks ancestors; the
// find functions in this package use the same technique, and return
// [Reference]s in post-order when they are meant to be used for replacement.
//
// # Editing
//
// Structural edits go through a [Reference], which re-locates its node inside
// its parent at edit time and reports a stale reference instead of silently
// corrupting the tree.
//
// # Diagnostics
//
// Malformed input is recorded as diagnostics on the node where it was found,
// and collected with [AllDiagnostics]. Nothing in this package returns a
// diagnostic as an error.
package intermediate
