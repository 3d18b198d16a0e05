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

// Extension is implemented by node types defined outside of this package.
//
// An extension embeds [Base] like every other node, returns [KindExtension]
// from Kind, and dispatches to [Visitor.VisitExtension] from Accept.
// Extensions must be pointer types.
type Extension interface {
	Node

	// ExtensionName identifies the extension in formatted output.
	ExtensionName() string
}
