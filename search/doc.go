// Copyright 2026 Lorekeep Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package search provides the retrieval engine over the note corpus.
//
// The Engine type exposes four search modes:
//   - Semantic: vector similarity over content embeddings
//   - Lexical: case-insensitive substring match on title/content/summary
//   - ByTags: tag-set intersection
//   - Hybrid: rank fusion of semantic and lexical result lists
//
// Hybrid search converts each sub-list's ranks into linearly descending
// scores and combines them with a configurable semantic weight. The
// engine also provides FindSimilar (nearest neighbors of an existing
// note) and Recent (recency ordering).
package search
