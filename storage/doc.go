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


// Package storage defines the persistence abstractions for the note corpus.
//
// The NoteRepository interface is the store the rest of the system talks
// to: plain CRUD plus the query primitives the retrieval engine needs
// (nearest-by-vector, text search, tag overlap, recency). Serialization
// of notes to bytes uses hand-composed mus-go serializers.
//
// The storage/badger subpackage provides the BadgerDB implementation.
package storage
