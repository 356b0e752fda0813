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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/lorekeep/lorekeep/core"
)

// Note fields are serialized in declaration order with mus-go field
// serializers. Timestamps are stored as varint Unix microseconds.
var (
	tagsSer   = ord.NewSliceSer[string](ord.String)
	vectorSer = ord.NewSliceSer[float32](raw.Float32)
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := varint.Uint64.Unmarshal(data)
	return core.ID(id), err
}

// MarshalNote serializes a Note to bytes.
func MarshalNote(note *core.Note) []byte {
	buf := make([]byte, sizeNote(note))
	n := varint.Uint64.Marshal(uint64(note.Id), buf)
	n += ord.String.Marshal(note.Title, buf[n:])
	n += ord.String.Marshal(note.Content, buf[n:])
	n += ord.String.Marshal(note.Summary, buf[n:])
	n += tagsSer.Marshal(note.Tags, buf[n:])
	n += vectorSer.Marshal(note.Embedding, buf[n:])
	n += ord.String.Marshal(note.SourceType, buf[n:])
	n += ord.String.Marshal(note.SourceURL, buf[n:])
	varint.Int64.Marshal(note.CreatedAt.UnixMicro(), buf[n:])
	return buf
}

// UnmarshalNote deserializes a Note from bytes.
func UnmarshalNote(data []byte) (*core.Note, error) {
	note := &core.Note{}
	offset := 0

	id, n, err := varint.Uint64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	note.Id = core.ID(id)
	offset += n

	if note.Title, n, err = ord.String.Unmarshal(data[offset:]); err != nil {
		return nil, fmt.Errorf("%w: title: %w", ErrSerializationFailed, err)
	}
	offset += n

	if note.Content, n, err = ord.String.Unmarshal(data[offset:]); err != nil {
		return nil, fmt.Errorf("%w: content: %w", ErrSerializationFailed, err)
	}
	offset += n

	if note.Summary, n, err = ord.String.Unmarshal(data[offset:]); err != nil {
		return nil, fmt.Errorf("%w: summary: %w", ErrSerializationFailed, err)
	}
	offset += n

	if note.Tags, n, err = tagsSer.Unmarshal(data[offset:]); err != nil {
		return nil, fmt.Errorf("%w: tags: %w", ErrSerializationFailed, err)
	}
	offset += n

	if note.Embedding, n, err = vectorSer.Unmarshal(data[offset:]); err != nil {
		return nil, fmt.Errorf("%w: embedding: %w", ErrSerializationFailed, err)
	}
	offset += n

	if note.SourceType, n, err = ord.String.Unmarshal(data[offset:]); err != nil {
		return nil, fmt.Errorf("%w: source type: %w", ErrSerializationFailed, err)
	}
	offset += n

	if note.SourceURL, n, err = ord.String.Unmarshal(data[offset:]); err != nil {
		return nil, fmt.Errorf("%w: source url: %w", ErrSerializationFailed, err)
	}
	offset += n

	micros, _, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: created at: %w", ErrSerializationFailed, err)
	}
	note.CreatedAt = time.UnixMicro(micros).UTC()

	return note, nil
}

func sizeNote(note *core.Note) int {
	size := varint.Uint64.Size(uint64(note.Id))
	size += ord.String.Size(note.Title)
	size += ord.String.Size(note.Content)
	size += ord.String.Size(note.Summary)
	size += tagsSer.Size(note.Tags)
	size += vectorSer.Size(note.Embedding)
	size += ord.String.Size(note.SourceType)
	size += ord.String.Size(note.SourceURL)
	size += varint.Int64.Size(note.CreatedAt.UnixMicro())
	return size
}
