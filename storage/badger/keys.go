package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/lorekeep/lorekeep/core"
)

// Key prefixes for different data types
const (
	notePrefix     = "notrec"
	noteDatePrefix = "notrecd"
	noteTagPrefix  = "notrect"
	noteIDSeq      = "notrecseq"
)

// makeNoteKey generates a key for a note by ID.
func makeNoteKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", notePrefix, id))
}

// makeNoteDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeNoteDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := noteDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNoteDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialNoteDateKey(timestamp time.Time) []byte {
	prefix := noteDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeNoteTagKey generates a composite key for the tag index.
// Format: prefix:tag:id
func makeNoteTagKey(tag string, id core.ID) []byte {
	prefix := noteTagPrefix + ":" + tag + ":"
	prefixBytes := []byte(prefix)
	totalSize := len(prefixBytes) + 8
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialNoteTagKey generates a partial key for tag queries.
// Format: prefix:tag:
func makePartialNoteTagKey(tag string) []byte {
	return []byte(noteTagPrefix + ":" + tag + ":")
}
