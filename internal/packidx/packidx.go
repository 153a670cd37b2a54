// Package packidx defines the content checksum type and the pack index
// that maps snapshot tags to the objects stored in a pack.
package packidx

import (
	"encoding/hex"
	"fmt"
	"sort"
)

// ChecksumSize is the length in bytes of a content checksum.
const ChecksumSize = 20

// Checksum is a fixed-size content fingerprint. It is a pure function
// of file content: the same bytes always produce the same checksum,
// regardless of path or name.
type Checksum [ChecksumSize]byte

// String returns the hex encoding of the checksum.
func (c Checksum) String() string {
	return hex.EncodeToString(c[:])
}

// MarshalBinary implements encoding.BinaryMarshaler so the checksum
// serializes as a byte string rather than an array of integers.
func (c Checksum) MarshalBinary() ([]byte, error) {
	return c[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *Checksum) UnmarshalBinary(data []byte) error {
	if len(data) != ChecksumSize {
		return fmt.Errorf("packidx: checksum must be %d bytes, got %d", ChecksumSize, len(data))
	}
	copy(c[:], data)
	return nil
}

// Entry describes one object stored in a pack: where its bytes live in
// the decompressed stream and what content they hash to.
type Entry struct {
	Path     string   `cbor:"path"`
	Checksum Checksum `cbor:"checksum"`
	Offset   uint64   `cbor:"offset"`
	Size     uint64   `cbor:"size"`
}

// Index maps snapshot tags to the ordered object entries that make up
// each snapshot. Entry order matches the pack stream's content order.
type Index struct {
	Snapshots map[string][]Entry `cbor:"snapshots"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{Snapshots: make(map[string][]Entry)}
}

// AddSnapshot records the entries for a snapshot tag. It replaces any
// existing snapshot with the same tag.
func (idx *Index) AddSnapshot(tag string, entries []Entry) {
	if idx.Snapshots == nil {
		idx.Snapshots = make(map[string][]Entry)
	}
	idx.Snapshots[tag] = entries
}

// ForEachSnapshot calls fn for each snapshot in tag order. Iteration
// stops at the first error, which is returned.
func (idx *Index) ForEachSnapshot(fn func(tag string, entries []Entry) error) error {
	tags := make([]string, 0, len(idx.Snapshots))
	for tag := range idx.Snapshots {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		if err := fn(tag, idx.Snapshots[tag]); err != nil {
			return err
		}
	}
	return nil
}
