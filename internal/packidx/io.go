package packidx

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// WriteFile serializes the index as zstd-compressed CBOR at path.
func WriteFile(path string, idx *Index) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create index %s: %w", path, err)
	}

	if err := Write(f, idx); err != nil {
		f.Close()
		return fmt.Errorf("write index %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close index %s: %w", path, err)
	}
	return nil
}

// Write serializes the index to w as zstd-compressed CBOR.
func Write(w io.Writer, idx *Index) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}

	data, err := cbor.Marshal(idx)
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadFile loads an index written by WriteFile.
func ReadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}
	defer f.Close()

	idx, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", path, err)
	}
	return idx, nil
}

// Read deserializes an index from r.
func Read(r io.Reader) (*Index, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}

	var idx Index
	if err := cbor.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}
