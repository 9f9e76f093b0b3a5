package bundle

import (
	"bytes"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// Reader provides random access to a bundle's named entries.
type Reader struct {
	src     io.ReaderAt
	header  Header
	entries []entry
}

// Open reads and validates the header and directory of a bundle backed by
// src, without decompressing any entry.
func Open(src io.ReaderAt) (*Reader, error) {
	var hdrBuf [16]byte
	if _, err := src.ReadAt(hdrBuf[:], 0); err != nil {
		return nil, fmt.Errorf("read bundle header: %w", err)
	}
	var hdr Header
	if err := hdr.UnmarshalBinary(hdrBuf[:]); err != nil {
		return nil, fmt.Errorf("parse bundle header: %w", err)
	}

	dirBuf := make([]byte, hdr.DirectoryLength)
	if _, err := src.ReadAt(dirBuf, int64(hdr.Size())); err != nil {
		return nil, fmt.Errorf("read bundle directory: %w", err)
	}
	entries, err := unmarshalDirectory(dirBuf, hdr.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("parse bundle directory: %w", err)
	}

	return &Reader{src: src, header: hdr, entries: entries}, nil
}

// Names returns every entry name in directory order.
func (r *Reader) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Entry decompresses and returns the full contents of the named entry.
func (r *Reader) Entry(name string) ([]byte, error) {
	for _, e := range r.entries {
		if e.Name != name {
			continue
		}
		compressed := make([]byte, e.CompressedLength)
		if _, err := r.src.ReadAt(compressed, int64(e.Offset)); err != nil {
			return nil, fmt.Errorf("read entry %q: %w", name, err)
		}
		zr := zstd.NewReader(bytes.NewReader(compressed))
		defer zr.Close()

		out := make([]byte, e.UncompressedLength)
		if _, err := io.ReadFull(zr, out); err != nil {
			return nil, fmt.Errorf("decompress entry %q: %w", name, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("bundle entry not found: %q", name)
}
