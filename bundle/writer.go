package bundle

import (
	"bytes"
	"fmt"
	"io"

	"github.com/DataDog/zstd"
)

// DefaultCompressionLevel mirrors the teacher archive format's default.
const DefaultCompressionLevel = zstd.BestSpeed

// Writer accumulates named entries and flushes them as one bundle file on
// Close. Unlike the single-stream archive format, entries are buffered so
// the directory (which must precede the data region) can be written once
// every entry's final compressed size is known.
type Writer struct {
	dst     io.WriteSeeker
	level   int
	entries []entry
	bodies  [][]byte
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCompressionLevel sets the ZSTD compression level used for every
// entry added after this option is applied.
func WithCompressionLevel(level int) WriterOption {
	return func(w *Writer) { w.level = level }
}

// NewWriter creates a Writer that will eventually write to dst.
func NewWriter(dst io.WriteSeeker, opts ...WriterOption) *Writer {
	w := &Writer{dst: dst, level: DefaultCompressionLevel}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Add compresses data under name. Names must be unique within a bundle;
// duplicates are rejected at Close.
func (w *Writer) Add(name string, data []byte) error {
	var buf bytes.Buffer
	zw := zstd.NewWriterLevel(&buf, w.level)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compress entry %q: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize entry %q: %w", name, err)
	}

	w.entries = append(w.entries, entry{
		Name:               name,
		CompressedLength:   uint64(buf.Len()),
		UncompressedLength: uint64(len(data)),
	})
	w.bodies = append(w.bodies, buf.Bytes())
	return nil
}

// Close lays out the header, directory and compressed bodies in order and
// writes them to dst.
func (w *Writer) Close() error {
	seen := make(map[string]bool, len(w.entries))
	for _, e := range w.entries {
		if seen[e.Name] {
			return fmt.Errorf("duplicate bundle entry name: %q", e.Name)
		}
		seen[e.Name] = true
	}

	dirBytes, err := marshalDirectory(w.entries)
	if err != nil {
		return err
	}

	hdr := Header{
		Magic:           Magic,
		Version:         formatVersion,
		EntryCount:      uint32(len(w.entries)),
		DirectoryLength: uint32(len(dirBytes)),
	}
	hdrBytes, err := hdr.MarshalBinary()
	if err != nil {
		return err
	}

	dataRegionStart := uint64(len(hdrBytes) + len(dirBytes))
	offset := dataRegionStart
	for i := range w.entries {
		w.entries[i].Offset = offset
		offset += w.entries[i].CompressedLength
	}
	dirBytes, err = marshalDirectory(w.entries)
	if err != nil {
		return err
	}

	if _, err := w.dst.Write(hdrBytes); err != nil {
		return fmt.Errorf("write bundle header: %w", err)
	}
	if _, err := w.dst.Write(dirBytes); err != nil {
		return fmt.Errorf("write bundle directory: %w", err)
	}
	for i, body := range w.bodies {
		if _, err := w.dst.Write(body); err != nil {
			return fmt.Errorf("write entry %q: %w", w.entries[i].Name, err)
		}
	}
	return nil
}
