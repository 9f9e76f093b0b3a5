// Package bundle provides a batch archive format for packing many decoded
// textures (or raw container files) into a single ZSTD-compressed stream
// with a random-access directory, the way the teacher's single-entry
// archive format is generalized to a multi-entry table of contents.
package bundle

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic bytes identifying a texture bundle.
var Magic = [4]byte{'T', 'X', 'B', 'D'}

const formatVersion = 1

// Header is the fixed-size prefix of a bundle file. The directory itself
// follows immediately after, sized by DirectoryLength.
type Header struct {
	Magic           [4]byte
	Version         uint32
	EntryCount      uint32
	DirectoryLength uint32
}

// Size returns the binary size of the fixed header.
func (h *Header) Size() int {
	return binary.Size(h)
}

// Validate checks the header for the invariants a reader depends on.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.Version != formatVersion {
		return fmt.Errorf("unsupported bundle version: %d", h.Version)
	}
	return nil
}

// MarshalBinary encodes the header to binary format.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, h); err != nil {
		return nil, fmt.Errorf("marshal bundle header: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the header from binary format.
func (h *Header) UnmarshalBinary(data []byte) error {
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("unmarshal bundle header: %w", err)
	}
	return h.Validate()
}

// entry is one directory record: a named, independently-compressed span of
// the bundle's data region. Entries are compressed independently (not as
// one continuous stream) so a single entry can be decompressed without
// touching its neighbors.
type entry struct {
	Name               string
	Offset             uint64
	CompressedLength   uint64
	UncompressedLength uint64
}

func marshalDirectory(entries []entry) ([]byte, error) {
	buf := new(bytes.Buffer)
	for _, e := range entries {
		name := []byte(e.Name)
		if err := binary.Write(buf, binary.LittleEndian, uint16(len(name))); err != nil {
			return nil, fmt.Errorf("marshal entry name length: %w", err)
		}
		if _, err := buf.Write(name); err != nil {
			return nil, fmt.Errorf("marshal entry name: %w", err)
		}
		if err := binary.Write(buf, binary.LittleEndian, e.Offset); err != nil {
			return nil, fmt.Errorf("marshal entry offset: %w", err)
		}
		if err := binary.Write(buf, binary.LittleEndian, e.CompressedLength); err != nil {
			return nil, fmt.Errorf("marshal entry compressed length: %w", err)
		}
		if err := binary.Write(buf, binary.LittleEndian, e.UncompressedLength); err != nil {
			return nil, fmt.Errorf("marshal entry uncompressed length: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func unmarshalDirectory(data []byte, count uint32) ([]entry, error) {
	buf := bytes.NewReader(data)
	entries := make([]entry, count)
	for i := range entries {
		var nameLen uint16
		if err := binary.Read(buf, binary.LittleEndian, &nameLen); err != nil {
			return nil, fmt.Errorf("read entry name length: %w", err)
		}
		name := make([]byte, nameLen)
		if _, err := buf.Read(name); err != nil {
			return nil, fmt.Errorf("read entry name: %w", err)
		}
		var e entry
		e.Name = string(name)
		if err := binary.Read(buf, binary.LittleEndian, &e.Offset); err != nil {
			return nil, fmt.Errorf("read entry offset: %w", err)
		}
		if err := binary.Read(buf, binary.LittleEndian, &e.CompressedLength); err != nil {
			return nil, fmt.Errorf("read entry compressed length: %w", err)
		}
		if err := binary.Read(buf, binary.LittleEndian, &e.UncompressedLength); err != nil {
			return nil, fmt.Errorf("read entry uncompressed length: %w", err)
		}
		entries[i] = e
	}
	return entries, nil
}
