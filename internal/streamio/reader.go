// Package streamio provides forward/seek reads over an opaque input stream
// with short-read detection, the way every on-disk texture container in
// this module needs: BMP's bitmapOffset, DDS's post-DX10 data offset, TGA's
// end-26 footer and KTX's key/value block all require absolute seeking.
package streamio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Reader wraps an io.ReadSeeker with little-endian fixed-width reads and
// short-read detection. It borrows the underlying stream; it never closes it.
type Reader struct {
	r io.ReadSeeker
}

// New wraps r.
func New(r io.ReadSeeker) *Reader {
	return &Reader{r: r}
}

// Unwrap returns the underlying stream.
func (r *Reader) Unwrap() io.ReadSeeker {
	return r.r
}

// Tell returns the current absolute offset.
func (r *Reader) Tell() (int64, error) {
	return r.r.Seek(0, io.SeekCurrent)
}

// Size returns the total stream length, restoring the current offset.
func (r *Reader) Size() (int64, error) {
	cur, err := r.Tell()
	if err != nil {
		return 0, err
	}
	end, err := r.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.r.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

// SeekAbs seeks to an absolute offset from the start of the stream.
func (r *Reader) SeekAbs(offset int64) error {
	_, err := r.r.Seek(offset, io.SeekStart)
	return err
}

// SeekRel seeks relative to the current offset.
func (r *Reader) SeekRel(delta int64) error {
	_, err := r.r.Seek(delta, io.SeekCurrent)
	return err
}

// SeekEnd seeks relative to the end of the stream.
func (r *Reader) SeekEnd(delta int64) error {
	_, err := r.r.Seek(delta, io.SeekEnd)
	return err
}

// ReadFull reads exactly len(buf) bytes, reporting ok=false with a nil error
// if the stream ends early instead of silently truncating. Other read
// failures are returned wrapped.
func (r *Reader) ReadFull(buf []byte) (ok bool, err error) {
	n, err := io.ReadFull(r.r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("read %d bytes: %w", len(buf), err)
	}
	return n == len(buf), nil
}

// ReadBytes reads and returns n bytes, or ok=false on short read.
func (r *Reader) ReadBytes(n int) (data []byte, ok bool, err error) {
	buf := make([]byte, n)
	ok, err = r.ReadFull(buf)
	if err != nil || !ok {
		return nil, ok, err
	}
	return buf, true, nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (v uint8, ok bool, err error) {
	var buf [1]byte
	ok, err = r.ReadFull(buf[:])
	return buf[0], ok, err
}

// ReadU16LE reads an unaligned little-endian uint16.
func (r *Reader) ReadU16LE() (v uint16, ok bool, err error) {
	var buf [2]byte
	ok, err = r.ReadFull(buf[:])
	if err != nil || !ok {
		return 0, ok, err
	}
	return binary.LittleEndian.Uint16(buf[:]), true, nil
}

// ReadU32LE reads an unaligned little-endian uint32.
func (r *Reader) ReadU32LE() (v uint32, ok bool, err error) {
	var buf [4]byte
	ok, err = r.ReadFull(buf[:])
	if err != nil || !ok {
		return 0, ok, err
	}
	return binary.LittleEndian.Uint32(buf[:]), true, nil
}

// ReadU64LE reads an unaligned little-endian uint64.
func (r *Reader) ReadU64LE() (v uint64, ok bool, err error) {
	var buf [8]byte
	ok, err = r.ReadFull(buf[:])
	if err != nil || !ok {
		return 0, ok, err
	}
	return binary.LittleEndian.Uint64(buf[:]), true, nil
}

// ReadI16LE reads an unaligned little-endian int16.
func (r *Reader) ReadI16LE() (v int16, ok bool, err error) {
	u, ok, err := r.ReadU16LE()
	return int16(u), ok, err
}

// ReadI32LE reads an unaligned little-endian int32.
func (r *Reader) ReadI32LE() (v int32, ok bool, err error) {
	u, ok, err := r.ReadU32LE()
	return int32(u), ok, err
}

// ReadStruct decodes a fixed-size little-endian struct into dst, which must
// be a pointer. It reports a short read the same way the scalar readers do.
func (r *Reader) ReadStruct(dst any) (ok bool, err error) {
	if err := binary.Read(r.r, binary.LittleEndian, dst); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("read struct: %w", err)
	}
	return true, nil
}
