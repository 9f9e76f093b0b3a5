package bmp

import (
	"github.com/goopsie/teximp/internal/streamio"
	"github.com/goopsie/teximp/internal/texerr"
	"github.com/goopsie/teximp/pixconv"
)

// readVariant dispatches on the 32-bit header size field (already consumed
// by the caller) and reads exactly that variant's remaining fields,
// normalizing every variant to a common shape with sentinel defaults:
// compression=RGB for V2/OS2, masks=0 unless V3+52/+56/V4/V5 supplied
// them, color-space=CalibratedRGB for anything before V4.
func readVariant(sr *streamio.Reader, headerSize uint32) (normalized, []pixconv.RGBA8, error) {
	var n normalized
	n.compression = compressionRGB
	n.colorSpaceCalibrated = true

	readPalette := func(bpp uint16, paletteEntrySize int) ([]pixconv.RGBA8, error) {
		if bpp > 8 {
			return nil, nil
		}
		count := n.colorsUsed
		if count == 0 {
			count = 1 << bpp
		}
		pal := make([]pixconv.RGBA8, count)
		for i := range pal {
			entry, ok, err := sr.ReadBytes(paletteEntrySize)
			if err != nil {
				return nil, texerr.Wrap(texerr.CouldNotReadHeader, "read bmp palette", err)
			}
			if !ok {
				return nil, texerr.New(texerr.CouldNotReadHeader, "bmp palette truncated")
			}
			pal[i] = pixconv.RGBA8{B: entry[0], G: entry[1], R: entry[2], A: 255}
		}
		return pal, nil
	}

	switch headerSize {
	case 12: // BITMAPCOREHEADER (V2)
		w, ok1, e1 := sr.ReadI16LE()
		h, ok2, e2 := sr.ReadI16LE()
		if _, ok3, e3 := sr.ReadU16LE(); !ok3 || e3 != nil { // planes
			return n, nil, headerReadErr(e3, ok3)
		}
		bpp, ok4, e4 := sr.ReadU16LE()
		if !ok1 || !ok2 || !ok4 || e1 != nil || e2 != nil || e4 != nil {
			return n, nil, headerReadErr(firstErr(e1, e2, e4), false)
		}
		n.width, n.height, n.bitsPerPixel = int32(w), int32(h), bpp
		pal, err := readPalette(bpp, 3)
		return n, pal, err

	case 16: // short OS/2 2.x variant
		w, ok1, e1 := sr.ReadI32LE()
		h, ok2, e2 := sr.ReadI32LE()
		if _, ok3, e3 := sr.ReadU16LE(); !ok3 || e3 != nil {
			return n, nil, headerReadErr(e3, ok3)
		}
		bpp, ok4, e4 := sr.ReadU16LE()
		if !ok1 || !ok2 || !ok4 || e1 != nil || e2 != nil || e4 != nil {
			return n, nil, headerReadErr(firstErr(e1, e2, e4), false)
		}
		n.width, n.height, n.bitsPerPixel = w, h, bpp
		pal, err := readPalette(bpp, 3)
		return n, pal, err

	case 40, 52, 56, 64, 108, 124:
		w, ok1, e1 := sr.ReadI32LE()
		h, ok2, e2 := sr.ReadI32LE()
		if _, ok, e := sr.ReadU16LE(); !ok || e != nil { // planes
			return n, nil, headerReadErr(e, ok)
		}
		bpp, ok3, e3 := sr.ReadU16LE()
		compression, ok4, e4 := sr.ReadU32LE()
		sizeOfBitmap, ok5, e5 := sr.ReadU32LE()
		if _, ok, e := sr.ReadI32LE(); !ok || e != nil { // xPelsPerMeter
			return n, nil, headerReadErr(e, ok)
		}
		if _, ok, e := sr.ReadI32LE(); !ok || e != nil { // yPelsPerMeter
			return n, nil, headerReadErr(e, ok)
		}
		colorsUsed, ok6, e6 := sr.ReadU32LE()
		if _, ok, e := sr.ReadU32LE(); !ok || e != nil { // colorsImportant
			return n, nil, headerReadErr(e, ok)
		}
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
			return n, nil, headerReadErr(firstErr(e1, e2, e3, e4, e5, e6), false)
		}
		n.width, n.height, n.bitsPerPixel = w, h, bpp
		n.compression, n.sizeOfBitmap, n.colorsUsed = compression, sizeOfBitmap, colorsUsed

		if headerSize == 64 {
			// OS/2 2.x trailing fields: units, reserved, recording,
			// rendering, size1, size2, colorEncoding, identifier.
			if _, ok, err := sr.ReadBytes(24); !ok || err != nil {
				return n, nil, headerReadErr(err, ok)
			}
			pal, err := readPalette(bpp, 4)
			return n, pal, err
		}

		if headerSize >= 52 {
			rMask, ok1, e1 := sr.ReadU32LE()
			gMask, ok2, e2 := sr.ReadU32LE()
			bMask, ok3, e3 := sr.ReadU32LE()
			if !ok1 || !ok2 || !ok3 {
				return n, nil, headerReadErr(firstErr(e1, e2, e3), false)
			}
			n.rMask, n.gMask, n.bMask = rMask, gMask, bMask
		}
		if headerSize >= 56 {
			aMask, ok, e := sr.ReadU32LE()
			if !ok {
				return n, nil, headerReadErr(e, ok)
			}
			n.aMask = aMask
		}
		if headerSize >= 108 {
			// colorSpaceType(4) + 9x CIEXYZ Q2.30 endpoints(36) + 3x gamma Q16.16(12)
			if _, ok, err := sr.ReadBytes(4 + 36 + 12); !ok || err != nil {
				return n, nil, headerReadErr(err, ok)
			}
			n.colorSpaceCalibrated = false
		}
		if headerSize == 124 {
			// intent(4) + profileData(4) + profileSize(4) + reserved(4)
			if _, ok, err := sr.ReadBytes(16); !ok || err != nil {
				return n, nil, headerReadErr(err, ok)
			}
		}

		pal, err := readPalette(bpp, 4)
		return n, pal, err

	default:
		return n, nil, texerr.New(texerr.CouldNotReadHeader, "bmp unrecognized header size")
	}
}

func headerReadErr(err error, ok bool) error {
	if err != nil {
		return texerr.Wrap(texerr.CouldNotReadHeader, "read bmp header field", err)
	}
	if !ok {
		return texerr.New(texerr.CouldNotReadHeader, "bmp header truncated")
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
