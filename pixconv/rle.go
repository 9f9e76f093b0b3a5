package pixconv

import "fmt"

// RLEExpandBMP4 decompresses an RLE-4 stream (BMP compression=2) into a grid
// of palette indices, grid[0] being the first-written row and successive
// rows advancing "up" per the delta-escape semantics in the BMP RLE
// grammar. width/height are the absolute image dimensions.
func RLEExpandBMP4(src []byte, width, height int) ([][]uint8, error) {
	return rleExpandBMP(src, width, height, true)
}

// RLEExpandBMP8 decompresses an RLE-8 stream (BMP compression=1) the same
// way as RLEExpandBMP4 but with one index per byte.
func RLEExpandBMP8(src []byte, width, height int) ([][]uint8, error) {
	return rleExpandBMP(src, width, height, false)
}

func rleExpandBMP(src []byte, width, height int, fourBit bool) ([][]uint8, error) {
	grid := make([][]uint8, height)
	for i := range grid {
		grid[i] = make([]uint8, width)
	}
	if width <= 0 || height <= 0 {
		return grid, nil
	}

	x, y := 0, 0
	pos := 0
	read := func() (byte, bool) {
		if pos >= len(src) {
			return 0, false
		}
		b := src[pos]
		pos++
		return b, true
	}

	put := func(v uint8) error {
		if y >= height {
			return fmt.Errorf("rle: write past last row")
		}
		if x >= width {
			return fmt.Errorf("rle: write past end of row without delta/eol escape")
		}
		grid[y][x] = v
		x++
		return nil
	}

	for {
		first, ok := read()
		if !ok {
			return grid, nil
		}
		second, ok := read()
		if !ok {
			return grid, nil
		}

		if first == 0 {
			switch {
			case second == 0:
				x = 0
				y++
			case second == 1:
				return grid, nil
			case second == 2:
				dx, ok1 := read()
				dy, ok2 := read()
				if !ok1 || !ok2 {
					return nil, fmt.Errorf("rle: truncated delta escape")
				}
				combined := x + int(dx)
				rowsToSkip := int(dy) + combined/width
				x = combined % width
				y += rowsToSkip
			default:
				n := int(second)
				if fourBit {
					nBytes := (n + 1) / 2
					for i := 0; i < n; i++ {
						byteIdx := i / 2
						if byteIdx >= nBytes {
							return nil, fmt.Errorf("rle: truncated absolute run")
						}
						b, ok := peekAt(src, pos+byteIdx)
						if !ok {
							return nil, fmt.Errorf("rle: truncated absolute run")
						}
						var v uint8
						if i%2 == 0 {
							v = b >> 4
						} else {
							v = b & 0xf
						}
						if err := put(v); err != nil {
							return nil, err
						}
					}
					pos += nBytes
					if nBytes%2 != 0 {
						pos++
					}
				} else {
					for i := 0; i < n; i++ {
						b, ok := peekAt(src, pos+i)
						if !ok {
							return nil, fmt.Errorf("rle: truncated absolute run")
						}
						if err := put(b); err != nil {
							return nil, err
						}
					}
					pos += n
					if n%2 != 0 {
						pos++
					}
				}
			}
			continue
		}

		c := int(first)
		if fourBit {
			hi := second >> 4
			lo := second & 0xf
			for i := 0; i < c; i++ {
				v := hi
				if i%2 == 1 {
					v = lo
				}
				if err := put(v); err != nil {
					return nil, err
				}
			}
		} else {
			for i := 0; i < c; i++ {
				if err := put(second); err != nil {
					return nil, err
				}
			}
		}
	}
}

func peekAt(src []byte, i int) (byte, bool) {
	if i < 0 || i >= len(src) {
		return 0, false
	}
	return src[i], true
}
