package pixconv

import "testing"

func TestRLEExpandBMP8(t *testing.T) {
	t.Run("EncodedRun", func(t *testing.T) {
		// count=4, value=7
		src := []byte{4, 7, 0, 1}
		grid, err := RLEExpandBMP8(src, 4, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []uint8{7, 7, 7, 7}
		for i, v := range want {
			if grid[0][i] != v {
				t.Errorf("col %d: got %d, want %d", i, grid[0][i], v)
			}
		}
	})

	t.Run("AbsoluteRunWithPadding", func(t *testing.T) {
		// absolute run of 3 bytes (odd -> one pad byte), then end of bitmap.
		src := []byte{0, 3, 1, 2, 3, 0, 0, 1}
		grid, err := RLEExpandBMP8(src, 3, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []uint8{1, 2, 3}
		for i, v := range want {
			if grid[0][i] != v {
				t.Errorf("col %d: got %d, want %d", i, grid[0][i], v)
			}
		}
	})

	t.Run("EndOfLine", func(t *testing.T) {
		src := []byte{2, 5, 0, 0, 2, 9, 0, 1}
		grid, err := RLEExpandBMP8(src, 2, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if grid[0][0] != 5 || grid[0][1] != 5 {
			t.Errorf("row 0 = %v, want [5 5]", grid[0])
		}
		if grid[1][0] != 9 || grid[1][1] != 9 {
			t.Errorf("row 1 = %v, want [9 9]", grid[1])
		}
	})

	t.Run("DeltaEscape", func(t *testing.T) {
		src := []byte{0, 2, 1, 1, 3, 6, 0, 1}
		grid, err := RLEExpandBMP8(src, 4, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if grid[1][1] != 6 || grid[1][2] != 6 || grid[1][3] != 6 {
			t.Errorf("row 1 = %v, want zeros then [6 6 6] from col 1", grid[1])
		}
		if grid[1][0] != 0 {
			t.Errorf("col 0 of row 1 should be untouched (0), got %d", grid[1][0])
		}
	})
}

func TestRLEExpandBMP4(t *testing.T) {
	t.Run("EncodedRunAlternatesNibbles", func(t *testing.T) {
		// count=4, byte=0xab -> values a,b,a,b
		src := []byte{4, 0xab, 0, 1}
		grid, err := RLEExpandBMP4(src, 4, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []uint8{0xa, 0xb, 0xa, 0xb}
		for i, v := range want {
			if grid[0][i] != v {
				t.Errorf("col %d: got %x, want %x", i, grid[0][i], v)
			}
		}
	})
}
