package pixfmt

import "testing"

func TestFormatLayout(t *testing.T) {
	cases := []struct {
		format Format
		want   Layout
	}{
		{R8G8B8A8_UNORM, Layout_8_8_8_8},
		{B8G8R8A8_SRGB, Layout_8_8_8_8},
		{R5G6B5_UNORM, Layout_5_6_5},
		{BC1_RGBA_UNORM_BLOCK, Layout_BC1},
		{Format(0xffff), LayoutUndefined},
	}
	for _, c := range cases {
		if got := FormatLayout(c.format); got != c.want {
			t.Errorf("FormatLayout(%v) = %v, want %v", c.format, got, c.want)
		}
	}
}

func TestCanHold(t *testing.T) {
	t.Run("SameLayout", func(t *testing.T) {
		if !CanHold(Layout_8_8_8, Layout_8_8_8) {
			t.Error("expected a layout to hold itself")
		}
	})

	t.Run("WidensUp", func(t *testing.T) {
		if !CanHold(Layout_8_8_8_8, Layout_5_6_5) {
			t.Error("expected 8_8_8_8 to hold 5_6_5")
		}
	})

	t.Run("RefusesNarrowing", func(t *testing.T) {
		if CanHold(Layout_5_6_5, Layout_8_8_8_8) {
			t.Error("did not expect 5_6_5 to hold 8_8_8_8")
		}
	})

	t.Run("BlockLayoutsOnlyHoldSelf", func(t *testing.T) {
		if CanHold(Layout_BC3, Layout_BC1) {
			t.Error("did not expect BC3 to hold BC1")
		}
		if !CanHold(Layout_BC1, Layout_BC1) {
			t.Error("expected BC1 to hold itself")
		}
	})
}

func TestWiderLayouts(t *testing.T) {
	t.Run("Uncompressed", func(t *testing.T) {
		wider := WiderLayouts(Layout_5_6_5)
		if len(wider) == 0 {
			t.Fatal("expected at least one wider layout for 5_6_5")
		}
		for _, l := range wider {
			if l == Layout_5_6_5 {
				t.Error("WiderLayouts must not include native")
			}
			if !CanHold(l, Layout_5_6_5) {
				t.Errorf("layout %v in result cannot actually hold 5_6_5", l)
			}
		}
		for i := 1; i < len(wider); i++ {
			if layoutTotalWidth(wider[i-1]) > layoutTotalWidth(wider[i]) {
				t.Error("WiderLayouts result is not sorted narrowest-first")
			}
		}
	})

	t.Run("BlockCompressedHasNoWider", func(t *testing.T) {
		if wider := WiderLayouts(Layout_BC1); wider != nil {
			t.Errorf("expected nil for block layout, got %v", wider)
		}
	})
}
