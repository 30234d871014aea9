package img

import (
	"image"
	"testing"
)

func TestCopyRegionPartialOverlap(t *testing.T) {
	// copying a 5x10 all-ones source into a 10x5 zero destination at
	// (-1, 0) must set exactly columns 0..3 and leave the rest zero
	src := mustNew(t, 5, 10)
	src.Fill(1)
	dst := mustNew(t, 10, 5)

	out, err := src.CopyRegion(src.Bounds(), dst, -1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out != dst {
		t.Fatal("CopyRegion did not return the destination")
	}
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			want := uint32(0)
			if x < 4 {
				want = 1
			}
			if got := dst.ValueAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestCopyRegionFullyOutside(t *testing.T) {
	src := mustNew(t, 4, 4)
	src.Fill(7)
	dst := mustNew(t, 4, 4)
	fillGradient(dst)
	want := dst.Clone()

	for _, off := range [][2]int{{4, 0}, {0, 4}, {-4, 0}, {0, -4}, {100, 100}, {-100, -100}} {
		if _, err := src.CopyRegion(src.Bounds(), dst, off[0], off[1]); err != nil {
			t.Fatalf("offset %v: %v", off, err)
		}
		for i := range dst.Pix {
			if dst.Pix[i] != want.Pix[i] {
				t.Fatalf("offset %v changed pixel %d", off, i)
			}
		}
	}
}

func TestCopyRegionNilDestination(t *testing.T) {
	src := mustNew(t, 6, 6)
	fillGradient(src)

	r := image.Rect(1, 2, 4, 5)
	dst, err := src.CopyRegion(r, nil, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if dst.Width != 3 || dst.Height != 3 {
		t.Fatalf("got %dx%d destination", dst.Width, dst.Height)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got, want := dst.ValueAt(x, y), src.ValueAt(x+1, y+2); got != want {
				t.Fatalf("pixel (%d,%d) = %#x, want %#x", x, y, got, want)
			}
		}
	}
}

func TestCopyRegionBlockAligned(t *testing.T) {
	// same width source and destination, full-width region: the contiguous
	// block path must produce the same result as a plain shift
	src := mustNew(t, 8, 6)
	fillGradient(src)
	dst := mustNew(t, 8, 6)

	if _, err := src.CopyRegion(image.Rect(0, 0, 8, 4), dst, 0, 2); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			var want uint32
			if y >= 2 {
				want = src.ValueAt(x, y-2)
			}
			if got := dst.ValueAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %#x, want %#x", x, y, got, want)
			}
		}
	}
}

func TestCopyRegionValidation(t *testing.T) {
	src := mustNew(t, 4, 4)
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 5, 4),
		image.Rect(-1, 0, 4, 4),
		image.Rect(2, 2, 2, 3),
	} {
		if _, err := src.CopyRegion(r, nil, 0, 0); err == nil {
			t.Errorf("source region %v accepted", r)
		}
	}
}

func TestFloatCopyRegion(t *testing.T) {
	src, err := NewFloat(5, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	for ch := 0; ch < 2; ch++ {
		if err := src.Fill(ch, float64(ch+1)); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("partial overlap", func(t *testing.T) {
		dst, err := NewFloat(10, 5, 2)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := src.CopyRegion(src.Bounds(), dst, -1, 0); err != nil {
			t.Fatal(err)
		}
		for ch := 0; ch < 2; ch++ {
			for y := 0; y < 5; y++ {
				for x := 0; x < 10; x++ {
					want := 0.0
					if x < 4 {
						want = float64(ch + 1)
					}
					if got := dst.Get(ch, x, y); got != want {
						t.Fatalf("channel %d (%d,%d) = %v, want %v", ch, x, y, got, want)
					}
				}
			}
		}
	})

	t.Run("channel count mismatch", func(t *testing.T) {
		dst, err := NewFloat(5, 10, 3)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := src.CopyRegion(src.Bounds(), dst, 0, 0); err == nil {
			t.Error("mismatched destination accepted")
		}
	})

	t.Run("nil destination", func(t *testing.T) {
		dst, err := src.CopyRegion(image.Rect(0, 0, 2, 3), nil, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if dst.Width != 2 || dst.Height != 3 || len(dst.Channels) != 2 {
			t.Fatalf("got %dx%d with %d channels", dst.Width, dst.Height, len(dst.Channels))
		}
		if dst.Get(1, 1, 2) != 2 {
			t.Errorf("channel 1 not copied")
		}
	})
}
