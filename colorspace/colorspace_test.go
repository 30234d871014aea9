package colorspace

import (
	"math"
	"testing"

	"pixgrid/img"
)

func TestLabKnownValues(t *testing.T) {
	t.Run("white", func(t *testing.T) {
		lab := LabFromLinear(Linear{R: 1, G: 1, B: 1, A: 1})
		if math.Abs(lab.L-1) > 1e-3 {
			t.Errorf("L = %v, want 1", lab.L)
		}
		if lab.Chroma() > 1e-3 {
			t.Errorf("chroma = %v, want 0", lab.Chroma())
		}
	})

	t.Run("black", func(t *testing.T) {
		lab := LabFromLinear(Linear{A: 1})
		if math.Abs(lab.L) > 1e-6 {
			t.Errorf("L = %v, want 0", lab.L)
		}
	})

	t.Run("grays have no chroma", func(t *testing.T) {
		for _, v := range []float64{0.1, 0.25, 0.5, 0.9} {
			lab := LabFromLinear(Linear{R: v, G: v, B: v, A: 1})
			if lab.Chroma() > 1e-6 {
				t.Errorf("gray %v has chroma %v", v, lab.Chroma())
			}
		}
	})
}

func TestLinearRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		s := float64(v) / 255
		got := fromLinear(toLinear(s))
		if math.Abs(got-s) > 1e-12 {
			t.Fatalf("sRGB %d round-trips to %v", v, got*255)
		}
	}
}

func TestLabLinearRoundTrip(t *testing.T) {
	for _, lin := range []Linear{
		{R: 1, G: 0, B: 0, A: 1},
		{R: 0.2, G: 0.7, B: 0.1, A: 0.5},
		{R: 0.01, G: 0.01, B: 0.9, A: 1},
	} {
		out := LabFromLinear(lin).Linear(nil)
		if math.Abs(out.R-lin.R) > 1e-6 || math.Abs(out.G-lin.G) > 1e-6 || math.Abs(out.B-lin.B) > 1e-6 {
			t.Errorf("round trip of %+v gave %+v", lin, out)
		}
	}
}

func TestGamutClipProducesInGamut(t *testing.T) {
	const tol = 1e-4
	clips := map[string]Clipper{
		"adaptive":        ClipAdaptive(0.05),
		"preserve chroma": ClipPreserveChroma,
	}
	outOfGamut := []Lab{
		{L: 0.5, A: 0.4, B: -0.4, Alpha: 1},
		{L: 0.9, A: -0.3, B: 0.3, Alpha: 1},
		{L: 0.2, A: 0.25, B: 0.25, Alpha: 1},
		{L: 1.1, A: 0.1, B: 0, Alpha: 1},
	}
	for name, clip := range clips {
		t.Run(name, func(t *testing.T) {
			for _, lc := range outOfGamut {
				out := clip(lc).Linear(nil)
				for _, c := range []float64{out.R, out.G, out.B} {
					if c < -tol || c > 1+tol {
						t.Errorf("clip of %+v left component %v outside gamut", lc, c)
					}
				}
			}
		})
	}
}

func TestLabConverterRoundTrip(t *testing.T) {
	m, err := img.New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	p := m.Cursor()
	conv := LabConverter{}
	lab := &Lab{}

	// an untouched element must write back bit-identical pixels
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				for _, a := range []int{0, 127, 255} {
					want := img.PackARGB(a, r, g, b)
					p.SetValue(want)
					conv.Read(p, lab)
					conv.Write(lab, p)
					if got := p.Value(); got != want {
						t.Fatalf("pixel %#x round-tripped to %#x", want, got)
					}
				}
			}
		}
	}
}

func TestLabConverterGrayscale(t *testing.T) {
	m, err := img.New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	p := m.Cursor()
	conv := LabConverter{}
	lab := &Lab{}

	p.SetValue(img.PackARGB(255, 200, 30, 90))
	conv.Read(p, lab)
	lab.A = 0
	lab.B = 0
	conv.Write(lab, p)

	if abs(p.R()-p.G()) > 1 || abs(p.G()-p.B()) > 1 {
		t.Errorf("chroma-free write-back is not gray: (%d, %d, %d)", p.R(), p.G(), p.B())
	}
	if p.A() != 255 {
		t.Errorf("alpha changed to %d", p.A())
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
