// Package palette provides fixed color palettes and nearest-color
// remapping over packed pixel stores. Matching runs in Oklab space, where
// Euclidean distance tracks perceived difference far better than in sRGB.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"pixgrid/colorspace"
	"pixgrid/img"
	"pixgrid/parallel"
)

// Palette is a set of colors held in Oklab space.
type Palette []colorspace.Lab

// Load resolves a built-in palette name (bw, gray4, gray16, vga16) or, when
// name does not match a built-in, reads a RIFF PAL file at that path.
func Load(name string) (Palette, error) {
	if pal, ok := builtins[strings.ToLower(name)]; ok {
		return pal, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q and no such file: %w", name, err)
	}
	defer f.Close()

	pal, err := ReadRIFF(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}
	return pal, nil
}

// FromColors converts a stdlib palette.
func FromColors(src color.Palette) Palette {
	pal := make(Palette, 0, len(src))
	for _, c := range src {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		pal = append(pal, colorspace.LabFromLinear(colorspace.LinearFromSRGB(
			float64(nc.R)/255, float64(nc.G)/255, float64(nc.B)/255, float64(nc.A)/255)))
	}
	return pal
}

// Colors converts back to a stdlib palette.
func (p Palette) Colors() color.Palette {
	pal := make(color.Palette, 0, len(p))
	for _, lc := range p {
		r, g, b, a := lc.Linear(colorspace.ClipPreserveChroma).SRGB()
		pal = append(pal, color.NRGBA{
			R: uint8(r*255 + 0.5),
			G: uint8(g*255 + 0.5),
			B: uint8(b*255 + 0.5),
			A: uint8(a*255 + 0.5),
		})
	}
	return pal
}

// Index returns the position of the palette entry nearest to lc.
func (p Palette) Index(lc colorspace.Lab) int {
	ret, bestSum := 0, math.MaxFloat64
	for i, v := range p {
		dL := lc.L - v.L
		da := lc.A - v.A
		db := lc.B - v.B
		dA := lc.Alpha - v.Alpha
		sum := dL*dL + da*da + db*db + dA*dA
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Nearest returns the palette entry nearest to lc, or the zero value for an
// empty palette.
func (p Palette) Nearest(lc colorspace.Lab) colorspace.Lab {
	if len(p) == 0 {
		return colorspace.Lab{}
	}
	return p[p.Index(lc)]
}

// Remap maps every pixel of m to its nearest palette entry, running as a
// parallel traversal over pool.
func (p Palette) Remap(pool *parallel.Pool, m *img.Img) error {
	if len(p) == 0 {
		return fmt.Errorf("cannot remap to an empty palette")
	}
	return img.ConvertParallel(pool, m, colorspace.LabConverter{}, func(e *colorspace.Lab) error {
		*e = p.Nearest(*e)
		return nil
	})
}

var builtins = map[string]Palette{
	"bw":     FromColors(color.Palette{color.Black, color.White}),
	"gray4":  grays(4),
	"gray16": grays(16),
	"vga16": FromColors(color.Palette{
		color.NRGBA{0x00, 0x00, 0x00, 0xff},
		color.NRGBA{0x00, 0x00, 0xaa, 0xff},
		color.NRGBA{0x00, 0xaa, 0x00, 0xff},
		color.NRGBA{0x00, 0xaa, 0xaa, 0xff},
		color.NRGBA{0xaa, 0x00, 0x00, 0xff},
		color.NRGBA{0xaa, 0x00, 0xaa, 0xff},
		color.NRGBA{0xaa, 0x55, 0x00, 0xff},
		color.NRGBA{0xaa, 0xaa, 0xaa, 0xff},
		color.NRGBA{0x55, 0x55, 0x55, 0xff},
		color.NRGBA{0x55, 0x55, 0xff, 0xff},
		color.NRGBA{0x55, 0xff, 0x55, 0xff},
		color.NRGBA{0x55, 0xff, 0xff, 0xff},
		color.NRGBA{0xff, 0x55, 0x55, 0xff},
		color.NRGBA{0xff, 0x55, 0xff, 0xff},
		color.NRGBA{0xff, 0xff, 0x55, 0xff},
		color.NRGBA{0xff, 0xff, 0xff, 0xff},
	}),
}

func grays(n int) Palette {
	pal := make(color.Palette, n)
	for i := 0; i < n; i++ {
		v := uint8(i * 255 / (n - 1))
		pal[i] = color.NRGBA{v, v, v, 0xff}
	}
	return FromColors(pal)
}
