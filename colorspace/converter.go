package colorspace

import "pixgrid/img"

var defaultClip = ClipAdaptive(0.05)

// LabConverter presents packed pixels as Oklab values to the traversal
// engine's conversion layer. A value the action leaves untouched writes
// back bit-identical pixels.
type LabConverter struct {
	// Clip handles out-of-gamut results on write-back. Nil selects
	// adaptive clipping with alpha 0.05.
	Clip Clipper
}

var _ img.Converter[*img.Pixel, *Lab] = LabConverter{}

func (LabConverter) Allocate() *Lab {
	return &Lab{}
}

func (LabConverter) Read(p *img.Pixel, e *Lab) {
	*e = LabFromLinear(LinearFromSRGB(p.RNorm(), p.GNorm(), p.BNorm(), p.ANorm()))
}

func (c LabConverter) Write(e *Lab, p *img.Pixel) {
	clip := c.Clip
	if clip == nil {
		clip = defaultClip
	}
	r, g, b, a := e.Linear(clip).SRGB()
	p.SetARGB(round8(a), round8(r), round8(g), round8(b))
}

// LinearConverter presents packed pixels as linear-light sRGB values.
type LinearConverter struct{}

var _ img.Converter[*img.Pixel, *Linear] = LinearConverter{}

func (LinearConverter) Allocate() *Linear {
	return &Linear{}
}

func (LinearConverter) Read(p *img.Pixel, e *Linear) {
	*e = LinearFromSRGB(p.RNorm(), p.GNorm(), p.BNorm(), p.ANorm())
}

func (LinearConverter) Write(e *Linear, p *img.Pixel) {
	r, g, b, a := e.SRGB()
	p.SetARGB(round8(a), round8(r), round8(g), round8(b))
}

func round8(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v*255 + 0.5)
}
