package img

import (
	"fmt"
	"image"

	"pixgrid/parallel"
)

// Blend composites src over m (non-premultiplied alpha-over) with src's
// top-left corner at "at" in m's coordinates, clipped to m's bounds. The
// blend runs as a parallel traversal of the overlap; src is only read, so
// it must be a different store than m (take a Clone to blend an image onto
// itself).
func (m *Img) Blend(pool *parallel.Pool, src *Img, at image.Point) error {
	if src == m {
		return fmt.Errorf("cannot blend an image onto itself, blend a clone instead")
	}

	dr := src.Bounds().Add(at).Intersect(m.Bounds())
	if dr.Empty() {
		return nil
	}

	return ForEachParallel(pool, m, dr, RowMajor, func(p *Pixel) error {
		sv := src.ValueAt(p.X()-at.X, p.Y()-at.Y)
		sa, sr, sg, sb := UnpackARGB(sv)
		if sa == 0xff {
			p.SetValue(sv)
			return nil
		}
		if sa == 0 {
			return nil
		}

		da, dr, dg, db := UnpackARGB(p.Value())
		t := 255 - sa
		a := sa*255 + da*t
		if a == 0 {
			p.SetValue(0)
			return nil
		}
		p.SetARGB(
			(a+127)/255,
			(sr*sa*255+dr*da*t+a/2)/a,
			(sg*sa*255+dg*da*t+a/2)/a,
			(sb*sa*255+db*da*t+a/2)/a,
		)
		return nil
	})
}
