package img

import (
	"fmt"
	"image"
)

// CopyRegion copies the sr sub-rectangle of m into dst with its top-left
// corner at (dx, dy) in destination coordinates. The copy is clipped to the
// mutual intersection of source and destination, so negative or partially
// overlapping origins copy only the overlap and a fully out-of-range origin
// copies nothing. A nil dst allocates a destination the size of sr. sr must
// lie within m's bounds.
func (m *Img) CopyRegion(sr image.Rectangle, dst *Img, dx, dy int) (*Img, error) {
	if err := checkRegion(sr, m.Bounds()); err != nil {
		return nil, err
	}
	if dst == nil {
		nd, err := New(sr.Dx(), sr.Dy())
		if err != nil {
			return nil, err
		}
		dst = nd
		dx, dy = 0, 0
	}

	dr := image.Rect(dx, dy, dx+sr.Dx(), dy+sr.Dy()).Intersect(dst.Bounds())
	if dr.Empty() {
		return dst, nil
	}
	sx := sr.Min.X + dr.Min.X - dx
	sy := sr.Min.Y + dr.Min.Y - dy
	w, h := dr.Dx(), dr.Dy()

	if w == m.Width && w == dst.Width {
		// Full-width rows are one contiguous block in both stores.
		copy(dst.Pix[dr.Min.Y*w:], m.Pix[sy*w:(sy+h)*w])
		return dst, nil
	}
	for row := 0; row < h; row++ {
		si := (sy+row)*m.Width + sx
		di := (dr.Min.Y+row)*dst.Width + dr.Min.X
		copy(dst.Pix[di:di+w], m.Pix[si:si+w])
	}
	return dst, nil
}

// CopyRegion copies the sr sub-rectangle of every channel of m into dst at
// (dx, dy), with the same clipping rules as the packed form. The channel
// counts must match when dst is non-nil.
func (m *FloatImg) CopyRegion(sr image.Rectangle, dst *FloatImg, dx, dy int) (*FloatImg, error) {
	if err := checkRegion(sr, m.Bounds()); err != nil {
		return nil, err
	}
	if dst == nil {
		nd, err := NewFloat(sr.Dx(), sr.Dy(), len(m.Channels))
		if err != nil {
			return nil, err
		}
		dst = nd
		dx, dy = 0, 0
	} else if len(dst.Channels) != len(m.Channels) {
		return nil, fmt.Errorf("channel count mismatch: source has %d, destination has %d", len(m.Channels), len(dst.Channels))
	}

	dr := image.Rect(dx, dy, dx+sr.Dx(), dy+sr.Dy()).Intersect(dst.Bounds())
	if dr.Empty() {
		return dst, nil
	}
	sx := sr.Min.X + dr.Min.X - dx
	sy := sr.Min.Y + dr.Min.Y - dy
	w, h := dr.Dx(), dr.Dy()

	for c, src := range m.Channels {
		out := dst.Channels[c]
		if w == m.Width && w == dst.Width {
			copy(out[dr.Min.Y*w:], src[sy*w:(sy+h)*w])
			continue
		}
		for row := 0; row < h; row++ {
			si := (sy+row)*m.Width + sx
			di := (dr.Min.Y+row)*dst.Width + dr.Min.X
			copy(out[di:di+w], src[si:si+w])
		}
	}
	return dst, nil
}
