package img

// Boundary modes resolve lookups outside the image. The geometric modes are
// reserved negative tags; any non-negative mode value is treated as a
// literal packed fill color, so callers can pass an arbitrary ARGB value
// directly. BoundaryZero is therefore both the zero-fill mode and the
// transparent black fill.
const (
	BoundaryZero   int64 = 0
	BoundaryEdge   int64 = -1
	BoundaryTile   int64 = -2
	BoundaryMirror int64 = -3
)

// ValueAtBound returns the packed value at (x, y), resolving out-of-bounds
// coordinates under the given boundary mode. In-bounds lookups are
// identical to ValueAt for every mode.
func (m *Img) ValueAtBound(x, y int, mode int64) uint32 {
	if x >= 0 && y >= 0 && x < m.Width && y < m.Height {
		return m.Pix[y*m.Width+x]
	}
	switch mode {
	case BoundaryEdge:
		return m.Pix[clampCoord(y, m.Height)*m.Width+clampCoord(x, m.Width)]
	case BoundaryTile:
		return m.Pix[wrapCoord(y, m.Height)*m.Width+wrapCoord(x, m.Width)]
	case BoundaryMirror:
		return m.Pix[mirrorCoord(y, m.Height)*m.Width+mirrorCoord(x, m.Width)]
	default:
		return uint32(mode)
	}
}

// GetBound returns one channel at (x, y) under a boundary mode, in native
// 0..255 range.
func (m *Img) GetBound(ch, x, y int, mode int64) int {
	shift, err := channelShift(ch)
	if err != nil {
		panic(err)
	}
	return int(m.ValueAtBound(x, y, mode) >> shift & 0xff)
}

func clampCoord(c, dim int) int {
	if c < 0 {
		return 0
	}
	if c >= dim {
		return dim - 1
	}
	return c
}

func wrapCoord(c, dim int) int {
	c %= dim
	if c < 0 {
		c += dim
	}
	return c
}

// mirrorCoord reflects c into [0, dim). The coordinate pattern repeats with
// period 2*dim, so the offset is reduced modulo that period first and at
// most one fold across the far edge remains.
func mirrorCoord(c, dim int) int {
	c %= 2 * dim
	if c < 0 {
		c += 2 * dim
	}
	if c >= dim {
		c = 2*dim - 1 - c
	}
	return c
}
