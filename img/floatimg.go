package img

import (
	"fmt"
	"image"
	"image/color"
)

// FloatImg stores one float64 array per channel, all of length
// Width*Height in row-major order. It serves data whose precision or
// channel count does not fit the packed store, such as the real, imaginary
// and power planes of frequency-domain images.
type FloatImg struct {
	Width    int
	Height   int
	Channels [][]float64

	splitMin int
}

func NewFloat(w, h, channels int) (*FloatImg, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	chs := make([][]float64, channels)
	for i := range chs {
		chs[i] = make([]float64, w*h)
	}
	return &FloatImg{Width: w, Height: h, Channels: chs, splitMin: DefaultSplitMin}, nil
}

// NewFloatFromChannels wraps existing channel arrays. Every array must have
// length w*h; the arrays are not copied.
func NewFloatFromChannels(w, h int, channels ...[]float64) (*FloatImg, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	if len(channels) < 1 {
		return nil, fmt.Errorf("no channel arrays given")
	}
	for i, ch := range channels {
		if len(ch) != w*h {
			return nil, fmt.Errorf("channel %d length %d does not match %dx%d image", i, len(ch), w, h)
		}
	}
	return &FloatImg{Width: w, Height: h, Channels: channels, splitMin: DefaultSplitMin}, nil
}

func (m *FloatImg) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m *FloatImg) ColorModel() color.Model {
	return color.Gray16Model
}

// At implements image.Image over channel 0, clamped to [0, 1]. Use Get for
// numeric access.
func (m *FloatImg) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.Gray16{}
	}
	v := m.Channels[0][y*m.Width+x]
	if v <= 0 {
		return color.Gray16{}
	}
	if v >= 1 {
		return color.Gray16{Y: 0xffff}
	}
	return color.Gray16{Y: uint16(v*65535 + 0.5)}
}

// Count reports the number of elements per channel.
func (m *FloatImg) Count() int {
	return m.Width * m.Height
}

// Get returns channel ch at (x, y). Both must be in range; no checking is
// performed.
func (m *FloatImg) Get(ch, x, y int) float64 {
	return m.Channels[ch][y*m.Width+x]
}

// Set stores channel ch at (x, y). Both must be in range; no checking is
// performed.
func (m *FloatImg) Set(ch, x, y int, v float64) {
	m.Channels[ch][y*m.Width+x] = v
}

// GetBound returns channel ch at (x, y), resolving out-of-bounds
// coordinates under the given boundary mode. Modes other than the reserved
// geometric tags fall back to zero; use GetDefault for a caller-supplied
// fill value.
func (m *FloatImg) GetBound(ch, x, y int, mode int64) float64 {
	if x >= 0 && y >= 0 && x < m.Width && y < m.Height {
		return m.Channels[ch][y*m.Width+x]
	}
	switch mode {
	case BoundaryEdge:
		return m.Channels[ch][clampCoord(y, m.Height)*m.Width+clampCoord(x, m.Width)]
	case BoundaryTile:
		return m.Channels[ch][wrapCoord(y, m.Height)*m.Width+wrapCoord(x, m.Width)]
	case BoundaryMirror:
		return m.Channels[ch][mirrorCoord(y, m.Height)*m.Width+mirrorCoord(x, m.Width)]
	default:
		return 0
	}
}

// GetDefault returns channel ch at (x, y), or def when the coordinate is
// out of bounds.
func (m *FloatImg) GetDefault(ch, x, y int, def float64) float64 {
	if x >= 0 && y >= 0 && x < m.Width && y < m.Height {
		return m.Channels[ch][y*m.Width+x]
	}
	return def
}

// Fill sets every element of channel ch to v.
func (m *FloatImg) Fill(ch int, v float64) error {
	if ch < 0 || ch >= len(m.Channels) {
		return fmt.Errorf("invalid channel index %d", ch)
	}
	arr := m.Channels[ch]
	for i := range arr {
		arr[i] = v
	}
	return nil
}

// Clone returns a deep copy, for use as an immutable snapshot by
// neighborhood algorithms running concurrently with writes.
func (m *FloatImg) Clone() *FloatImg {
	chs := make([][]float64, len(m.Channels))
	for i, ch := range m.Channels {
		chs[i] = make([]float64, len(ch))
		copy(chs[i], ch)
	}
	return &FloatImg{Width: m.Width, Height: m.Height, Channels: chs, splitMin: m.splitMin}
}

func (m *FloatImg) SplitMin() int {
	return m.splitMin
}

// SetSplitMin tunes the parallel leaf size. n must be positive.
func (m *FloatImg) SetSplitMin(n int) error {
	if n < 1 {
		return fmt.Errorf("invalid minimum split size %d", n)
	}
	m.splitMin = n
	return nil
}

// Cursor returns a new cursor positioned at index 0.
func (m *FloatImg) Cursor() *FloatPixel {
	return &FloatPixel{img: m}
}

// FloatPixel is the reusable cursor over one element of a FloatImg. The
// same aliasing rules as Pixel apply: one goroutine per cursor, disjoint
// write ranges across goroutines, and the store outlives the cursor.
type FloatPixel struct {
	img *FloatImg
	idx int
}

func (p *FloatPixel) Img() *FloatImg {
	return p.img
}

func (p *FloatPixel) Index() int {
	return p.idx
}

func (p *FloatPixel) X() int {
	return p.idx % p.img.Width
}

func (p *FloatPixel) Y() int {
	return p.idx / p.img.Width
}

// SetIndex repositions the cursor to a linear index. The index must be in
// range; no checking is performed.
func (p *FloatPixel) SetIndex(i int) {
	p.idx = i
}

// SetPosition repositions the cursor to (x, y). The coordinate must be in
// bounds; no checking is performed.
func (p *FloatPixel) SetPosition(x, y int) {
	p.idx = y*p.img.Width + x
}

func (p *FloatPixel) Get(ch int) float64 {
	return p.img.Channels[ch][p.idx]
}

func (p *FloatPixel) Set(ch int, v float64) {
	p.img.Channels[ch][p.idx] = v
}

// Tuple reads the whole channel tuple into dst, which is grown as needed,
// and returns it. Passing a leaf-local buffer keeps the read allocation
// free.
func (p *FloatPixel) Tuple(dst []float64) []float64 {
	n := len(p.img.Channels)
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i, ch := range p.img.Channels {
		dst[i] = ch[p.idx]
	}
	return dst
}

// SetTuple writes the leading len(src) channels of the current element.
// Passing fewer values than channels leaves the trailing auxiliary
// channels untouched.
func (p *FloatPixel) SetTuple(src []float64) {
	for i, v := range src {
		p.img.Channels[i][p.idx] = v
	}
}
