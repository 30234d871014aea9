// Package img provides dense in-memory pixel arrays with cheap movable
// cursors, boundary-safe lookups and a fork-join parallel traversal engine.
package img

import (
	"fmt"
	"image"
	"image/color"
)

// Channel indices of the packed store.
const (
	ChR = iota
	ChG
	ChB
	ChA
)

// DefaultSplitMin is the default minimum number of elements a parallel
// traversal leaf holds.
const DefaultSplitMin = 1024

// Img is a packed ARGB image. Every element of Pix holds all four channels,
// 8 bits each, alpha in the high byte. The pixel at (x, y) is Pix[y*Width+x].
// Values are non-premultiplied.
//
// The store is fixed-size for its lifetime; resizing means constructing a
// new store and copying.
type Img struct {
	Width  int
	Height int
	Pix    []uint32

	splitMin int
}

func New(w, h int) (*Img, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	return &Img{
		Width:    w,
		Height:   h,
		Pix:      make([]uint32, w*h),
		splitMin: DefaultSplitMin,
	}, nil
}

// NewFromPix wraps an existing packed array. The array is not copied.
func NewFromPix(w, h int, pix []uint32) (*Img, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	if len(pix) != w*h {
		return nil, fmt.Errorf("pixel array length %d does not match %dx%d image", len(pix), w, h)
	}
	return &Img{Width: w, Height: h, Pix: pix, splitMin: DefaultSplitMin}, nil
}

// FromImage copies src into a new packed store. The result always has its
// origin at (0, 0) regardless of the source bounds.
func FromImage(src image.Image) *Img {
	b := src.Bounds()
	m := &Img{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Pix:      make([]uint32, b.Dx()*b.Dy()),
		splitMin: DefaultSplitMin,
	}

	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < m.Height; y++ {
			row := nrgba.Pix[(y+b.Min.Y-nrgba.Rect.Min.Y)*nrgba.Stride:]
			row = row[(b.Min.X-nrgba.Rect.Min.X)*4:]
			for x := 0; x < m.Width; x++ {
				m.Pix[y*m.Width+x] = PackARGB(int(row[x*4+3]), int(row[x*4]), int(row[x*4+1]), int(row[x*4+2]))
			}
		}
		return m
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			m.Pix[y*m.Width+x] = PackARGB(int(c.A), int(c.R), int(c.G), int(c.B))
		}
	}
	return m
}

func (m *Img) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

func (m *Img) ColorModel() color.Model {
	return color.NRGBAModel
}

// Count reports the number of pixels in the image.
func (m *Img) Count() int {
	return m.Width * m.Height
}

// At implements image.Image. Out-of-bounds coordinates yield transparent
// black; use ValueAt for unchecked access on the hot path.
func (m *Img) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.NRGBA{}
	}
	v := m.Pix[y*m.Width+x]
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

// Set implements draw.Image. Out-of-bounds coordinates are ignored.
func (m *Img) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	m.Pix[y*m.Width+x] = PackARGB(int(nc.A), int(nc.R), int(nc.G), int(nc.B))
}

// ValueAt returns the packed value at (x, y). The coordinate must be in
// bounds; no checking is performed.
func (m *Img) ValueAt(x, y int) uint32 {
	return m.Pix[y*m.Width+x]
}

// SetValueAt stores a packed value at (x, y). The coordinate must be in
// bounds; no checking is performed.
func (m *Img) SetValueAt(x, y int, v uint32) {
	m.Pix[y*m.Width+x] = v
}

// Fill sets every pixel to the packed value v.
func (m *Img) Fill(v uint32) {
	for i := range m.Pix {
		m.Pix[i] = v
	}
}

// FillChannel sets one channel of every pixel to v, leaving the other
// channels untouched.
func (m *Img) FillChannel(ch int, v uint8) error {
	shift, err := channelShift(ch)
	if err != nil {
		return err
	}
	mask := ^(uint32(0xff) << shift)
	bits := uint32(v) << shift
	for i := range m.Pix {
		m.Pix[i] = m.Pix[i]&mask | bits
	}
	return nil
}

func channelShift(ch int) (uint, error) {
	switch ch {
	case ChA:
		return 24, nil
	case ChR:
		return 16, nil
	case ChG:
		return 8, nil
	case ChB:
		return 0, nil
	}
	return 0, fmt.Errorf("invalid channel index %d", ch)
}

// Get returns one channel of the pixel at (x, y) in native 0..255 range.
// The coordinate must be in bounds and ch must be one of ChA, ChR, ChG, ChB.
func (m *Img) Get(ch, x, y int) int {
	shift, err := channelShift(ch)
	if err != nil {
		panic(err)
	}
	return int(m.Pix[y*m.Width+x] >> shift & 0xff)
}

// SetChannel stores one channel of the pixel at (x, y), preserving the
// others. The coordinate must be in bounds.
func (m *Img) SetChannel(ch, x, y, v int) {
	shift, err := channelShift(ch)
	if err != nil {
		panic(err)
	}
	i := y*m.Width + x
	m.Pix[i] = m.Pix[i]&^(uint32(0xff)<<shift) | uint32(v&0xff)<<shift
}

// Clone returns a deep copy, for use as an immutable snapshot by
// neighborhood algorithms running concurrently with writes.
func (m *Img) Clone() *Img {
	pix := make([]uint32, len(m.Pix))
	copy(pix, m.Pix)
	return &Img{Width: m.Width, Height: m.Height, Pix: pix, splitMin: m.splitMin}
}

// SplitMin reports the minimum number of elements a parallel traversal
// leaf of this image holds.
func (m *Img) SplitMin() int {
	return m.splitMin
}

// SetSplitMin tunes the parallel leaf size. n must be positive.
func (m *Img) SetSplitMin(n int) error {
	if n < 1 {
		return fmt.Errorf("invalid minimum split size %d", n)
	}
	m.splitMin = n
	return nil
}

// Cursor returns a new cursor positioned at index 0.
func (m *Img) Cursor() *Pixel {
	return &Pixel{img: m}
}

// ToNRGBA copies the image into a stdlib NRGBA image.
func (m *Img) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(m.Bounds())
	for i, v := range m.Pix {
		dst.Pix[i*4] = uint8(v >> 16)
		dst.Pix[i*4+1] = uint8(v >> 8)
		dst.Pix[i*4+2] = uint8(v)
		dst.Pix[i*4+3] = uint8(v >> 24)
	}
	return dst
}

// PackARGB packs four 8-bit channels into a single value, alpha in the
// high byte. Inputs are masked to 8 bits.
func PackARGB(a, r, g, b int) uint32 {
	return uint32(a&0xff)<<24 | uint32(r&0xff)<<16 | uint32(g&0xff)<<8 | uint32(b&0xff)
}

// UnpackARGB splits a packed value into its four 8-bit channels.
func UnpackARGB(v uint32) (a, r, g, b int) {
	return int(v >> 24 & 0xff), int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
