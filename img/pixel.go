package img

// Pixel is a reusable cursor over one element of an Img. It holds no pixel
// data of its own; repositioning is free of allocation and many cursors may
// reference the same store concurrently, as long as each cursor stays on a
// single goroutine and writers keep to disjoint index ranges.
//
// The store must outlive every cursor derived from it.
type Pixel struct {
	img *Img
	idx int
}

// Img returns the store this cursor reads and writes.
func (p *Pixel) Img() *Img {
	return p.img
}

func (p *Pixel) Index() int {
	return p.idx
}

func (p *Pixel) X() int {
	return p.idx % p.img.Width
}

func (p *Pixel) Y() int {
	return p.idx / p.img.Width
}

// SetIndex repositions the cursor to a linear index. The index must be in
// range; no checking is performed.
func (p *Pixel) SetIndex(i int) {
	p.idx = i
}

// SetPosition repositions the cursor to (x, y). The coordinate must be in
// bounds; no checking is performed.
func (p *Pixel) SetPosition(x, y int) {
	p.idx = y*p.img.Width + x
}

// Value returns the whole packed channel tuple as one read.
func (p *Pixel) Value() uint32 {
	return p.img.Pix[p.idx]
}

// SetValue writes the whole packed channel tuple as one write, so a
// following read at the same index never observes a torn update.
func (p *Pixel) SetValue(v uint32) {
	p.img.Pix[p.idx] = v
}

func (p *Pixel) A() int { return int(p.img.Pix[p.idx] >> 24 & 0xff) }
func (p *Pixel) R() int { return int(p.img.Pix[p.idx] >> 16 & 0xff) }
func (p *Pixel) G() int { return int(p.img.Pix[p.idx] >> 8 & 0xff) }
func (p *Pixel) B() int { return int(p.img.Pix[p.idx] & 0xff) }

func (p *Pixel) SetA(v int) { p.set(24, v) }
func (p *Pixel) SetR(v int) { p.set(16, v) }
func (p *Pixel) SetG(v int) { p.set(8, v) }
func (p *Pixel) SetB(v int) { p.set(0, v) }

func (p *Pixel) set(shift uint, v int) {
	p.img.Pix[p.idx] = p.img.Pix[p.idx]&^(uint32(0xff)<<shift) | uint32(v&0xff)<<shift
}

// SetARGB writes all four channels as one packed store.
func (p *Pixel) SetARGB(a, r, g, b int) {
	p.img.Pix[p.idx] = PackARGB(a, r, g, b)
}

// SetRGB writes the color channels while preserving the current alpha.
func (p *Pixel) SetRGB(r, g, b int) {
	p.img.Pix[p.idx] = p.img.Pix[p.idx]&0xff000000 | PackARGB(0, r, g, b)
}

// Normalized channel access, mapping 0..255 to 0..1.

func (p *Pixel) ANorm() float64 { return float64(p.A()) / 255 }
func (p *Pixel) RNorm() float64 { return float64(p.R()) / 255 }
func (p *Pixel) GNorm() float64 { return float64(p.G()) / 255 }
func (p *Pixel) BNorm() float64 { return float64(p.B()) / 255 }

func (p *Pixel) SetANorm(v float64) { p.SetA(denorm(v)) }
func (p *Pixel) SetRNorm(v float64) { p.SetR(denorm(v)) }
func (p *Pixel) SetGNorm(v float64) { p.SetG(denorm(v)) }
func (p *Pixel) SetBNorm(v float64) { p.SetB(denorm(v)) }

// SetRGBNorm writes normalized color channels, preserving alpha.
func (p *Pixel) SetRGBNorm(r, g, b float64) {
	p.SetRGB(denorm(r), denorm(g), denorm(b))
}

func denorm(v float64) int {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(v*255 + 0.5)
}

// Luminance returns the weighted grey value of the pixel in 0..255.
// The coefficients are the JFIF ones, the same used by image/color's
// RGBToYCbCr; 19595 + 38470 + 7471 == 65536.
func (p *Pixel) Luminance() int {
	return (19595*p.R() + 38470*p.G() + 7471*p.B() + 1<<15) >> 16
}

// LuminanceNorm returns the weighted grey value mapped to 0..1.
func (p *Pixel) LuminanceNorm() float64 {
	return float64(p.Luminance()) / 255
}

// Grey returns a grey value using caller-supplied channel weights. The
// weights should sum to 1 for a result in channel range.
func (p *Pixel) Grey(wr, wg, wb float64) float64 {
	return wr*float64(p.R()) + wg*float64(p.G()) + wb*float64(p.B())
}
