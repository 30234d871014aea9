package img

import (
	"image"

	"pixgrid/parallel"
)

// Full-image and region convenience wrappers around the generic engine.

func (m *Img) ForEach(fn func(*Pixel) error) error {
	return ForEach[*Pixel](m, m.Bounds(), fn)
}

func (m *Img) ForEachRegion(r image.Rectangle, fn func(*Pixel) error) error {
	return ForEach[*Pixel](m, r, fn)
}

func (m *Img) ForEachParallel(pool *parallel.Pool, fn func(*Pixel) error) error {
	return ForEachParallel[*Pixel](pool, m, m.Bounds(), RowMajor, fn)
}

func (m *Img) ForEachRegionParallel(pool *parallel.Pool, r image.Rectangle, s Strategy, fn func(*Pixel) error) error {
	return ForEachParallel[*Pixel](pool, m, r, s, fn)
}

func (m *FloatImg) ForEach(fn func(*FloatPixel) error) error {
	return ForEach[*FloatPixel](m, m.Bounds(), fn)
}

func (m *FloatImg) ForEachRegion(r image.Rectangle, fn func(*FloatPixel) error) error {
	return ForEach[*FloatPixel](m, r, fn)
}

func (m *FloatImg) ForEachParallel(pool *parallel.Pool, fn func(*FloatPixel) error) error {
	return ForEachParallel[*FloatPixel](pool, m, m.Bounds(), RowMajor, fn)
}

func (m *FloatImg) ForEachRegionParallel(pool *parallel.Pool, r image.Rectangle, s Strategy, fn func(*FloatPixel) error) error {
	return ForEachParallel[*FloatPixel](pool, m, r, s, fn)
}
