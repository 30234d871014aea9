package img

import (
	"fmt"
	"image"

	"pixgrid/parallel"
)

// Converter presents pixels as an algorithm-chosen element type E, so
// element-generic code need not know the native channel layout. Allocate
// produces a fresh task-local buffer; the traversal engine calls it once
// per leaf, never sharing a buffer across concurrent leaves. Read populates
// the buffer from the cursor's current pixel; Write commits it back, or is
// a no-op for read-only converters.
type Converter[P Cursor, E any] interface {
	Allocate() E
	Read(p P, e E)
	Write(e E, p P)
}

// ForEachConverted visits r in row-major order, surrounding fn with
// Read and Write on a single buffer allocated once for the whole walk.
func ForEachConverted[P Cursor, E any](m Store[P], r image.Rectangle, c Converter[P, E], fn func(E) error) error {
	if err := checkRegion(r, m.Bounds()); err != nil {
		return err
	}
	return forEachLeafConverted(m, r, c, fn)
}

func forEachLeafConverted[P Cursor, E any](m Store[P], r image.Rectangle, c Converter[P, E], fn func(E) error) error {
	px := m.Cursor()
	e := c.Allocate()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px.SetPosition(x, y)
			c.Read(px, e)
			if err := fn(e); err != nil {
				return err
			}
			c.Write(e, px)
		}
	}
	return nil
}

// ForEachConvertedParallel is the parallel form of ForEachConverted. Each
// leaf allocates exactly one buffer and reuses it for every position the
// leaf visits.
func ForEachConvertedParallel[P Cursor, E any](pool *parallel.Pool, m Store[P], r image.Rectangle, s Strategy, c Converter[P, E], fn func(E) error) error {
	return ForEachConvertedParallelSplit(pool, m, r, s, m.SplitMin(), c, fn)
}

// Convert visits every pixel of m through converter c, sequentially over
// the full image.
func Convert[E any](m *Img, c Converter[*Pixel, E], fn func(E) error) error {
	return ForEachConverted[*Pixel, E](m, m.Bounds(), c, fn)
}

// ConvertParallel visits every pixel of m through converter c on pool
// workers, row-major splitting.
func ConvertParallel[E any](pool *parallel.Pool, m *Img, c Converter[*Pixel, E], fn func(E) error) error {
	return ForEachConvertedParallel[*Pixel, E](pool, m, m.Bounds(), RowMajor, c, fn)
}

// ForEachConvertedParallelSplit is ForEachConvertedParallel with a per-call
// minimum leaf size. minElems must be positive.
func ForEachConvertedParallelSplit[P Cursor, E any](pool *parallel.Pool, m Store[P], r image.Rectangle, s Strategy, minElems int, c Converter[P, E], fn func(E) error) error {
	if err := checkRegion(r, m.Bounds()); err != nil {
		return err
	}
	if minElems < 1 {
		return fmt.Errorf("invalid minimum split size %d", minElems)
	}

	g := pool.Group()
	g.Report(walkParallel(g, m.Bounds(), r, s, minElems, func(leaf image.Rectangle) error {
		return forEachLeafConverted(m, leaf, c, fn)
	}))
	return g.Join()
}
