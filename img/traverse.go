package img

import (
	"fmt"
	"image"

	"pixgrid/parallel"
)

// Cursor is the engine-facing surface of a pixel cursor.
type Cursor interface {
	SetPosition(x, y int)
}

// Store is implemented by image types whose pixels are visited through a
// cursor of type P. Both Img and FloatImg implement it.
type Store[P Cursor] interface {
	Bounds() image.Rectangle
	SplitMin() int
	Cursor() P
}

// ForEach visits every position of r in row-major order, invoking fn with a
// single reused cursor repositioned each step. The walk stops at the first
// error fn returns.
func ForEach[P Cursor](m Store[P], r image.Rectangle, fn func(P) error) error {
	if err := checkRegion(r, m.Bounds()); err != nil {
		return err
	}
	return forEachLeaf(m, r, fn)
}

func forEachLeaf[P Cursor](m Store[P], r image.Rectangle, fn func(P) error) error {
	px := m.Cursor()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px.SetPosition(x, y)
			if err := fn(px); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForEachParallel recursively splits r down to leaves of at least
// m.SplitMin() elements and runs the leaves on pool workers. It blocks
// until every forked leaf has finished. Leaves run in no particular order
// relative to one another; fn must not rely on cross-leaf ordering. The
// first failure any leaf produced is returned once all started leaves have
// completed.
func ForEachParallel[P Cursor](pool *parallel.Pool, m Store[P], r image.Rectangle, s Strategy, fn func(P) error) error {
	return ForEachParallelSplit(pool, m, r, s, m.SplitMin(), fn)
}

// ForEachParallelSplit is ForEachParallel with a per-call minimum leaf
// size overriding the store's own. minElems must be positive.
func ForEachParallelSplit[P Cursor](pool *parallel.Pool, m Store[P], r image.Rectangle, s Strategy, minElems int, fn func(P) error) error {
	if err := checkRegion(r, m.Bounds()); err != nil {
		return err
	}
	if minElems < 1 {
		return fmt.Errorf("invalid minimum split size %d", minElems)
	}

	g := pool.Group()
	g.Report(walkParallel(g, m.Bounds(), r, s, minElems, func(leaf image.Rectangle) error {
		return forEachLeaf(m, leaf, fn)
	}))
	return g.Join()
}

// walkParallel forks one half of every split into the group and keeps the
// other half on the calling task, running the leaf itself once no further
// split is possible.
func walkParallel(g *parallel.Group, bounds, r image.Rectangle, s Strategy, minElems int, leaf func(image.Rectangle) error) error {
	for {
		a, b, ok := split(r, bounds, minElems, s)
		if !ok {
			return leaf(r)
		}
		g.Fork(func() error {
			return walkParallel(g, bounds, b, s, minElems, leaf)
		})
		r = a
	}
}
