package img

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"
	"testing"

	"pixgrid/parallel"
)

func TestForEachRowMajorOrder(t *testing.T) {
	m := mustNew(t, 8, 8)
	r := image.Rect(2, 3, 6, 7)

	var visited []int
	err := m.ForEachRegion(r, func(p *Pixel) error {
		visited = append(visited, p.Index())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(visited) != r.Dx()*r.Dy() {
		t.Fatalf("visited %d positions, want %d", len(visited), r.Dx()*r.Dy())
	}
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if visited[i] != y*8+x {
				t.Fatalf("step %d visited index %d, want %d", i, visited[i], y*8+x)
			}
			i++
		}
	}
}

func TestForEachRegionValidation(t *testing.T) {
	m := mustNew(t, 4, 4)
	pool := parallel.Start(2)
	defer pool.Close()

	bad := []image.Rectangle{
		image.Rect(0, 0, 0, 4),  // zero width
		image.Rect(2, 2, 2, 2),  // empty
		image.Rect(-1, 0, 3, 3), // negative origin
		image.Rect(0, 0, 5, 4),  // past the right edge
		image.Rect(1, 1, 4, 9),  // past the bottom edge
		{Min: image.Point{3, 3}, Max: image.Point{1, 1}}, // inverted, not normalized
	}
	for _, r := range bad {
		calls := 0
		if err := m.ForEachRegion(r, func(*Pixel) error { calls++; return nil }); err == nil {
			t.Errorf("sequential region %v accepted", r)
		}
		if err := m.ForEachRegionParallel(pool, r, RowMajor, func(*Pixel) error { calls++; return nil }); err == nil {
			t.Errorf("parallel region %v accepted", r)
		}
		if calls != 0 {
			t.Errorf("region %v: action ran %d times before validation failed", r, calls)
		}
	}
}

func TestForEachSplitSizeValidation(t *testing.T) {
	m := mustNew(t, 4, 4)
	pool := parallel.Start(2)
	defer pool.Close()

	for _, n := range []int{0, -5} {
		err := ForEachParallelSplit[*Pixel](pool, m, m.Bounds(), RowMajor, n, func(*Pixel) error { return nil })
		if err == nil {
			t.Errorf("minimum split size %d accepted", n)
		}
	}
}

// value = value + index over a fresh store must leave value == index
// everywhere, for both execution modes.
func TestSequentialAndParallelAgree(t *testing.T) {
	run := func(t *testing.T, traverse func(*Img) error) {
		t.Helper()
		m := mustNew(t, 64, 48)
		if err := m.SetSplitMin(16); err != nil {
			t.Fatal(err)
		}
		if err := traverse(m); err != nil {
			t.Fatal(err)
		}
		for i, v := range m.Pix {
			if v != uint32(i) {
				t.Fatalf("pixel %d holds %d", i, v)
			}
		}
	}

	add := func(p *Pixel) error {
		p.SetValue(p.Value() + uint32(p.Index()))
		return nil
	}

	t.Run("sequential", func(t *testing.T) {
		run(t, func(m *Img) error { return m.ForEach(add) })
	})

	for _, workers := range []int{1, 2, 8} {
		for _, s := range []Strategy{RowMajor, ColMajor} {
			t.Run(fmt.Sprintf("parallel_%d_workers_strategy_%d", workers, s), func(t *testing.T) {
				pool := parallel.Start(workers)
				defer pool.Close()
				run(t, func(m *Img) error {
					return ForEachParallel[*Pixel](pool, m, m.Bounds(), s, add)
				})
			})
		}
	}
}

func TestFloatForEachParallel(t *testing.T) {
	m, err := NewFloat(32, 32, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.SetSplitMin(64); err != nil {
		t.Fatal(err)
	}
	pool := parallel.Start(4)
	defer pool.Close()

	err = m.ForEachParallel(pool, func(p *FloatPixel) error {
		p.Set(0, float64(p.Index()))
		p.Set(2, float64(p.X()+p.Y()))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if got := m.Get(0, x, y); got != float64(y*32+x) {
				t.Fatalf("channel 0 at (%d,%d) = %v", x, y, got)
			}
			if got := m.Get(2, x, y); got != float64(x+y) {
				t.Fatalf("channel 2 at (%d,%d) = %v", x, y, got)
			}
		}
	}
}

func TestForEachStopsOnError(t *testing.T) {
	m := mustNew(t, 8, 8)
	boom := errors.New("boom")

	calls := 0
	err := m.ForEach(func(p *Pixel) error {
		calls++
		if p.Index() == 10 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if calls != 11 {
		t.Errorf("action ran %d times, want 11", calls)
	}
}

func TestParallelErrorPropagates(t *testing.T) {
	m := mustNew(t, 64, 64)
	if err := m.SetSplitMin(32); err != nil {
		t.Fatal(err)
	}
	pool := parallel.Start(4)
	defer pool.Close()

	boom := errors.New("boom")
	var started, finished atomic.Int64
	err := m.ForEachParallel(pool, func(p *Pixel) error {
		started.Add(1)
		defer finished.Add(1)
		if p.Index() == 1000 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	// the join returned, so every started action has finished
	if started.Load() != finished.Load() {
		t.Errorf("started %d actions but finished %d", started.Load(), finished.Load())
	}
}
