package img

import "image"

// Strategy selects the axis preference when a region is split for parallel
// traversal.
type Strategy int

const (
	// RowMajor prefers splitting by rows: a region spanning the full image
	// width is halved into row bands, otherwise the larger dimension is
	// halved, ties going to rows.
	RowMajor Strategy = iota
	// ColMajor is the mirror image of RowMajor, preferring column bands.
	ColMajor
)

// split divides r into two non-overlapping halves whose element counts sum
// exactly to that of r. It reports ok == false when r holds at most
// minElems elements, or when any achievable half would fall below minElems,
// so every produced leaf carries at least minElems elements.
func split(r, bounds image.Rectangle, minElems int, s Strategy) (a, b image.Rectangle, ok bool) {
	if r.Dx()*r.Dy() <= minElems {
		return r, b, false
	}

	byRows := preferRows(r, bounds, s)
	if byRows && r.Dy() < 2 {
		byRows = false
	} else if !byRows && r.Dx() < 2 {
		byRows = true
	}

	if byRows {
		half := r.Dy() / 2
		if half*r.Dx() < minElems || (r.Dy()-half)*r.Dx() < minElems {
			return r, b, false
		}
		a = image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+half)
		b = image.Rect(r.Min.X, r.Min.Y+half, r.Max.X, r.Max.Y)
	} else {
		half := r.Dx() / 2
		if half*r.Dy() < minElems || (r.Dx()-half)*r.Dy() < minElems {
			return r, b, false
		}
		a = image.Rect(r.Min.X, r.Min.Y, r.Min.X+half, r.Max.Y)
		b = image.Rect(r.Min.X+half, r.Min.Y, r.Max.X, r.Max.Y)
	}
	return a, b, true
}

func preferRows(r, bounds image.Rectangle, s Strategy) bool {
	switch s {
	case ColMajor:
		// Full-height regions split into column bands; otherwise halve the
		// larger dimension, ties going to columns.
		if r.Dy() == bounds.Dy() && r.Dx() > 1 {
			return false
		}
		return r.Dy() > r.Dx()
	default:
		if r.Dx() == bounds.Dx() && r.Dy() > 1 {
			return true
		}
		return r.Dy() >= r.Dx()
	}
}
