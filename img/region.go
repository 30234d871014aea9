package img

import (
	"fmt"
	"image"
)

// checkRegion validates a traversal region against an image's bounds.
// Violations are configuration errors, reported before any iteration.
func checkRegion(r, bounds image.Rectangle) error {
	if r.Dx() < 1 || r.Dy() < 1 {
		return fmt.Errorf("empty region %v", r)
	}
	if !r.In(bounds) {
		return fmt.Errorf("region %v outside image bounds %v", r, bounds)
	}
	return nil
}
