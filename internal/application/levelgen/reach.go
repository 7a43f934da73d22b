package levelgen

import "github.com/younwookim/neonrun/internal/domain/geom"

// Reachable reports whether the top of target can be jumped to from one of
// the surfaces in from. The target top may be at most rise above the source
// top, and the two must overlap horizontally once the source is widened by
// margin on both sides. Dropping down is always allowed.
func Reachable(target geom.Rect, from []geom.Rect, rise, margin float64) bool {
	for _, s := range from {
		if s == target {
			continue
		}
		if s.Y-target.Y > rise {
			continue
		}
		if target.X < s.Right()+margin && s.X-margin < target.Right() {
			return true
		}
	}
	return false
}

// Clear reports whether r intersects none of the blocked rectangles.
func Clear(r geom.Rect, blocked []geom.Rect) bool {
	for _, b := range blocked {
		if r.Intersects(b) {
			return false
		}
	}
	return true
}

// SupportOf returns the index of the surface a hovering item sits above:
// the nearest surface top below the item's bottom within hover, with
// horizontal overlap. Returns -1 if there is none.
func SupportOf(item geom.Rect, surfaces []geom.Rect, hover float64) int {
	best, bestGap := -1, hover
	for i, s := range surfaces {
		if !item.OverlapsX(s) {
			continue
		}
		gap := s.Y - item.Bottom()
		if gap < 0 || gap > bestGap {
			continue
		}
		best, bestGap = i, gap
	}
	return best
}
