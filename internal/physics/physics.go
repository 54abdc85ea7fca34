// Package physics provides collision detection, distance and interpolation helpers.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(DistanceSquared(x1, y1, x2, y2))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// CircleIntersectsRect checks if a circle overlaps an axis-aligned rectangle.
// A circle that only touches an edge does not overlap, matching CirclesOverlap
// and Rect.Intersects.
func CircleIntersectsRect(cx, cy, radius float64, r Rect) bool {
	nx := Clamp(cx, r.X, r.Right())
	ny := Clamp(cy, r.Y, r.Bottom())
	return DistanceSquared(nx, ny, cx, cy) < radius*radius
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Remap maps v from [inLo, inHi] onto [outLo, outHi], clamping v to the input range first.
func Remap(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	t := (Clamp(v, inLo, inHi) - inLo) / (inHi - inLo)
	return Lerp(outLo, outHi, t)
}
