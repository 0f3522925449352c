// Package geom holds the 2D primitives shared by the road model and the
// collision detector. Positions are continuous; the road grid itself lives
// on integer lattice points (see internal/sim/model).
package geom

// Point2D is a continuous position on the map plane.
type Point2D struct {
	X float64
	Y float64
}

// Vec2D is a velocity or displacement in map units per second.
type Vec2D struct {
	X float64
	Y float64
}

func (p Point2D) Add(v Vec2D) Point2D {
	return Point2D{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the displacement from q to p.
func (p Point2D) Sub(q Point2D) Vec2D {
	return Vec2D{X: p.X - q.X, Y: p.Y - q.Y}
}

func (v Vec2D) Scale(k float64) Vec2D {
	return Vec2D{X: v.X * k, Y: v.Y * k}
}

func (v Vec2D) Dot(w Vec2D) float64 {
	return v.X*w.X + v.Y*w.Y
}

// LenSq is the squared length; collision code compares squared distances to
// avoid the sqrt.
func (v Vec2D) LenSq() float64 {
	return v.Dot(v)
}

func (v Vec2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// RectsIntersect reports whether two axis-aligned rectangles, given by their
// min (bottom-left) and max (top-right) corners, overlap. Touching edges
// count as an intersection.
func RectsIntersect(min1, max1, min2, max2 Point2D) bool {
	return min1.X <= max2.X && max1.X >= min2.X && min1.Y <= max2.Y && max1.Y >= min2.Y
}
