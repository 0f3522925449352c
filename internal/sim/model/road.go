package model

import (
	"math/rand"

	"dogstory.ai/internal/sim/geom"
)

// Half-widths of the collidable shapes, in map units. Roads are 0.8 wide,
// dogs 0.6, offices 0.5; loot is a point.
const (
	RoadHalfWidth   = 0.8 / 2
	DogHalfWidth    = 0.6 / 2
	OfficeHalfWidth = 0.5 / 2
	LootHalfWidth   = 0.0
)

// Point is an integer lattice coordinate. Road endpoints and the
// point-to-road index live on the lattice; dog and loot positions do not.
type Point struct {
	X int
	Y int
}

// Road is an axis-aligned segment of the road network. Start is always the
// endpoint with the smaller coordinate along the road's axis. A road's
// occupied area is its segment inflated by RoadHalfWidth on every side.
type Road struct {
	Start Point
	End   Point
}

// NewHorizontalRoad builds a road from (start.X, start.Y) to (endX, start.Y),
// normalizing so Start.X <= End.X.
func NewHorizontalRoad(start Point, endX int) *Road {
	x0, x1 := start.X, endX
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	return &Road{Start: Point{X: x0, Y: start.Y}, End: Point{X: x1, Y: start.Y}}
}

// NewVerticalRoad builds a road from (start.X, start.Y) to (start.X, endY),
// normalizing so Start.Y <= End.Y.
func NewVerticalRoad(start Point, endY int) *Road {
	y0, y1 := start.Y, endY
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return &Road{Start: Point{X: start.X, Y: y0}, End: Point{X: start.X, Y: y1}}
}

func (r *Road) IsHorizontal() bool { return r.Start.Y == r.End.Y }
func (r *Road) IsVertical() bool   { return r.Start.X == r.End.X }

// Contains reports whether pos lies inside the road's inflated rectangle.
func (r *Road) Contains(pos geom.Point2D) bool {
	minV, maxV := r.bounds()
	return pos.X >= minV.X && pos.X <= maxV.X && pos.Y >= minV.Y && pos.Y <= maxV.Y
}

// bounds returns the bottom-left and top-right corners of the occupied area.
func (r *Road) bounds() (geom.Point2D, geom.Point2D) {
	return geom.Point2D{X: float64(r.Start.X) - RoadHalfWidth, Y: float64(r.Start.Y) - RoadHalfWidth},
		geom.Point2D{X: float64(r.End.X) + RoadHalfWidth, Y: float64(r.End.Y) + RoadHalfWidth}
}

// Overlaps reports whether the occupied areas of two roads intersect.
func (r *Road) Overlaps(other *Road) bool {
	min1, max1 := r.bounds()
	min2, max2 := other.bounds()
	return geom.RectsIntersect(min1, max1, min2, max2)
}

// BoundaryPositionWithOffset projects pos onto the road's boundary in the
// given travel direction. A positive offset pushes past the boundary, a
// negative one stays inside it; movement resolution uses offset 0 to park an
// overshooting dog exactly on the edge.
func (r *Road) BoundaryPositionWithOffset(pos geom.Point2D, dir Direction, offset float64) geom.Point2D {
	out := pos
	switch dir {
	case North:
		out.Y = float64(r.Start.Y) - RoadHalfWidth - offset
	case South:
		out.Y = float64(r.End.Y) + RoadHalfWidth + offset
	case West:
		out.X = float64(r.Start.X) - RoadHalfWidth - offset
	case East:
		out.X = float64(r.End.X) + RoadHalfWidth + offset
	}
	return out
}

// RandomPosition draws a uniform continuous coordinate along the road's free
// axis; the covered axis stays on the lattice line.
func (r *Road) RandomPosition() geom.Point2D {
	if r.IsHorizontal() {
		return geom.Point2D{
			X: randomFloat(float64(r.Start.X), float64(r.End.X)),
			Y: float64(r.Start.Y),
		}
	}
	return geom.Point2D{
		X: float64(r.Start.X),
		Y: randomFloat(float64(r.Start.Y), float64(r.End.Y)),
	}
}

// coords lists every lattice coordinate along the road's axis, inclusive.
func (r *Road) coords() []int {
	if r.IsHorizontal() {
		out := make([]int, 0, r.End.X-r.Start.X+1)
		for x := r.Start.X; x <= r.End.X; x++ {
			out = append(out, x)
		}
		return out
	}
	out := make([]int, 0, r.End.Y-r.Start.Y+1)
	for y := r.Start.Y; y <= r.End.Y; y++ {
		out = append(out, y)
	}
	return out
}

func randomFloat(a, b float64) float64 {
	if b < a {
		a, b = b, a
	}
	return a + rand.Float64()*(b-a)
}
