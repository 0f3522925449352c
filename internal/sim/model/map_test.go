package model

import (
	"errors"
	"testing"

	"dogstory.ai/internal/sim/geom"
)

func TestMap_SpeedAndBagOverrides(t *testing.T) {
	m := NewMap("id_1", "Map_1")

	if _, ok := m.Speed(); ok {
		t.Fatal("fresh map should have no speed override")
	}
	if _, ok := m.BagCapacity(); ok {
		t.Fatal("fresh map should have no bag capacity override")
	}

	m.SetSpeed(2.5)
	if speed, ok := m.Speed(); !ok || speed != 2.5 {
		t.Fatalf("Speed() = %v, %v; want 2.5, true", speed, ok)
	}

	m.SetBagCapacity(5)
	if capacity, ok := m.BagCapacity(); !ok || capacity != 5 {
		t.Fatalf("BagCapacity() = %v, %v; want 5, true", capacity, ok)
	}
}

func TestMap_AddOffice_Duplicate(t *testing.T) {
	m := NewMap("m1", "one")

	if err := m.AddOffice(Office{ID: "o1", Pos: Point{X: 1, Y: 0}}); err != nil {
		t.Fatalf("first AddOffice: %v", err)
	}
	err := m.AddOffice(Office{ID: "o1", Pos: Point{X: 2, Y: 0}})
	if !errors.Is(err, ErrDuplicateOffice) {
		t.Fatalf("duplicate AddOffice error = %v, want ErrDuplicateOffice", err)
	}
	if len(m.Offices()) != 1 {
		t.Fatalf("offices = %d, want 1", len(m.Offices()))
	}
}

func TestMap_AddRoad_NoMerge(t *testing.T) {
	m := NewMap("m1", "one")
	m.AddRoad(NewHorizontalRoad(Point{X: 0, Y: 0}, 5))
	m.AddRoad(NewVerticalRoad(Point{X: 2, Y: 2}, 7))

	if len(m.Roads()) != 2 {
		t.Fatalf("roads = %d, want 2", len(m.Roads()))
	}
	if !m.Roads()[0].IsHorizontal() || !m.Roads()[1].IsVertical() {
		t.Fatal("road orientations wrong")
	}
}

func TestMap_AddRoad_MergeAtStart(t *testing.T) {
	m := NewMap("m1", "one")
	m.AddRoad(NewHorizontalRoad(Point{X: 0, Y: 0}, 5))
	// Starts where the first one ends; they become a single segment.
	m.AddRoad(NewHorizontalRoad(Point{X: 5, Y: 0}, 9))

	roads := m.Roads()
	if len(roads) != 1 {
		t.Fatalf("roads = %d, want 1 after merge", len(roads))
	}
	if roads[0].Start != (Point{X: 0, Y: 0}) || roads[0].End != (Point{X: 9, Y: 0}) {
		t.Fatalf("merged road = %+v, want 0,0..9,0", roads[0])
	}
	// Every covered lattice point must resolve to the merged road.
	for x := 0; x <= 9; x++ {
		got := m.FindRoadByPositionAndDirection(geom.Point2D{X: float64(x)}, East, true)
		if got != roads[0] {
			t.Fatalf("index at x=%d points to %+v, want merged road", x, got)
		}
	}
}

func TestMap_AddRoad_MergeBothEnds(t *testing.T) {
	m := NewMap("m1", "one")
	m.AddRoad(NewVerticalRoad(Point{X: 0, Y: 0}, 3))
	m.AddRoad(NewVerticalRoad(Point{X: 0, Y: 6}, 9))
	// Bridges the two verticals.
	m.AddRoad(NewVerticalRoad(Point{X: 0, Y: 3}, 6))

	roads := m.Roads()
	if len(roads) != 1 {
		t.Fatalf("roads = %d, want 1 after bridge merge", len(roads))
	}
	if roads[0].Start != (Point{X: 0, Y: 0}) || roads[0].End != (Point{X: 0, Y: 9}) {
		t.Fatalf("merged road = %+v, want 0,0..0,9", roads[0])
	}
}

func TestMap_AddRoad_SameOrientationNeverOverlaps(t *testing.T) {
	m := NewMap("m1", "one")
	m.AddRoad(NewHorizontalRoad(Point{X: 0, Y: 0}, 4))
	m.AddRoad(NewHorizontalRoad(Point{X: 4, Y: 0}, 8))
	m.AddRoad(NewHorizontalRoad(Point{X: 8, Y: 0}, 12))
	m.AddRoad(NewHorizontalRoad(Point{X: 20, Y: 0}, 25))

	roads := m.Roads()
	for i := 0; i < len(roads); i++ {
		for j := i + 1; j < len(roads); j++ {
			if roads[i].IsHorizontal() == roads[j].IsHorizontal() && roads[i].Overlaps(roads[j]) {
				t.Fatalf("stored roads overlap: %+v and %+v", roads[i], roads[j])
			}
		}
	}
}

func TestMap_FindRoadByPositionAndDirection(t *testing.T) {
	m := NewMap("m1", "one")
	m.AddRoad(NewHorizontalRoad(Point{X: 0, Y: 0}, 5))
	m.AddRoad(NewVerticalRoad(Point{X: 2, Y: 0}, 7))

	// Heading west at (2,0): the horizontal road runs along that axis.
	along := m.FindRoadByPositionAndDirection(geom.Point2D{X: 2, Y: 0}, West, true)
	if along == nil || !along.IsHorizontal() {
		t.Fatalf("along lookup = %+v, want horizontal road", along)
	}

	// Heading north at (2,4): the vertical road.
	vert := m.FindRoadByPositionAndDirection(geom.Point2D{X: 2, Y: 4}, North, true)
	if vert == nil || !vert.IsVertical() {
		t.Fatalf("vertical lookup = %+v, want vertical road", vert)
	}

	// Same position heading east: across lookup flips to the vertical road.
	across := m.FindRoadByPositionAndDirection(geom.Point2D{X: 2, Y: 4}, East, false)
	if across != vert {
		t.Fatalf("across lookup = %+v, want the vertical road", across)
	}

	// The position rounds to the nearest lattice point.
	rounded := m.FindRoadByPositionAndDirection(geom.Point2D{X: 2.4, Y: 0.3}, East, true)
	if rounded != along {
		t.Fatalf("rounded lookup = %+v, want the horizontal road", rounded)
	}

	if got := m.FindRoadByPositionAndDirection(geom.Point2D{X: 50, Y: 50}, East, true); got != nil {
		t.Fatalf("lookup off the network = %+v, want nil", got)
	}
}

func TestRoad_Contains(t *testing.T) {
	road := NewHorizontalRoad(Point{X: 0, Y: 0}, 5)

	corners := []geom.Point2D{
		{X: 5.4, Y: 0.4},
		{X: -0.4, Y: -0.4},
		{X: 5.4, Y: -0.4},
		{X: -0.4, Y: 0.4},
	}
	for _, pos := range corners {
		if !road.Contains(pos) {
			t.Errorf("corner %+v should be on the road", pos)
		}
	}
	if road.Contains(geom.Point2D{X: 0.5, Y: 0.6}) {
		t.Error("{0.5, 0.6} should be off the road")
	}
}

func TestRoad_BoundaryPositionWithOffset(t *testing.T) {
	road := NewHorizontalRoad(Point{X: 0, Y: 0}, 5)
	pos := geom.Point2D{X: 2.5, Y: 0.1}

	tests := []struct {
		dir  Direction
		want geom.Point2D
	}{
		{North, geom.Point2D{X: 2.5, Y: -RoadHalfWidth}},
		{South, geom.Point2D{X: 2.5, Y: RoadHalfWidth}},
		{West, geom.Point2D{X: -RoadHalfWidth, Y: 0.1}},
		{East, geom.Point2D{X: 5 + RoadHalfWidth, Y: 0.1}},
	}
	for _, tc := range tests {
		got := road.BoundaryPositionWithOffset(pos, tc.dir, 0)
		if got != tc.want {
			t.Errorf("dir %v: got %+v, want %+v", tc.dir, got, tc.want)
		}
	}
}

func TestMap_RandomRoadAndPosition(t *testing.T) {
	m := NewMap("m1", "one")
	if m.RandomRoad() != nil {
		t.Fatal("roadless map should return nil")
	}

	m.AddRoad(NewHorizontalRoad(Point{X: 0, Y: 3}, 10))
	for i := 0; i < 100; i++ {
		road := m.RandomRoad()
		if road == nil {
			t.Fatal("RandomRoad returned nil with roads present")
		}
		pos := road.RandomPosition()
		if !road.Contains(pos) {
			t.Fatalf("random position %+v off its road %+v", pos, road)
		}
	}
}
