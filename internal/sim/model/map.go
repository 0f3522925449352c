package model

import (
	"fmt"
	"math"
	"math/rand"

	"dogstory.ai/internal/sim/geom"
)

// Size is a rectangle extent in lattice units.
type Size struct {
	Width  int
	Height int
}

// Rectangle is a lattice-aligned bounding box.
type Rectangle struct {
	Pos  Point
	Size Size
}

// Building is a static, purely decorative obstacle.
type Building struct {
	Bounds Rectangle
}

// Office is a deposit point: a dog crossing it banks the loot in its bag.
// The offset shifts the rendered sprite; collision uses Pos.
type Office struct {
	ID      string
	Pos     Point
	OffsetX int
	OffsetY int
}

// Map is one configured game map. Roads are kept merged: no two stored roads
// of the same orientation overlap, and every lattice point covered by a road
// resolves to exactly one road per orientation. Maps are immutable once the
// game is loaded.
type Map struct {
	id   string
	name string

	roads  []*Road
	hIndex map[Point]*Road // lattice point -> horizontal road covering it
	vIndex map[Point]*Road // lattice point -> vertical road covering it

	buildings []Building

	offices     []Office
	officeIndex map[string]int

	lootTypes []LootType

	speed       *float64 // nil -> game default
	bagCapacity *int     // nil -> game default
}

func NewMap(id, name string) *Map {
	return &Map{
		id:          id,
		name:        name,
		hIndex:      make(map[Point]*Road),
		vIndex:      make(map[Point]*Road),
		officeIndex: make(map[string]int),
	}
}

func (m *Map) ID() string   { return m.id }
func (m *Map) Name() string { return m.name }

func (m *Map) Roads() []*Road        { return m.roads }
func (m *Map) Buildings() []Building { return m.buildings }
func (m *Map) Offices() []Office     { return m.offices }
func (m *Map) LootTypes() []LootType { return m.lootTypes }
func (m *Map) LootTypeCount() int    { return len(m.lootTypes) }

// Speed returns the map's dog speed override, if configured.
func (m *Map) Speed() (float64, bool) {
	if m.speed == nil {
		return 0, false
	}
	return *m.speed, true
}

// BagCapacity returns the map's bag-capacity override, if configured.
func (m *Map) BagCapacity() (int, bool) {
	if m.bagCapacity == nil {
		return 0, false
	}
	return *m.bagCapacity, true
}

func (m *Map) SetSpeed(speed float64) { m.speed = &speed }

func (m *Map) SetBagCapacity(capacity int) { m.bagCapacity = &capacity }

func (m *Map) AddBuilding(b Building)  { m.buildings = append(m.buildings, b) }
func (m *Map) AddLootType(lt LootType) { m.lootTypes = append(m.lootTypes, lt) }

// AddOffice registers a deposit point. Office ids are unique per map.
func (m *Map) AddOffice(o Office) error {
	if _, exists := m.officeIndex[o.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateOffice, o.ID)
	}
	m.officeIndex[o.ID] = len(m.offices)
	m.offices = append(m.offices, o)
	return nil
}

// AddRoad inserts a road segment, merging it with any stored road of the
// same orientation that covers the new road's start or end lattice point.
// Four cases fall out: both endpoints touch existing roads (bridge them into
// one), only the start touches, only the end touches, or neither does. The
// point index is rebuilt for every lattice point the merged road covers, so
// lookups always land on the surviving segment.
func (m *Map) AddRoad(road *Road) {
	horizontal := road.IsHorizontal()
	index := m.vIndex
	if horizontal {
		index = m.hIndex
	}

	byStart := index[road.Start]
	byEnd := index[road.End]

	var merged *Road
	switch {
	case byStart != nil && byEnd != nil:
		merged = m.spanRoad(horizontal, byStart.Start, byEnd.End)
		m.removeRoad(byStart)
		m.removeRoad(byEnd)
	case byStart != nil:
		merged = m.spanRoad(horizontal, byStart.Start, road.End)
		m.removeRoad(byStart)
	case byEnd != nil:
		merged = m.spanRoad(horizontal, road.Start, byEnd.End)
		m.removeRoad(byEnd)
	default:
		merged = road
	}

	m.roads = append(m.roads, merged)
	for _, c := range merged.coords() {
		if horizontal {
			index[Point{X: c, Y: merged.Start.Y}] = merged
		} else {
			index[Point{X: merged.Start.X, Y: c}] = merged
		}
	}
}

func (m *Map) spanRoad(horizontal bool, start, end Point) *Road {
	if horizontal {
		return NewHorizontalRoad(start, end.X)
	}
	return NewVerticalRoad(start, end.Y)
}

// removeRoad drops a road absorbed by a merge from the road list. Its index
// entries are overwritten by the merged road, which always covers them.
func (m *Map) removeRoad(road *Road) {
	for i, r := range m.roads {
		if r == road {
			m.roads = append(m.roads[:i], m.roads[i+1:]...)
			return
		}
	}
}

// FindRoadByPositionAndDirection rounds pos to the nearest lattice point and
// returns the road covering it along the axis implied by dir: horizontal
// roads answer east/west queries, vertical roads north/south. With
// along=false the axes swap, which is how movement resolution checks the
// road a dog is crossing. Returns nil when no road covers the point.
func (m *Map) FindRoadByPositionAndDirection(pos geom.Point2D, dir Direction, along bool) *Road {
	point := Point{X: int(math.Round(pos.X)), Y: int(math.Round(pos.Y))}

	wantHorizontal := dir == East || dir == West
	if !along {
		wantHorizontal = !wantHorizontal
	}
	if wantHorizontal {
		return m.hIndex[point]
	}
	return m.vIndex[point]
}

// RandomRoad draws a stored road uniformly. Returns nil for a roadless map.
func (m *Map) RandomRoad() *Road {
	if len(m.roads) == 0 {
		return nil
	}
	return m.roads[rand.Intn(len(m.roads))]
}
