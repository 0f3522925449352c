// Package collision implements swept collision detection between moving
// circular gatherers and static circular items. Each gatherer is swept along
// the segment from its pre-tick to its post-tick position; the detector
// reports every item whose circle the swept circle touches, ordered by the
// time of closest approach so the caller can resolve pickups in the order
// they actually happened within the tick.
package collision

import (
	"sort"

	"dogstory.ai/internal/sim/geom"
)

// Item is a static collision target: a loot instance or an office.
type Item struct {
	Pos    geom.Point2D
	Radius float64
}

// Gatherer is a moving actor swept from Start to End with a capture circle
// of the given radius. Start == End is valid: a standing gatherer still
// captures items it overlaps, at time zero.
type Gatherer struct {
	Start  geom.Point2D
	End    geom.Point2D
	Radius float64
}

// GatherEvent records one gatherer/item contact. Time is the projection
// parameter of the item onto the gatherer's sweep, in [0,1]; SqDistance is
// the squared distance from the item center to the travel line at that time.
type GatherEvent struct {
	GathererIndex int
	ItemIndex     int
	SqDistance    float64
	Time          float64
}

// FindGatherEvents returns every contact between a gatherer sweep and an
// item, sorted ascending by Time. Ties keep discovery order: gatherer-major,
// item-minor. Indices refer to the input slices.
func FindGatherEvents(items []Item, gatherers []Gatherer) []GatherEvent {
	var events []GatherEvent
	for g, gatherer := range gatherers {
		for i, item := range items {
			sqDist, t, ok := tryCollect(gatherer, item.Pos)
			if !ok {
				continue
			}
			if r := gatherer.Radius + item.Radius; sqDist <= r*r {
				events = append(events, GatherEvent{
					GathererIndex: g,
					ItemIndex:     i,
					SqDistance:    sqDist,
					Time:          t,
				})
			}
		}
	}
	sort.SliceStable(events, func(a, b int) bool {
		return events[a].Time < events[b].Time
	})
	return events
}

// tryCollect projects the point c onto the segment from a.Start to a.End.
// It reports the squared distance from c to the travel line and the
// projection parameter; projections outside the sweep never collect. A
// zero-length sweep degenerates to a point test at t=0.
func tryCollect(a Gatherer, c geom.Point2D) (sqDist, t float64, ok bool) {
	v := a.End.Sub(a.Start)
	u := c.Sub(a.Start)
	if v.IsZero() {
		return u.LenSq(), 0, true
	}
	uDotV := u.Dot(v)
	t = uDotV / v.LenSq()
	if t < 0 || t > 1 {
		return 0, 0, false
	}
	sqDist = u.LenSq() - uDotV*uDotV/v.LenSq()
	return sqDist, t, true
}
