package model

import (
	"dogstory.ai/internal/sim/geom"
	"dogstory.ai/internal/sim/lootgen"
)

// GameSession hosts the live state of one map: the dogs playing on it and
// the loot currently on the ground. A session is created lazily when the
// first player joins its map and lives for the lifetime of the game.
type GameSession struct {
	m       *Map
	gen     *lootgen.Generator
	dogs    []*Dog
	dogByID map[uint32]*Dog
	loots   []*Loot
}

func NewGameSession(m *Map, gen *lootgen.Generator) *GameSession {
	return &GameSession{
		m:       m,
		gen:     gen,
		dogByID: make(map[uint32]*Dog),
	}
}

func (s *GameSession) Map() *Map { return s.m }

func (s *GameSession) LootGenerator() *lootgen.Generator { return s.gen }

// Dogs returns the session's dogs in join order. Callers must not mutate
// the returned slice.
func (s *GameSession) Dogs() []*Dog { return s.dogs }

func (s *GameSession) FindDog(id uint32) *Dog { return s.dogByID[id] }

func (s *GameSession) AddDog(dog *Dog) {
	s.dogs = append(s.dogs, dog)
	s.dogByID[dog.ID()] = dog
}

// RemoveDog drops the dog from the session, preserving the join order of
// the remaining dogs.
func (s *GameSession) RemoveDog(id uint32) {
	dog, ok := s.dogByID[id]
	if !ok {
		return
	}
	delete(s.dogByID, id)
	for i, d := range s.dogs {
		if d == dog {
			s.dogs = append(s.dogs[:i], s.dogs[i+1:]...)
			break
		}
	}
}

// Loots returns the loose loot in spawn order. Callers must not mutate the
// returned slice.
func (s *GameSession) Loots() []*Loot { return s.loots }

func (s *GameSession) AddLoot(loot *Loot) {
	s.loots = append(s.loots, loot)
}

// TakeLoot removes the loot with the given id from the ground and returns
// it, or nil when the id is no longer present.
func (s *GameSession) TakeLoot(id uint32) *Loot {
	for i, loot := range s.loots {
		if loot.ID == id {
			s.loots = append(s.loots[:i], s.loots[i+1:]...)
			return loot
		}
	}
	return nil
}

// RestoreLoots replaces the session's loot wholesale. Snapshot restore is
// its only caller.
func (s *GameSession) RestoreLoots(loots []*Loot) { s.loots = loots }

// MoveDog advances a dog by deltaMs along its velocity, confined to the
// road network. Movement stays inside a road the dog's heading runs along
// when one covers both ends of the step; otherwise a crossing road is
// tried; when the step would leave the network, the dog is pinned to the
// road boundary in its heading and its velocity drops to zero.
func (s *GameSession) MoveDog(dog *Dog, deltaMs int64) {
	pos := dog.Position()
	dir := dog.Direction()
	target := pos.Add(dog.Velocity().Scale(float64(deltaMs) / 1000.0))

	along := s.m.FindRoadByPositionAndDirection(pos, dir, true)
	alongAtTarget := s.m.FindRoadByPositionAndDirection(target, dir, true)
	across := s.m.FindRoadByPositionAndDirection(pos, dir, false)
	acrossAtTarget := s.m.FindRoadByPositionAndDirection(target, dir, false)

	switch {
	case along != nil && alongAtTarget != nil:
		dog.SetPosition(target)
	case along != nil:
		dog.SetPosition(along.BoundaryPositionWithOffset(pos, dir, 0))
		dog.SetVelocity(geom.Vec2D{})
	case across != nil && acrossAtTarget != nil:
		dog.SetPosition(target)
	case across != nil:
		dog.SetPosition(across.BoundaryPositionWithOffset(pos, dir, 0))
		dog.SetVelocity(geom.Vec2D{})
	default:
		// Off the network entirely; hold position.
		dog.SetPosition(pos)
		dog.SetVelocity(geom.Vec2D{})
	}
}
