package model

import (
	"time"

	"dogstory.ai/internal/sim/lootgen"
)

const (
	DefaultDogSpeed       = 1.0
	DefaultBagCapacity    = 3
	DefaultRetirementTime = time.Minute
)

// Config carries the game-wide defaults loaded from the game config file.
// Zero values fall back to the package defaults.
type Config struct {
	DefaultDogSpeed    float64
	DefaultBagCapacity int
	DogRetirementTime  time.Duration
	LootPeriod         time.Duration
	LootProbability    float64
}

// Game is the registry of maps and their live sessions. Sessions are
// created lazily, one per map, when the first player joins.
type Game struct {
	cfg Config

	maps     []*Map
	mapIndex map[string]*Map

	sessions     []*GameSession
	sessionIndex map[string]*GameSession

	nextDogID  uint32
	nextLootID uint32
}

func NewGame(cfg Config) *Game {
	if cfg.DefaultDogSpeed <= 0 {
		cfg.DefaultDogSpeed = DefaultDogSpeed
	}
	if cfg.DefaultBagCapacity <= 0 {
		cfg.DefaultBagCapacity = DefaultBagCapacity
	}
	if cfg.DogRetirementTime <= 0 {
		cfg.DogRetirementTime = DefaultRetirementTime
	}
	return &Game{
		cfg:          cfg,
		mapIndex:     make(map[string]*Map),
		sessionIndex: make(map[string]*GameSession),
	}
}

func (g *Game) AddMap(m *Map) error {
	if _, ok := g.mapIndex[m.ID()]; ok {
		return ErrDuplicateMap
	}
	g.maps = append(g.maps, m)
	g.mapIndex[m.ID()] = m
	return nil
}

func (g *Game) Maps() []*Map           { return g.maps }
func (g *Game) FindMap(id string) *Map { return g.mapIndex[id] }

func (g *Game) Sessions() []*GameSession { return g.sessions }

func (g *Game) FindSession(mapID string) *GameSession { return g.sessionIndex[mapID] }

// EnsureSession returns the session for the given map, creating it on
// first use.
func (g *Game) EnsureSession(m *Map) *GameSession {
	if s, ok := g.sessionIndex[m.ID()]; ok {
		return s
	}
	s := NewGameSession(m, lootgen.New(g.cfg.LootPeriod, g.cfg.LootProbability))
	g.sessions = append(g.sessions, s)
	g.sessionIndex[m.ID()] = s
	return s
}

// DogSpeedOn resolves the movement speed for a map, preferring the map's
// own override over the game default.
func (g *Game) DogSpeedOn(m *Map) float64 {
	if speed, ok := m.Speed(); ok {
		return speed
	}
	return g.cfg.DefaultDogSpeed
}

// BagCapacityOn resolves the bag capacity for a map, preferring the map's
// own override over the game default.
func (g *Game) BagCapacityOn(m *Map) int {
	if capacity, ok := m.BagCapacity(); ok {
		return capacity
	}
	return g.cfg.DefaultBagCapacity
}

func (g *Game) DogRetirementTime() time.Duration { return g.cfg.DogRetirementTime }

// NextDogID returns the next dog identifier. Identifiers are allocated
// sequentially and never reused.
func (g *Game) NextDogID() uint32 {
	id := g.nextDogID
	g.nextDogID++
	return id
}

// NextLootID returns the next loot identifier. Identifiers are allocated
// sequentially and never reused.
func (g *Game) NextLootID() uint32 {
	id := g.nextLootID
	g.nextLootID++
	return id
}

// Counters exposes the id allocators for persistence.
func (g *Game) Counters() (nextDogID, nextLootID uint32) {
	return g.nextDogID, g.nextLootID
}

// SetCounters rewinds the id allocators during snapshot restore.
func (g *Game) SetCounters(nextDogID, nextLootID uint32) {
	g.nextDogID = nextDogID
	g.nextLootID = nextLootID
}
