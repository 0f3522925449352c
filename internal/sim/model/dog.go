package model

import "dogstory.ai/internal/sim/geom"

// Dog is a player avatar. All mutation happens on the single simulation
// strand; the struct itself carries no locking.
type Dog struct {
	id   uint32
	name string

	pos     geom.Point2D
	prevPos geom.Point2D // position before the current tick's move
	speed   geom.Vec2D
	dir     Direction

	defaultSpeed float64
	bagCapacity  int
	bag          []*Loot
	score        int64

	playTimeMs   int64
	inactivityMs int64
	moved        bool // the player issued a move command since the last tick
}

func NewDog(id uint32, name string, pos geom.Point2D, defaultSpeed float64, bagCapacity int) *Dog {
	return &Dog{
		id:           id,
		name:         name,
		pos:          pos,
		prevPos:      pos,
		dir:          North,
		defaultSpeed: defaultSpeed,
		bagCapacity:  bagCapacity,
	}
}

func (d *Dog) ID() uint32             { return d.id }
func (d *Dog) Name() string           { return d.name }
func (d *Dog) Position() geom.Point2D { return d.pos }
func (d *Dog) Direction() Direction   { return d.dir }
func (d *Dog) Velocity() geom.Vec2D   { return d.speed }
func (d *Dog) DefaultSpeed() float64  { return d.defaultSpeed }

// PrevPosition is the position before the current tick's move; the pair
// (PrevPosition, Position) is the sweep segment fed to collision detection.
func (d *Dog) PrevPosition() geom.Point2D { return d.prevPos }

// SetPosition snapshots the current position as the previous one, then
// applies the new position. Called exactly once per dog per tick.
func (d *Dog) SetPosition(pos geom.Point2D) {
	d.prevPos = d.pos
	d.pos = pos
}

func (d *Dog) SetVelocity(v geom.Vec2D) { d.speed = v }

// SetDirection applies a movement command in wire form. The empty string
// stops the dog without changing its facing; a letter turns the dog and sets
// its velocity to the default speed along that axis.
func (d *Dog) SetDirection(letter string) error {
	if letter == "" {
		d.speed = geom.Vec2D{}
		return nil
	}
	dir, err := DirectionFromLetter(letter)
	if err != nil {
		return err
	}
	d.dir = dir
	switch dir {
	case West:
		d.speed = geom.Vec2D{X: -d.defaultSpeed}
	case East:
		d.speed = geom.Vec2D{X: d.defaultSpeed}
	case North:
		d.speed = geom.Vec2D{Y: -d.defaultSpeed}
	case South:
		d.speed = geom.Vec2D{Y: d.defaultSpeed}
	}
	return nil
}

func (d *Dog) BagCapacity() int { return d.bagCapacity }
func (d *Dog) Bag() []*Loot     { return d.bag }
func (d *Dog) BagFull() bool    { return len(d.bag) >= d.bagCapacity }

func (d *Dog) AddToBag(loot *Loot) {
	d.bag = append(d.bag, loot)
}

// DepositBag credits the "value" of every bagged item against the given
// loot-type catalog and empties the bag. Called when the dog crosses an
// office.
func (d *Dog) DepositBag(lootTypes []LootType) {
	for _, loot := range d.bag {
		if loot.Type >= 0 && loot.Type < len(lootTypes) {
			d.score += lootTypes[loot.Type].Value()
		}
	}
	d.bag = nil
}

func (d *Dog) Score() int64 { return d.score }

func (d *Dog) PlayTimeMs() int64   { return d.playTimeMs }
func (d *Dog) InactivityMs() int64 { return d.inactivityMs }

func (d *Dog) AccruePlayTime(deltaMs int64)   { d.playTimeMs += deltaMs }
func (d *Dog) AccrueInactivity(deltaMs int64) { d.inactivityMs += deltaMs }
func (d *Dog) ResetInactivity()               { d.inactivityMs = 0 }

// Moved reports whether the player issued a move command since the last
// tick; the orchestrator reads it to drive the inactivity timer and clears
// it every tick.
func (d *Dog) Moved() bool { return d.moved }
func (d *Dog) MarkMoved()  { d.moved = true }
func (d *Dog) ClearMoved() { d.moved = false }

// RestoreDog rebuilds a dog from persisted state, bypassing the invariants
// NewDog establishes. Snapshot restore is its only caller.
func RestoreDog(id uint32, name string, pos, prevPos geom.Point2D, speed geom.Vec2D, dir Direction,
	defaultSpeed float64, bagCapacity int, bag []*Loot, score int64, playTimeMs, inactivityMs int64, moved bool) *Dog {
	return &Dog{
		id:           id,
		name:         name,
		pos:          pos,
		prevPos:      prevPos,
		speed:        speed,
		dir:          dir,
		defaultSpeed: defaultSpeed,
		bagCapacity:  bagCapacity,
		bag:          bag,
		score:        score,
		playTimeMs:   playTimeMs,
		inactivityMs: inactivityMs,
		moved:        moved,
	}
}
