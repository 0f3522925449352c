// Package app hosts the game-facing application layer: player and token
// registries, the tick orchestrator, and the serialized runtime that owns
// them. Everything here runs on a single strand; nothing in this package
// is safe for concurrent use on its own.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dogstory.ai/internal/sim/collision"
	"dogstory.ai/internal/sim/geom"
	"dogstory.ai/internal/sim/model"
)

// Record is one archived retirement row.
type Record struct {
	ID         string
	Name       string
	Score      int64
	PlayTimeMs int64
}

// RecordStore archives retired players. Implementations bound their own
// latency; Tick passes a background context.
type RecordStore interface {
	Add(ctx context.Context, rec Record) error
}

// Options configures an Application.
type Options struct {
	// RandomizeSpawns places joining dogs at a random road position.
	// When false a dog spawns at the start of the map's first road,
	// which keeps integration tests deterministic.
	RandomizeSpawns bool

	// Random drives loot type and position selection. Defaults to a
	// time-seeded source.
	Random *rand.Rand

	Log logrus.FieldLogger
}

// Application binds the game model to players, tokens and the record
// store, and advances the whole simulation one tick at a time.
type Application struct {
	game    *model.Game
	players *Players
	tokens  *PlayerTokens
	records RecordStore

	randomizeSpawns bool
	rng             *rand.Rand
	log             logrus.FieldLogger

	onTick []func(delta time.Duration)
}

func NewApplication(game *model.Game, records RecordStore, opts Options) *Application {
	rng := opts.Random
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Application{
		game:            game,
		players:         NewPlayers(),
		tokens:          NewPlayerTokens(),
		records:         records,
		randomizeSpawns: opts.RandomizeSpawns,
		rng:             rng,
		log:             log,
	}
}

func (a *Application) Game() *model.Game     { return a.game }
func (a *Application) Players() *Players     { return a.players }
func (a *Application) Tokens() *PlayerTokens { return a.tokens }

func (a *Application) Maps() []*model.Map { return a.game.Maps() }

func (a *Application) FindMap(id string) (*model.Map, error) {
	m := a.game.FindMap(id)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrMapNotFound, id)
	}
	return m, nil
}

// JoinGame admits a named player onto a map: it lazily creates the map's
// session, allocates a dog id, places the dog, and issues a token.
func (a *Application) JoinGame(name, mapID string) (Token, uint32, error) {
	if name == "" {
		return "", 0, ErrInvalidName
	}
	m, err := a.FindMap(mapID)
	if err != nil {
		return "", 0, err
	}
	session := a.game.EnsureSession(m)

	pos, err := a.spawnPosition(m)
	if err != nil {
		return "", 0, err
	}

	dogID := a.game.NextDogID()
	dog := model.NewDog(dogID, name, pos, a.game.DogSpeedOn(m), a.game.BagCapacityOn(m))
	session.AddDog(dog)
	a.players.Add(dogID, mapID)

	token, err := a.tokens.Issue(dogID)
	if err != nil {
		session.RemoveDog(dogID)
		a.players.Remove(dogID)
		return "", 0, err
	}

	a.log.WithFields(logrus.Fields{
		"dog_id": dogID,
		"map_id": mapID,
	}).Info("player joined")
	return token, dogID, nil
}

func (a *Application) spawnPosition(m *model.Map) (geom.Point2D, error) {
	road := m.RandomRoad()
	if road == nil {
		return geom.Point2D{}, fmt.Errorf("map %q: %w", m.ID(), model.ErrNoRoads)
	}
	if a.randomizeSpawns {
		return road.RandomPosition(), nil
	}
	first := m.Roads()[0]
	return geom.Point2D{X: float64(first.Start.X), Y: float64(first.Start.Y)}, nil
}

// FindPlayerByToken resolves a token to the player it was issued to.
// Malformed or unknown tokens both yield ErrTokenNotFound.
func (a *Application) FindPlayerByToken(token Token) (Player, error) {
	if !ValidToken(string(token)) {
		return Player{}, ErrTokenNotFound
	}
	dogID, ok := a.tokens.Find(token)
	if !ok {
		return Player{}, ErrTokenNotFound
	}
	p, ok := a.players.FindByDog(dogID)
	if !ok {
		return Player{}, ErrTokenNotFound
	}
	return p, nil
}

// SetDogDirection applies a movement command for the player's dog. An
// empty letter stops the dog; either way the command counts as activity
// for the current tick.
func (a *Application) SetDogDirection(token Token, letter string) error {
	p, err := a.FindPlayerByToken(token)
	if err != nil {
		return err
	}
	dog := a.findDog(p)
	if err := dog.SetDirection(letter); err != nil {
		return err
	}
	if letter == "" {
		dog.ClearMoved()
	} else {
		dog.MarkMoved()
	}
	return nil
}

// Dogs returns the dogs sharing the player's session, in join order.
func (a *Application) Dogs(p Player) []*model.Dog {
	session := a.game.FindSession(p.MapID)
	if session == nil {
		return nil
	}
	return session.Dogs()
}

// Loots returns the loose loot on the player's map, in spawn order.
func (a *Application) Loots(p Player) []*model.Loot {
	session := a.game.FindSession(p.MapID)
	if session == nil {
		return nil
	}
	return session.Loots()
}

// OnTick registers a hook fired at the end of every tick with the tick's
// delta. Hooks run on the simulation strand and must not block.
func (a *Application) OnTick(fn func(delta time.Duration)) {
	a.onTick = append(a.onTick, fn)
}

// Tick advances the simulation by delta. Phases run in a fixed order:
// movement, loot spawning, collision resolution, timers and retirement,
// then the registered hooks. A record-store failure aborts the affected
// retirements and surfaces from Tick; the rest of the tick is unaffected.
func (a *Application) Tick(delta time.Duration) error {
	deltaMs := delta.Milliseconds()

	a.moveDogs(deltaMs)
	a.spawnLoot(delta)
	a.resolveCollisions()
	err := a.updateTimersAndRetire(deltaMs)

	for _, fn := range a.onTick {
		fn(delta)
	}
	return err
}

func (a *Application) moveDogs(deltaMs int64) {
	for _, p := range a.players.All() {
		session := a.game.FindSession(p.MapID)
		session.MoveDog(session.FindDog(p.DogID), deltaMs)
	}
}

func (a *Application) spawnLoot(delta time.Duration) {
	for _, session := range a.game.Sessions() {
		m := session.Map()
		typeCount := len(m.LootTypes())
		if typeCount == 0 {
			continue
		}
		n := session.LootGenerator().Generate(delta, len(session.Loots()), len(session.Dogs()))
		for i := 0; i < n; i++ {
			road := m.RandomRoad()
			if road == nil {
				break
			}
			session.AddLoot(&model.Loot{
				ID:   a.game.NextLootID(),
				Type: a.rng.Intn(typeCount),
				Pos:  road.RandomPosition(),
			})
		}
	}
}

func (a *Application) resolveCollisions() {
	for _, session := range a.game.Sessions() {
		dogs := session.Dogs()
		gatherers := make([]collision.Gatherer, len(dogs))
		for i, dog := range dogs {
			gatherers[i] = collision.Gatherer{
				Start:  dog.PrevPosition(),
				End:    dog.Position(),
				Radius: model.DogHalfWidth,
			}
		}

		// Item indexing: loot first, offices appended after. The loot
		// snapshot keeps indices stable while items leave the session.
		loots := append([]*model.Loot(nil), session.Loots()...)
		offices := session.Map().Offices()
		items := make([]collision.Item, 0, len(loots)+len(offices))
		for _, loot := range loots {
			items = append(items, collision.Item{Pos: loot.Pos, Radius: model.LootHalfWidth})
		}
		for _, office := range offices {
			items = append(items, collision.Item{
				Pos:    geom.Point2D{X: float64(office.Pos.X), Y: float64(office.Pos.Y)},
				Radius: model.OfficeHalfWidth,
			})
		}

		events := collision.FindGatherEvents(items, gatherers)

		claimed := make(map[int]struct{})
		for _, ev := range events {
			dog := dogs[ev.GathererIndex]
			if ev.ItemIndex >= len(loots) {
				dog.DepositBag(session.Map().LootTypes())
				continue
			}
			if _, taken := claimed[ev.ItemIndex]; taken {
				continue
			}
			if dog.BagFull() {
				continue
			}
			if loot := session.TakeLoot(loots[ev.ItemIndex].ID); loot != nil {
				dog.AddToBag(loot)
				claimed[ev.ItemIndex] = struct{}{}
			}
		}
	}
}

func (a *Application) updateTimersAndRetire(deltaMs int64) error {
	retireMs := a.game.DogRetirementTime().Milliseconds()

	var retire []uint32
	for _, p := range a.players.All() {
		dog := a.findDog(p)
		if dog.Moved() {
			dog.ResetInactivity()
			dog.AccruePlayTime(deltaMs)
		} else {
			dog.AccrueInactivity(deltaMs)
		}
		dog.ClearMoved()

		if dog.InactivityMs() >= retireMs {
			retire = append(retire, p.DogID)
		}
	}

	var errs []error
	for _, dogID := range retire {
		p, ok := a.players.FindByDog(dogID)
		if !ok {
			continue
		}
		dog := a.findDog(p)
		rec := Record{
			ID:    uuid.NewString(),
			Name:  dog.Name(),
			Score: dog.Score(),
			// Play time includes the idle stretch that triggered
			// the retirement.
			PlayTimeMs: dog.PlayTimeMs() + retireMs,
		}
		if err := a.records.Add(context.Background(), rec); err != nil {
			a.log.WithError(err).WithField("dog_id", dogID).Error("archiving retired player")
			errs = append(errs, fmt.Errorf("archiving dog %d: %w", dogID, err))
			continue
		}
		a.leaveGame(p)
	}
	return errors.Join(errs...)
}

func (a *Application) leaveGame(p Player) {
	a.game.FindSession(p.MapID).RemoveDog(p.DogID)
	a.players.Remove(p.DogID)
	a.tokens.Remove(p.DogID)
	a.log.WithField("dog_id", p.DogID).Info("player retired")
}

func (a *Application) findDog(p Player) *model.Dog {
	return a.game.FindSession(p.MapID).FindDog(p.DogID)
}
