// Package snapshot persists the whole game state as one versioned blob:
// a JSON header line followed by a gob payload, zstd-compressed. The
// header stays readable with zstdcat for quick inspection; the payload
// carries everything the simulation needs to resume where it stopped.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"dogstory.ai/internal/sim/app"
	"dogstory.ai/internal/sim/geom"
	"dogstory.ai/internal/sim/model"
)

const Version = 1

type Header struct {
	Version int `json:"version"`
}

type StateV1 struct {
	Header Header

	Counters CountersV1
	Sessions []SessionV1
	Players  []PlayerV1
	Tokens   []TokenV1
}

type CountersV1 struct {
	NextDogID  uint32
	NextLootID uint32
}

type SessionV1 struct {
	MapID string
	Dogs  []DogV1
	Loots []LootV1
}

type DogV1 struct {
	ID      uint32
	Name    string
	Pos     PointV1
	PrevPos PointV1
	Speed   PointV1
	Dir     string // wire letter

	DefaultSpeed float64
	BagCapacity  int
	Bag          []LootV1
	Score        int64

	PlayTimeMs   int64
	InactivityMs int64
	Moved        bool
}

type LootV1 struct {
	ID   uint32
	Type int
	Pos  PointV1
}

type PointV1 struct {
	X float64
	Y float64
}

type PlayerV1 struct {
	DogID uint32
	MapID string
}

type TokenV1 struct {
	Token string
	DogID uint32
}

// Capture freezes the application's state into a StateV1. Must run on the
// simulation strand.
func Capture(a *app.Application) StateV1 {
	state := StateV1{Header: Header{Version: Version}}
	state.Counters.NextDogID, state.Counters.NextLootID = a.Game().Counters()

	for _, session := range a.Game().Sessions() {
		sv := SessionV1{MapID: session.Map().ID()}
		for _, dog := range session.Dogs() {
			sv.Dogs = append(sv.Dogs, captureDog(dog))
		}
		for _, loot := range session.Loots() {
			sv.Loots = append(sv.Loots, captureLoot(loot))
		}
		state.Sessions = append(state.Sessions, sv)
	}

	for _, p := range a.Players().All() {
		state.Players = append(state.Players, PlayerV1{DogID: p.DogID, MapID: p.MapID})
	}

	for token, dogID := range a.Tokens().All() {
		state.Tokens = append(state.Tokens, TokenV1{Token: string(token), DogID: dogID})
	}
	sort.Slice(state.Tokens, func(i, j int) bool {
		return state.Tokens[i].DogID < state.Tokens[j].DogID
	})
	return state
}

func captureDog(dog *model.Dog) DogV1 {
	var bag []LootV1
	for _, loot := range dog.Bag() {
		bag = append(bag, captureLoot(loot))
	}
	return DogV1{
		ID:           dog.ID(),
		Name:         dog.Name(),
		Pos:          point(dog.Position()),
		PrevPos:      point(dog.PrevPosition()),
		Speed:        PointV1{X: dog.Velocity().X, Y: dog.Velocity().Y},
		Dir:          dog.Direction().Letter(),
		DefaultSpeed: dog.DefaultSpeed(),
		BagCapacity:  dog.BagCapacity(),
		Bag:          bag,
		Score:        dog.Score(),
		PlayTimeMs:   dog.PlayTimeMs(),
		InactivityMs: dog.InactivityMs(),
		Moved:        dog.Moved(),
	}
}

func captureLoot(loot *model.Loot) LootV1 {
	return LootV1{ID: loot.ID, Type: loot.Type, Pos: point(loot.Pos)}
}

func point(p geom.Point2D) PointV1 { return PointV1{X: p.X, Y: p.Y} }

// Restore rebuilds the application's state from a StateV1. The
// application must be freshly constructed against the same game config:
// sessions reference maps by id, and a session for an unknown map is an
// error. Must run on the simulation strand.
func Restore(state StateV1, a *app.Application) error {
	if state.Header.Version != Version {
		return fmt.Errorf("unsupported snapshot version %d", state.Header.Version)
	}
	game := a.Game()
	game.SetCounters(state.Counters.NextDogID, state.Counters.NextLootID)

	for _, sv := range state.Sessions {
		m := game.FindMap(sv.MapID)
		if m == nil {
			return fmt.Errorf("snapshot references unknown map %q", sv.MapID)
		}
		session := game.EnsureSession(m)
		for _, dv := range sv.Dogs {
			dog, err := restoreDog(dv)
			if err != nil {
				return err
			}
			session.AddDog(dog)
		}
		var loots []*model.Loot
		for _, lv := range sv.Loots {
			loots = append(loots, restoreLoot(lv))
		}
		session.RestoreLoots(loots)
	}

	for _, pv := range state.Players {
		a.Players().Add(pv.DogID, pv.MapID)
	}
	for _, tv := range state.Tokens {
		if _, ok := a.Players().FindByDog(tv.DogID); !ok {
			return fmt.Errorf("token for dog %d: %w", tv.DogID, app.ErrTokenNotFound)
		}
		a.Tokens().Register(app.Token(tv.Token), tv.DogID)
	}
	return nil
}

func restoreDog(dv DogV1) (*model.Dog, error) {
	dir, err := model.DirectionFromLetter(dv.Dir)
	if err != nil {
		return nil, fmt.Errorf("dog %d: %w", dv.ID, err)
	}
	var bag []*model.Loot
	for _, lv := range dv.Bag {
		bag = append(bag, restoreLoot(lv))
	}
	return model.RestoreDog(
		dv.ID, dv.Name,
		geom.Point2D{X: dv.Pos.X, Y: dv.Pos.Y},
		geom.Point2D{X: dv.PrevPos.X, Y: dv.PrevPos.Y},
		geom.Vec2D{X: dv.Speed.X, Y: dv.Speed.Y},
		dir,
		dv.DefaultSpeed, dv.BagCapacity, bag, dv.Score,
		dv.PlayTimeMs, dv.InactivityMs, dv.Moved,
	), nil
}

func restoreLoot(lv LootV1) *model.Loot {
	return &model.Loot{ID: lv.ID, Type: lv.Type, Pos: geom.Point2D{X: lv.Pos.X, Y: lv.Pos.Y}}
}

// Write saves the state next to path and renames it into place, so a
// crash mid-write never corrupts the previous snapshot.
func Write(path string, state StateV1) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := writeFile(tmp, state); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func writeFile(path string, state StateV1) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, _ := json.Marshal(state.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&state); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

func Read(path string) (StateV1, error) {
	var state StateV1
	f, err := os.Open(path)
	if err != nil {
		return state, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return state, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line duplicates what gob carries; skip it.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&state); err != nil {
		return state, fmt.Errorf("gob decode: %w", err)
	}
	return state, nil
}
