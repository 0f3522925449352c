// Package catalogs loads the game config file: maps with their roads,
// buildings, offices and loot catalogs, plus the game-wide defaults. The
// file is validated against a JSON Schema before any model object is
// built, so the model only ever sees structurally sound input; semantic
// duplicates (map ids, office ids) are still caught by the model itself.
package catalogs

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"dogstory.ai/internal/sim/model"
)

//go:embed game.schema.json
var gameSchema string

var schema = jsonschema.MustCompileString("game.schema.json", gameSchema)

type fileConfig struct {
	DefaultDogSpeed    *float64       `json:"defaultDogSpeed"`
	DefaultBagCapacity *int           `json:"defaultBagCapacity"`
	DogRetirementTime  *float64       `json:"dogRetirementTime"` // seconds
	LootGenerator      *lootGenConfig `json:"lootGeneratorConfig"`
	Maps               []mapConfig    `json:"maps"`
}

type lootGenConfig struct {
	Period      float64 `json:"period"` // seconds
	Probability float64 `json:"probability"`
}

type mapConfig struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DogSpeed    *float64         `json:"dogSpeed"`
	BagCapacity *int             `json:"bagCapacity"`
	Roads       []roadConfig     `json:"roads"`
	Buildings   []buildingConfig `json:"buildings"`
	Offices     []officeConfig   `json:"offices"`
	LootTypes   []map[string]any `json:"lootTypes"`
}

type roadConfig struct {
	X0 int  `json:"x0"`
	Y0 int  `json:"y0"`
	X1 *int `json:"x1"`
	Y1 *int `json:"y1"`
}

type buildingConfig struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type officeConfig struct {
	ID      string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	OffsetX int    `json:"offsetX"`
	OffsetY int    `json:"offsetY"`
}

// Load reads, validates and builds the game from a config file.
func Load(path string) (*model.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading game config: %w", err)
	}
	return Parse(data)
}

// Parse builds the game from raw config bytes.
func Parse(data []byte) (*model.Game, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing game config: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating game config: %w", err)
	}

	var cfg fileConfig
	dec = json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding game config: %w", err)
	}

	game := model.NewGame(gameConfig(cfg))
	for _, mc := range cfg.Maps {
		m, err := buildMap(mc)
		if err != nil {
			return nil, err
		}
		if err := game.AddMap(m); err != nil {
			return nil, fmt.Errorf("map %q: %w", mc.ID, err)
		}
	}
	return game, nil
}

func gameConfig(cfg fileConfig) model.Config {
	out := model.Config{}
	if cfg.DefaultDogSpeed != nil {
		out.DefaultDogSpeed = *cfg.DefaultDogSpeed
	}
	if cfg.DefaultBagCapacity != nil {
		out.DefaultBagCapacity = *cfg.DefaultBagCapacity
	}
	if cfg.DogRetirementTime != nil {
		out.DogRetirementTime = secondsToDuration(*cfg.DogRetirementTime)
	}
	if cfg.LootGenerator != nil {
		out.LootPeriod = secondsToDuration(cfg.LootGenerator.Period)
		out.LootProbability = cfg.LootGenerator.Probability
	}
	return out
}

func buildMap(mc mapConfig) (*model.Map, error) {
	m := model.NewMap(mc.ID, mc.Name)
	if mc.DogSpeed != nil {
		m.SetSpeed(*mc.DogSpeed)
	}
	if mc.BagCapacity != nil {
		m.SetBagCapacity(*mc.BagCapacity)
	}

	for _, lt := range mc.LootTypes {
		m.AddLootType(model.LootType{Props: buildProperties(lt)})
	}
	for _, rc := range mc.Roads {
		switch {
		case rc.X1 != nil:
			m.AddRoad(model.NewHorizontalRoad(model.Point{X: rc.X0, Y: rc.Y0}, *rc.X1))
		case rc.Y1 != nil:
			m.AddRoad(model.NewVerticalRoad(model.Point{X: rc.X0, Y: rc.Y0}, *rc.Y1))
		}
	}
	for _, bc := range mc.Buildings {
		m.AddBuilding(model.Building{Bounds: model.Rectangle{
			Pos:  model.Point{X: bc.X, Y: bc.Y},
			Size: model.Size{Width: bc.W, Height: bc.H},
		}})
	}
	for _, oc := range mc.Offices {
		office := model.Office{
			ID:      oc.ID,
			Pos:     model.Point{X: oc.X, Y: oc.Y},
			OffsetX: oc.OffsetX,
			OffsetY: oc.OffsetY,
		}
		if err := m.AddOffice(office); err != nil {
			return nil, fmt.Errorf("map %q office %q: %w", mc.ID, oc.ID, err)
		}
	}
	return m, nil
}

// buildProperties converts a raw loot-type object into tagged property
// values. Numbers that parse as integers become integer properties, which
// keeps the "value" property countable; other numerics stay floats.
func buildProperties(raw map[string]any) model.Properties {
	props := make(model.Properties, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			props[k] = model.StringProp(val)
		case bool:
			props[k] = model.BoolProp(val)
		case json.Number:
			if n, err := val.Int64(); err == nil {
				props[k] = model.IntProp(n)
			} else if f, err := val.Float64(); err == nil {
				props[k] = model.FloatProp(f)
			}
		}
	}
	return props
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
