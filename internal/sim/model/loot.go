package model

import "dogstory.ai/internal/sim/geom"

// PropKind tags the variant held by a PropValue.
type PropKind int

const (
	PropString PropKind = iota
	PropFloat
	PropInt
	PropBool
)

// PropValue is one loot-type property. Loot types carry an open-ended set of
// named properties coming straight from the map config; the model only
// interprets the integer "value" property, everything else is passed through
// to whoever renders the catalog.
type PropValue struct {
	kind PropKind
	str  string
	flt  float64
	num  int64
	bl   bool
}

func StringProp(s string) PropValue { return PropValue{kind: PropString, str: s} }
func FloatProp(f float64) PropValue { return PropValue{kind: PropFloat, flt: f} }
func IntProp(n int64) PropValue     { return PropValue{kind: PropInt, num: n} }
func BoolProp(b bool) PropValue     { return PropValue{kind: PropBool, bl: b} }

func (v PropValue) Kind() PropKind { return v.kind }

func (v PropValue) Str() (string, bool)    { return v.str, v.kind == PropString }
func (v PropValue) Float() (float64, bool) { return v.flt, v.kind == PropFloat }
func (v PropValue) Int() (int64, bool)     { return v.num, v.kind == PropInt }
func (v PropValue) Bool() (bool, bool)     { return v.bl, v.kind == PropBool }

// Properties maps property names to tagged values. Insertion order is not
// significant.
type Properties map[string]PropValue

// LootType describes one entry of a map's loot catalog, addressed by index.
type LootType struct {
	Props Properties
}

// Value returns the score credited per collected item of this type. A
// missing or non-integer "value" counts as zero; catalog validation rejects
// such configs before they reach the model.
func (t LootType) Value() int64 {
	n, ok := t.Props["value"].Int()
	if !ok {
		return 0
	}
	return n
}

// Loot is one collectible item lying on a road. IDs come from the game-wide
// counter and are never reused, even after pickup or retirement.
type Loot struct {
	ID   uint32
	Type int
	Pos  geom.Point2D
}
