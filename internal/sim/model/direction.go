package model

import "fmt"

// Direction is a dog's discrete facing. The map uses screen coordinates:
// north decreases Y, south increases Y.
type Direction int

const (
	North Direction = iota
	South
	West
	East
)

// Letter returns the single-letter wire form: U, D, L or R.
func (d Direction) Letter() string {
	switch d {
	case North:
		return "U"
	case South:
		return "D"
	case West:
		return "L"
	case East:
		return "R"
	}
	return "?"
}

func (d Direction) String() string { return d.Letter() }

// DirectionFromLetter parses the wire form. The empty string is not a
// direction; callers treat it as "stop" before parsing.
func DirectionFromLetter(s string) (Direction, error) {
	switch s {
	case "U":
		return North, nil
	case "D":
		return South, nil
	case "L":
		return West, nil
	case "R":
		return East, nil
	}
	return North, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// IsValidDirectionLetter accepts the four letters and the empty string
// (stop). Anything else is rejected at the API boundary.
func IsValidDirectionLetter(s string) bool {
	switch s {
	case "", "U", "D", "L", "R":
		return true
	}
	return false
}
