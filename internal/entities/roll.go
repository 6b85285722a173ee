// Package entities provides core data structures for rpg-dice.
package entities

import (
	"fmt"
	"strings"
)

// Bounds of a roll accepted by the notation parser
const (
	MinCount    = 1
	MaxCount    = 99
	MinSides    = 1
	MaxSides    = 100
	MaxModifier = 999

	// Advantage and disadvantage always roll two d20s
	AdvantageCount = 2
	AdvantageSides = 20
)

// RollSpec is a validated dice roll request, e.g. 2d6+3
type RollSpec struct {
	Count    int `json:"count"`
	Sides    int `json:"sides"`
	Modifier int `json:"modifier"`
}

// Notation renders the roll in canonical dice notation
func (s RollSpec) Notation() string {
	switch {
	case s.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", s.Count, s.Sides, s.Modifier)
	case s.Modifier < 0:
		return fmt.Sprintf("%dd%d%d", s.Count, s.Sides, s.Modifier)
	default:
		return fmt.Sprintf("%dd%d", s.Count, s.Sides)
	}
}

// IsAdvantageShape reports whether the roll can be rolled with advantage or disadvantage
func (s RollSpec) IsAdvantageShape() bool {
	return s.Count == AdvantageCount && s.Sides == AdvantageSides
}

// RollResult holds the dice drawn for a RollSpec
type RollResult struct {
	// Individual dice in draw order
	Rolls []int `json:"rolls"`

	// Modifier copied from the RollSpec
	Modifier int `json:"modifier"`

	// Sum of all rolls plus the modifier
	Total int `json:"total"`
}

// DiceTotal returns the sum of the rolls without the modifier
func (r *RollResult) DiceTotal() int {
	return r.Total - r.Modifier
}

// DisplayMode selects how a roll is rolled and rendered
type DisplayMode int

// Display modes
const (
	ModeStandard DisplayMode = iota
	ModeAdvantage
	ModeDisadvantage
)

// String returns the lowercase name of the mode
func (m DisplayMode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeAdvantage:
		return "advantage"
	case ModeDisadvantage:
		return "disadvantage"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known display modes
func (m DisplayMode) Valid() bool {
	return m >= ModeStandard && m <= ModeDisadvantage
}

// ParseDisplayMode converts a mode name into a DisplayMode.
// An empty name means standard.
func ParseDisplayMode(name string) (DisplayMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard", "roll":
		return ModeStandard, true
	case "advantage", "adv":
		return ModeAdvantage, true
	case "disadvantage", "dis":
		return ModeDisadvantage, true
	default:
		return ModeStandard, false
	}
}
