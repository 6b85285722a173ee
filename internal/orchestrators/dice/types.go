package dice

import (
	"github.com/KirkDiggler/rpg-dice/internal/entities"
)

// RollDiceInput defines the request for a standard roll
type RollDiceInput struct {
	Username string
	Notation string
}

// RollDiceOutput defines the response for a standard roll
type RollDiceOutput struct {
	Spec   entities.RollSpec
	Result *entities.RollResult
	Text   string
}

// RollAdvantageInput defines the request for rolling 2d20 and keeping the higher die
type RollAdvantageInput struct {
	Username string
	Notation string // must describe 2d20, e.g. "2d20+5"
}

// RollAdvantageOutput defines the response for an advantage roll
type RollAdvantageOutput struct {
	Spec    entities.RollSpec
	Result  *entities.RollResult
	Kept    int
	Dropped int
	Text    string
}

// RollDisadvantageInput defines the request for rolling 2d20 and keeping the lower die
type RollDisadvantageInput struct {
	Username string
	Notation string // must describe 2d20, e.g. "2d20-1"
}

// RollDisadvantageOutput defines the response for a disadvantage roll
type RollDisadvantageOutput struct {
	Spec    entities.RollSpec
	Result  *entities.RollResult
	Kept    int
	Dropped int
	Text    string
}

// RollInput defines a roll whose mode is chosen by the caller
type RollInput struct {
	Username string
	Notation string
	Mode     entities.DisplayMode
}

// RollOutput defines the response for a roll in any mode.
// Kept holds every die for standard rolls; Dropped is only set for
// advantage and disadvantage.
type RollOutput struct {
	Mode    entities.DisplayMode
	Spec    entities.RollSpec
	Result  *entities.RollResult
	Kept    []int
	Dropped []int
	Text    string
}
