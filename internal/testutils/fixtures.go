// Package testutils provides roll fixtures shared by handler and orchestrator tests
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/formatter"
	"github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice/internal/roller"
)

// TestUsername is the default roller name for test fixtures
const TestUsername = "kirk"

// CreateScriptedDiceService creates a real dice orchestrator whose dice come
// from values in order, wrapping around when they run out
func CreateScriptedDiceService(t *testing.T, values ...int) dice.Service {
	t.Helper()

	service, err := dice.NewOrchestrator(&dice.Config{
		Source: roller.NewSequence(values...),
	})
	require.NoError(t, err, "failed to create scripted dice service")

	return service
}

// CreateTestRollOutput builds the output the orchestrator would return for
// the given spec, mode and dice, for use as a mock return value
func CreateTestRollOutput(
	t *testing.T,
	mode entities.DisplayMode,
	spec entities.RollSpec,
	rolls ...int,
) *dice.RollOutput {
	t.Helper()

	total := spec.Modifier
	for _, r := range rolls {
		total += r
	}
	result := &entities.RollResult{
		Rolls:    rolls,
		Modifier: spec.Modifier,
		Total:    total,
	}

	text, err := formatter.Format(result, mode, TestUsername, spec)
	require.NoError(t, err, "failed to format test roll")

	out := &dice.RollOutput{
		Mode:   mode,
		Spec:   spec,
		Result: result,
		Kept:   rolls,
		Text:   text,
	}

	if mode != entities.ModeStandard {
		kept, dropped, err := formatter.Pick(result, mode)
		require.NoError(t, err, "failed to pick test roll")
		out.Kept = []int{kept}
		out.Dropped = []int{dropped}
	}

	return out
}
