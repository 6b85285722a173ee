// Package formatter renders roll results as Slack-flavored text
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
)

// Reasons reported by Format
const (
	ReasonInvalidAdvDisSpec errors.Reason = "invalid_adv_dis_spec"
	ReasonUnknownMode       errors.Reason = "unknown_mode"
)

// Markers wrapped around individual dice in advantage and disadvantage output
const (
	advantageMarker    = "*"
	disadvantageMarker = "_"
	droppedMarker      = "~"
)

// Format renders a roll result for display
func Format(result *entities.RollResult, mode entities.DisplayMode, username string, spec entities.RollSpec) (string, error) {
	if result == nil {
		return "", errors.Internal("roll result is required")
	}

	switch mode {
	case entities.ModeStandard:
		return formatStandard(result, username, spec), nil
	case entities.ModeAdvantage, entities.ModeDisadvantage:
		return formatAdvantage(result, mode, username, spec)
	default:
		return "", errors.InvalidArgumentf("unknown display mode %s", mode).WithReason(ReasonUnknownMode)
	}
}

// Pick selects the kept and dropped die of an advantage or disadvantage roll.
// The first die wins ties.
func Pick(result *entities.RollResult, mode entities.DisplayMode) (kept, dropped int, err error) {
	if result == nil || len(result.Rolls) != entities.AdvantageCount {
		return 0, 0, errors.FailedPrecondition("advantage and disadvantage need exactly two dice").
			WithReason(ReasonInvalidAdvDisSpec)
	}

	first, second := result.Rolls[0], result.Rolls[1]
	switch mode {
	case entities.ModeAdvantage:
		if first >= second {
			return first, second, nil
		}
		return second, first, nil
	case entities.ModeDisadvantage:
		if first <= second {
			return first, second, nil
		}
		return second, first, nil
	default:
		return 0, 0, errors.InvalidArgumentf("%s rolls do not keep or drop dice", mode).WithReason(ReasonUnknownMode)
	}
}

func formatStandard(result *entities.RollResult, username string, spec entities.RollSpec) string {
	dice := make([]string, len(result.Rolls))
	for i, r := range result.Rolls {
		dice[i] = strconv.Itoa(r)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s rolled %dd%d:\n", username, spec.Count, spec.Sides)
	b.WriteString(strings.Join(dice, " + "))
	b.WriteString(modifierSuffix(result.Modifier))
	fmt.Fprintf(&b, " = *%d*\n", result.Total)
	return b.String()
}

func formatAdvantage(result *entities.RollResult, mode entities.DisplayMode, username string, spec entities.RollSpec) (string, error) {
	if !spec.IsAdvantageShape() {
		return "", errors.FailedPreconditionf("%s needs %dd%d, got %dd%d",
			mode, entities.AdvantageCount, entities.AdvantageSides, spec.Count, spec.Sides).
			WithReason(ReasonInvalidAdvDisSpec)
	}

	kept, _, err := Pick(result, mode)
	if err != nil {
		return "", err
	}

	// Rolls are shown in draw order; the first die wins ties so index 0 is
	// the winner whenever it equals the kept value.
	winner := 1
	if result.Rolls[0] == kept {
		winner = 0
	}

	marker := advantageMarker
	if mode == entities.ModeDisadvantage {
		marker = disadvantageMarker
	}

	dice := make([]string, len(result.Rolls))
	for i, r := range result.Rolls {
		if i == winner {
			dice[i] = marker + strconv.Itoa(r) + marker
		} else {
			dice[i] = droppedMarker + strconv.Itoa(r) + droppedMarker
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s rolled %dd%d with %s:\n", username, spec.Count, spec.Sides, mode)
	b.WriteString(strings.Join(dice, ", "))
	b.WriteString(modifierSuffix(result.Modifier))
	fmt.Fprintf(&b, " = *%d*\n", kept+result.Modifier)
	return b.String(), nil
}

// modifierSuffix renders " (+N)" or " (-N)", or nothing for zero
func modifierSuffix(modifier int) string {
	switch {
	case modifier > 0:
		return fmt.Sprintf(" (+%d)", modifier)
	case modifier < 0:
		return fmt.Sprintf(" (%d)", modifier)
	default:
		return ""
	}
}
