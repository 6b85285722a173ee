// Package dice implements the dice orchestrator that parses, rolls and formats dice notation
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
	"github.com/KirkDiggler/rpg-dice/internal/formatter"
	"github.com/KirkDiggler/rpg-dice/internal/notation"
	"github.com/KirkDiggler/rpg-dice/internal/roller"
)

const (
	// DefaultUsername is shown when the caller does not name the roller
	DefaultUsername = "someone"

	// Example shown to users alongside every error
	exampleNotation = "2d6+3"
)

// Service defines the interface for dice operations
type Service interface {
	// One entry point per display mode
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	RollAdvantage(ctx context.Context, input *RollAdvantageInput) (*RollAdvantageOutput, error)
	RollDisadvantage(ctx context.Context, input *RollDisadvantageInput) (*RollDisadvantageOutput, error)

	// Roll dispatches on input.Mode for transports that pick the mode at runtime
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	Source roller.Source

	// Debug adds parsed specs and raw dice to the logs
	Debug bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

type orchestrator struct {
	generator *roller.Generator
	debug     bool
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	generator, err := roller.NewGenerator(&roller.Config{Source: cfg.Source})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create generator")
	}

	return &orchestrator{
		generator: generator,
		debug:     cfg.Debug,
	}, nil
}

// RollDice parses the notation, rolls it and formats a standard result
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	out, err := o.Roll(ctx, &RollInput{
		Username: input.Username,
		Notation: input.Notation,
		Mode:     entities.ModeStandard,
	})
	if err != nil {
		return nil, err
	}

	return &RollDiceOutput{
		Spec:   out.Spec,
		Result: out.Result,
		Text:   out.Text,
	}, nil
}

// RollAdvantage rolls 2d20 and keeps the higher die
func (o *orchestrator) RollAdvantage(ctx context.Context, input *RollAdvantageInput) (*RollAdvantageOutput, error) {
	out, err := o.Roll(ctx, &RollInput{
		Username: input.Username,
		Notation: input.Notation,
		Mode:     entities.ModeAdvantage,
	})
	if err != nil {
		return nil, err
	}

	return &RollAdvantageOutput{
		Spec:    out.Spec,
		Result:  out.Result,
		Kept:    out.Kept[0],
		Dropped: out.Dropped[0],
		Text:    out.Text,
	}, nil
}

// RollDisadvantage rolls 2d20 and keeps the lower die
func (o *orchestrator) RollDisadvantage(ctx context.Context, input *RollDisadvantageInput) (*RollDisadvantageOutput, error) {
	out, err := o.Roll(ctx, &RollInput{
		Username: input.Username,
		Notation: input.Notation,
		Mode:     entities.ModeDisadvantage,
	})
	if err != nil {
		return nil, err
	}

	return &RollDisadvantageOutput{
		Spec:    out.Spec,
		Result:  out.Result,
		Kept:    out.Kept[0],
		Dropped: out.Dropped[0],
		Text:    out.Text,
	}, nil
}

// Roll runs the parse, generate and format pipeline for any display mode.
// Every failure comes back as one error whose message is safe to show the user.
func (o *orchestrator) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("roll input is required")
	}

	username := input.Username
	if username == "" {
		username = DefaultUsername
	}

	spec, err := notation.Parse(input.Notation)
	if err != nil {
		return nil, o.fail(ctx, input, err)
	}

	if !input.Mode.Valid() {
		err := errors.InvalidArgumentf("unknown display mode %s", input.Mode).
			WithReason(formatter.ReasonUnknownMode)
		return nil, o.fail(ctx, input, err)
	}

	if input.Mode != entities.ModeStandard && !spec.IsAdvantageShape() {
		err := errors.FailedPreconditionf("%s rolls must be %dd%d",
			input.Mode, entities.AdvantageCount, entities.AdvantageSides).
			WithReason(formatter.ReasonInvalidAdvDisSpec)
		return nil, o.fail(ctx, input, err)
	}

	if o.debug {
		slog.DebugContext(ctx, "Dice notation parsed",
			"notation", input.Notation,
			"count", spec.Count,
			"sides", spec.Sides,
			"modifier", spec.Modifier,
		)
	}

	result, err := o.generator.Generate(spec)
	if err != nil {
		return nil, o.fail(ctx, input, err)
	}

	if o.debug {
		slog.DebugContext(ctx, "Dice generated",
			"notation", input.Notation,
			"rolls", result.Rolls,
			"total", result.Total,
		)
	}

	text, err := formatter.Format(result, input.Mode, username, spec)
	if err != nil {
		return nil, o.fail(ctx, input, err)
	}

	out := &RollOutput{
		Mode:   input.Mode,
		Spec:   spec,
		Result: result,
		Kept:   result.Rolls,
		Text:   text,
	}

	if input.Mode != entities.ModeStandard {
		kept, dropped, err := formatter.Pick(result, input.Mode)
		if err != nil {
			return nil, o.fail(ctx, input, err)
		}
		out.Kept = []int{kept}
		out.Dropped = []int{dropped}
	}

	slog.InfoContext(ctx, "Dice rolled successfully",
		"username", username,
		"mode", input.Mode.String(),
		"notation", spec.Notation(),
		"total", result.Total,
	)

	return out, nil
}

// fail logs a rejected roll and rewrites the error message for the user,
// keeping the original code and reason
func (o *orchestrator) fail(ctx context.Context, input *RollInput, err error) error {
	reason := errors.GetReason(err)

	if errors.IsInternal(err) {
		slog.ErrorContext(ctx, "Dice roll failed",
			"notation", input.Notation,
			"mode", input.Mode.String(),
			"error", err,
		)
	} else {
		slog.InfoContext(ctx, "Dice roll rejected",
			"notation", input.Notation,
			"mode", input.Mode.String(),
			"reason", reason.String(),
		)
	}

	return errors.WrapWithCode(err, errors.GetCode(err), UserMessage(input.Notation, input.Mode, err))
}

// UserMessage renders a single human-readable explanation of a failed roll
func UserMessage(raw string, mode entities.DisplayMode, err error) string {
	if errors.IsInternal(err) {
		return "Sorry, the dice got stuck. Please try again."
	}

	example := exampleNotation
	if mode != entities.ModeStandard {
		example = fmt.Sprintf("%dd%d+3", entities.AdvantageCount, entities.AdvantageSides)
	}

	return fmt.Sprintf("Sorry, %q is not a roll I understand: %s. Try something like %s.",
		raw, errors.GetMessage(err), example)
}
