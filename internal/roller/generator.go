package roller

import (
	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
)

// Reasons reported by Generate
const (
	ReasonInvalidSpec   errors.Reason = "invalid_spec"
	ReasonSourceFailure errors.Reason = "source_failure"
)

// Config holds the dependencies for the generator
type Config struct {
	Source Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

// Generator turns a RollSpec into a RollResult
type Generator struct {
	source Source
}

// NewGenerator creates a generator drawing from the configured source
func NewGenerator(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Generator{source: cfg.Source}, nil
}

// Generate draws spec.Count dice in order and totals them with the modifier
func (g *Generator) Generate(spec entities.RollSpec) (*entities.RollResult, error) {
	if spec.Count <= 0 || spec.Sides <= 0 {
		return nil, errors.InvalidArgumentf("cannot roll %dd%d", spec.Count, spec.Sides).
			WithReason(ReasonInvalidSpec)
	}

	rolls := make([]int, 0, spec.Count)
	sum := 0
	for i := 0; i < spec.Count; i++ {
		value, err := g.source.Roll(spec.Sides)
		if err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInternal, "failed to roll die %d of %d", i+1, spec.Count).
				WithReason(ReasonSourceFailure)
		}
		if value < 1 || value > spec.Sides {
			return nil, errors.Internalf("source rolled %d on a d%d", value, spec.Sides).
				WithReason(ReasonSourceFailure)
		}

		rolls = append(rolls, value)
		sum += value
	}

	return &entities.RollResult{
		Rolls:    rolls,
		Modifier: spec.Modifier,
		Total:    sum + spec.Modifier,
	}, nil
}
