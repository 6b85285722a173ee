// Package roller draws dice for a RollSpec from a pluggable random source
package roller

import (
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-dice/internal/errors"
)

//go:generate mockgen -destination=mock/mock_source.go -package=rollermock github.com/KirkDiggler/rpg-dice/internal/roller Source

// Source produces a single die result in [1, sides].
// Implementations must be safe for concurrent use.
type Source interface {
	Roll(sides int) (int, error)
}

// Toolkit rolls with the rpg-toolkit crypto roller
type Toolkit struct{}

// NewToolkit returns the production source
func NewToolkit() *Toolkit {
	return &Toolkit{}
}

// Roll draws one die through rpg-toolkit
func (t *Toolkit) Roll(sides int) (int, error) {
	roll, err := dice.NewRoll(1, sides)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to create d%d roll", sides)
	}
	return roll.GetValue(), nil
}

// Seeded is a reproducible PCG source, used for --seed runs
type Seeded struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded creates a source that yields the same dice for the same seed
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Roll draws one die from the seeded generator
func (s *Seeded) Roll(sides int) (int, error) {
	if sides <= 0 {
		return 0, errors.InvalidArgumentf("die must have at least one side, got %d", sides)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(sides) + 1, nil
}

// Sequence replays fixed values in order, wrapping around at the end.
// Values are returned as-is so callers can exercise range checks.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequence creates a source that returns values in order
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

// Roll returns the next value of the sequence
func (s *Sequence) Roll(_ int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0, errors.FailedPrecondition("sequence source has no values")
	}

	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v, nil
}

// Ensure sources implement Source
var (
	_ Source = (*Toolkit)(nil)
	_ Source = (*Seeded)(nil)
	_ Source = (*Sequence)(nil)
)
