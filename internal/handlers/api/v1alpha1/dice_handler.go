// Package v1alpha1 handles the generic API grpc service interface
package v1alpha1

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
	"github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice/internal/pkg/idgen"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService dice.Service
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceService == nil {
		vb.RequiredField("DiceService")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// DiceHandler implements the generic dice gRPC service.
// Roll sessions are not kept, so GetRollSession and ClearRollSession stay unimplemented.
type DiceHandler struct {
	apiv1alpha1.UnimplementedDiceServiceServer
	diceService dice.Service
	idGen       idgen.Generator
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
		idGen:       cfg.IDGenerator,
	}, nil
}

// RollDice rolls dice notation for the user named by entity_id.
// The request context selects the display mode: "standard" (or empty),
// "advantage" or "disadvantage".
func (h *DiceHandler) RollDice(
	ctx context.Context,
	req *apiv1alpha1.RollDiceRequest,
) (*apiv1alpha1.RollDiceResponse, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("notation", req.Notation, vb)

	mode, ok := entities.ParseDisplayMode(req.Context)
	if !ok {
		vb.InvalidField("context", fmt.Sprintf(
			"must be one of standard, advantage, disadvantage; got %q", req.Context))
	}

	if err := vb.Build(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.diceService.Roll(ctx, &dice.RollInput{
		Username: req.EntityId,
		Notation: req.Notation,
		Mode:     mode,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	diceTotal := 0
	for _, d := range output.Kept {
		diceTotal += d
	}
	modifier := output.Result.Modifier

	return &apiv1alpha1.RollDiceResponse{
		Rolls: []*apiv1alpha1.DiceRoll{
			{
				RollId:      h.idGen.Generate(),
				Notation:    output.Spec.Notation(),
				Dice:        toInt32s(output.Kept),
				Total:       int32(diceTotal + modifier), // nolint:gosec // bounded by 99d100+999
				Dropped:     toInt32s(output.Dropped),
				Description: output.Text,
				DiceTotal:   int32(diceTotal), // nolint:gosec // bounded by 99d100
				Modifier:    int32(modifier),  // nolint:gosec // bounded by 999
			},
		},
	}, nil
}

func toInt32s(values []int) []int32 {
	if len(values) == 0 {
		return nil
	}

	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v) // nolint:gosec // die faces are at most 100
	}
	return out
}
