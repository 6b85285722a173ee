package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
)

var jsonOutput bool

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation] [username] [mode]",
	Short: "Roll dice notation on the server",
	Long: `Roll dice through the gRPC DiceService. Mode is standard, advantage or disadvantage. Examples:

  roll-dice 2d6+3 kirk
  roll-dice 2d20+5 kirk advantage
  roll-dice 2d20-1 kirk dis`,
	Args: cobra.RangeArgs(2, 3),
	RunE: rollDice,
}

func init() {
	rollDiceCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw response as JSON")
}

func rollDice(_ *cobra.Command, args []string) error {
	notation := args[0]
	username := args[1]
	mode := ""
	if len(args) == 3 {
		mode = args[2]
	}

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.RollDice(ctx, &apiv1alpha1.RollDiceRequest{
		EntityId: username,
		Context:  mode,
		Notation: notation,
	})
	if err != nil {
		return rollError(err)
	}

	if jsonOutput {
		marshaler := protojson.MarshalOptions{
			Indent:          "  ",
			EmitUnpopulated: false,
		}
		jsonBytes, err := marshaler.Marshal(resp)
		if err != nil {
			return fmt.Errorf("failed to marshal response to JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	for _, roll := range resp.Rolls {
		fmt.Print(roll.Description)
		fmt.Printf("  Roll ID: %s\n", roll.RollId)
		fmt.Printf("  Kept: %v\n", roll.Dice)
		if len(roll.Dropped) > 0 {
			fmt.Printf("  Dropped: %v\n", roll.Dropped)
		}
	}

	return nil
}

// rollError turns a RollDice failure into the message the server meant for
// the user, or a connection hint when the server never answered
func rollError(err error) error {
	rollErr := errors.FromGRPCError(err)

	switch {
	case errors.IsUnavailable(rollErr):
		return fmt.Errorf("dice server unavailable at %s: %s", serverAddr, errors.GetMessage(rollErr))
	case errors.IsDeadlineExceeded(rollErr):
		return fmt.Errorf("dice server did not answer within %s", timeout)
	default:
		return fmt.Errorf("%s", errors.GetMessage(rollErr))
	}
}
