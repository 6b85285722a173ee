package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice/internal/config"
	"github.com/KirkDiggler/rpg-dice/internal/entities"
	"github.com/KirkDiggler/rpg-dice/internal/errors"
	"github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice/internal/roller"
)

var (
	rollMode  string
	rollUser  string
	rollSeed  uint64
	rollFixed []int
)

var rollCmd = &cobra.Command{
	Use:   "roll [notation]",
	Short: "Roll dice locally without a server",
	Long: `Roll dice notation in-process and print the formatted result. Examples:

  rpg-dice roll 2d6+3
  rpg-dice roll 2d20+5 --mode advantage --user kirk
  rpg-dice roll 4d6 --seed 42
  rpg-dice roll 2d20 --mode dis --fixed 17,3`,
	Args: cobra.ExactArgs(1),
	RunE: runRoll,
}

func init() {
	rollCmd.Flags().StringVar(&rollMode, "mode", entities.ModeStandard.String(), "Display mode: standard, advantage or disadvantage")
	rollCmd.Flags().StringVar(&rollUser, "user", "", "Name shown as the roller")
	rollCmd.Flags().Uint64Var(&rollSeed, "seed", 0, "Seed for reproducible rolls, 0 uses the crypto source")
	rollCmd.Flags().IntSliceVar(&rollFixed, "fixed", nil, "Replay these die values in order instead of rolling")
}

func runRoll(cmd *cobra.Command, args []string) error {
	mode, ok := entities.ParseDisplayMode(rollMode)
	if !ok {
		return fmt.Errorf("unknown mode %q: use standard, advantage or disadvantage", rollMode)
	}

	source := newSource(&config.Config{Seed: rollSeed})
	if len(rollFixed) > 0 {
		source = roller.NewSequence(rollFixed...)
	}

	service, err := dice.NewOrchestrator(&dice.Config{Source: source})
	if err != nil {
		return fmt.Errorf("failed to create dice service: %w", err)
	}

	output, err := service.Roll(cmd.Context(), &dice.RollInput{
		Username: rollUser,
		Notation: args[0],
		Mode:     mode,
	})
	if err != nil {
		return fmt.Errorf("%s", errors.GetMessage(err))
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), output.Text)
	return err
}
