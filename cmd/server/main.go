// Package main is the entry point for the rpg-dice server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-dice/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-dice",
	Short: "RPG dice roller",
	Long: `rpg-dice parses tabletop dice notation like 2d6+3, rolls it and renders the result.
It serves the roller over gRPC and as Slack slash commands, or rolls locally.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
