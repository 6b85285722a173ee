package main

import (
	"github.com/KirkDiggler/rpg-dice/internal/config"
	"github.com/KirkDiggler/rpg-dice/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-dice/internal/roller"
)

// newSource picks the seeded source when a seed is configured
func newSource(cfg *config.Config) roller.Source {
	if cfg.Seed != 0 {
		return roller.NewSeeded(cfg.Seed)
	}
	return roller.NewToolkit()
}

func newDiceService(cfg *config.Config) (dice.Service, error) {
	return dice.NewOrchestrator(&dice.Config{
		Source: newSource(cfg),
		Debug:  cfg.Debug,
	})
}
