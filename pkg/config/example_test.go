package config_test

import (
	"fmt"

	"github.com/wonny/fundwise/pkg/config"
)

// Example demonstrates loading config with a CLI-style override:
// pointing S0 at a CSV export removes the need for DATABASE_URL
func Example() {
	cfg, err := config.Load(func(c *config.Config) {
		c.Engine.FeatureSource = config.SourceCSV
		c.Engine.FeatureCSVPath = "./funds.csv"
	})
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Feature source: %s (%s)\n", cfg.Engine.FeatureSource, cfg.Engine.FeatureCSVPath)
	fmt.Printf("Needs database: %v\n", cfg.NeedsDatabase())
	fmt.Printf("Market source: %s (%s)\n", cfg.Market.Source, cfg.Market.StaticPhase)
}
