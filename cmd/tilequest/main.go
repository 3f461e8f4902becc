// tilequest is a tile-based exploration game with Sokoban-style pushing,
// playable in the terminal.
//
// Usage:
//
//	tilequest play               - Play locally
//	tilequest generate           - Print a level's generated world
//	tilequest serve              - Start SSH server for remote play
//	tilequest history            - Show recent generations and sessions
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: from config)
//	--seed <value>    - Set terrain seed for reproducible worlds
//	--db <path>       - Set database path (default: ~/.tilequest/history.db)
//	--config <path>   - Use a custom world config YAML
//	--levels <dir>    - Load level files from a directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/config"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      uint32
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilequest",
	Short: "tilequest - explore and push your way through generated worlds",
	Long: `tilequest is a terminal game on an integer grid: walk around a
procedurally generated world and push crates into place.

Available commands:
  play     - Play locally
  generate - Print a level's generated world
  serve    - Start SSH server for remote play
  history  - View recent generations and sessions

Examples:
  tilequest play
  tilequest play --seed 1234
  tilequest generate --level 0 --seed 1234
  tilequest serve --ssh :2222
  tilequest history`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Terrain seed (0 = from config, or random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilequest/history.db", "Path to history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom world config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of level files (default: built-in levels)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads the world config and applies global flag overrides.
// Errors are fatal.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagFPS > 0 {
		cfg.World.TickRate = flagFPS
	}
	if flagSeed != 0 {
		cfg.World.Seed = flagSeed
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
