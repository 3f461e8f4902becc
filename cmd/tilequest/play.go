package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/level"
	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/sim"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	flagLogFile string
	flagLevel   int
	flagVerbose bool
	flagPick    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play locally",
	Long: `Start playing in the terminal.

Controls:
  Arrows/hjkl/wasd - Move (pushes crates ahead of you)
  N / P            - Next / previous level
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Logs go to a rotating file so they never disturb the screen.

Examples:
  tilequest play
  tilequest play --seed 1234 --level 2
  tilequest play --levels ./my-levels --verbose
  tilequest play --pick`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "~/.tilequest/logs/play.log", "Path to the log file")
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Initial level (default: from config)")
	playCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log gate transitions and asset states")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the initial level from a menu")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagLevel >= 0 {
		cfg.Levels.Initial = flagLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// Exit only after play has closed the log file and the database.
	if err := play(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(cfg config.Config) error {
	logger, closer := newFileLogger(expandHome(flagLogFile))
	defer closer.Close()
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.World.TickRate,
		Seed:     cfg.World.Seed,
	}

	loader := level.NewDirLoader(cfg.Levels.Dir)
	if flagPick {
		levels, err := loader.LoadAll()
		if err != nil {
			return fmt.Errorf("listing levels: %w", err)
		}
		res, err := tui.RunMenu(tui.MenuItems(levels, cfg.Terrain.MaxLevels), cfg.Levels.Initial, rt)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
		cfg.Levels.Initial = res.Level
		rt = res.Config
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := []sim.Option{sim.WithLogger(logger)}
	if store != nil {
		opts = append(opts, sim.WithRecorder(store))
	}
	assets := level.NewAssets(loader, logger)
	w := sim.New(cfg, assets, opts...)

	logger.Info("session started", "level", cfg.Levels.Initial, "levels", cfg.Levels.Dir)
	if err := tui.Run(w, store, logger, rt); err != nil {
		logger.Error("session failed", "seed", w.Snapshot().Seed, "error", err)
		return err
	}
	logger.Info("session ended", "seed", w.Snapshot().Seed, "stats", fmt.Sprintf("%+v", w.Stats()))
	return nil
}

// newFileLogger returns a logger writing to a size-rotated file.
func newFileLogger(path string) (*log.Logger, *lumberjack.Logger) {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	logger := log.NewWithOptions(lj, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilequest",
	})
	return logger, lj
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
