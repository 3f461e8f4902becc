package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generations and sessions",
	Long: `Display the most recent level generations and play sessions.

Examples:
  tilequest history
  tilequest history --limit 5
  tilequest history --tui
  tilequest history --db ./server.db`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of entries per table")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse history interactively")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}

	if flagHistoryTUI {
		width, height, sizeErr := term.GetSize(int(os.Stdout.Fd()))
		if sizeErr != nil {
			width, height = 80, 24
		}
		err = tui.RunHistory(store, width, height)
	} else {
		err = printHistory(store)
	}
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printHistory writes recent generations and sessions to stdout.
func printHistory(store *storage.Store) error {
	gens, err := store.RecentGenerations(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving generations: %w", err)
	}
	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	fmt.Println("Recent Generations")
	fmt.Println()
	if len(gens) == 0 {
		fmt.Println("No generations recorded yet.")
	} else {
		fmt.Printf("  %-10s  %-5s  %-6s  %-6s  %s\n", "Seed", "Level", "Walls", "Crates", "Date")
		fmt.Printf("  %-10s  %-5s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "----")
		for _, g := range gens {
			fmt.Printf("  %-10d  %-5d  %-6d  %-6d  %s\n",
				g.Seed, g.Level, g.Walls, g.Movables, g.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	fmt.Println("Recent Sessions")
	fmt.Println()
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tilequest play' to start one!")
		return nil
	}

	fmt.Printf("  %-12s  %-10s  %-6s  %-6s  %-7s  %-6s  %s\n", "User", "Seed", "Moves", "Pushes", "Blocked", "Levels", "Date")
	fmt.Printf("  %-12s  %-10s  %-6s  %-6s  %-7s  %-6s  %s\n", "----", "----", "-----", "------", "-------", "------", "----")
	for _, s := range sessions {
		fmt.Printf("  %-12s  %-10d  %-6d  %-6d  %-7d  %-6d  %s\n",
			s.Username, s.Seed, s.Moves, s.Pushes, s.Blocked, s.Levels, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetPlayerStats("local"); err == nil && stats.Sessions > 0 {
		fmt.Println()
		fmt.Printf("Local totals: %d sessions, %d moves, %d pushes\n", stats.Sessions, stats.TotalMoves, stats.TotalPushes)
	}
	return nil
}
