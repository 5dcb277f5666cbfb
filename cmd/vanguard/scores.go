package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-vanguard/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 high scores and the most recent campaign runs.

Examples:
  vanguard scores
  vanguard scores --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores("vanguard", 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Vanguard")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'vanguard play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns("vanguard", 5)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-8s  %-6s  %-8s  %s\n",
		"Date", "Tier", "Score", "Stage", "Rescues", "Result")
	for _, r := range runs {
		result := "lost"
		if r.Victory {
			result = "victory"
		}
		fmt.Printf("  %-16s  %-8s  %-8d  %-6d  %-8d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Difficulty, r.Score,
			r.LevelReached, r.Rescues, result)
	}
}
