// vanguard is a terminal side-scrolling combat game, playable locally or
// over SSH.
//
// Usage:
//
//	vanguard play             - Play the campaign
//	vanguard levels           - List campaign stages
//	vanguard scores           - Show high scores and recent runs
//	vanguard serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.vanguard/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-vanguard/internal/games/vanguard"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vanguard",
	Short: "Vanguard - side-scrolling squad combat in your terminal",
	Long: `Vanguard is a terminal game: guide one squad member at a time through
a scrolling campaign, rescue caged teammates, and survive enemy
reinforcements.

Available commands:
  play     - Play the campaign
  levels   - List campaign stages
  scores   - View high scores and recent runs
  serve    - Start SSH server for remote play

Examples:
  vanguard play
  vanguard play --difficulty hard
  vanguard scores
  vanguard serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.vanguard/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
