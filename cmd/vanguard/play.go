package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-vanguard/internal/config"
	"github.com/vovakirdan/tui-vanguard/internal/core"
	"github.com/vovakirdan/tui-vanguard/internal/games/vanguard"
	"github.com/vovakirdan/tui-vanguard/internal/levels"
	"github.com/vovakirdan/tui-vanguard/internal/platform/tui"
	"github.com/vovakirdan/tui-vanguard/internal/registry"
	"github.com/vovakirdan/tui-vanguard/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevels     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start a campaign run.

Controls:
  A/D, Arrows  - Move
  W/S          - Aim up/down
  Space        - Jump (double-tap in air for double jump)
  F            - Fire
  E            - Dash
  G            - Deploy turret
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer reinforcements, slower enemies
  normal - The intended experience
  hard   - Relentless reinforcements, triple-shot bosses

Examples:
  vanguard play
  vanguard play --difficulty hard
  vanguard play --levels ./my-campaign/
  vanguard play --config ./my-tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Directory with custom campaign YAML stages")
}

func runPlay(cmd *cobra.Command, args []string) {
	game, err := registry.Create("vanguard")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	vg, ok := game.(*vanguard.Game)
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: unexpected game type in registry")
		os.Exit(1)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	vg.SetConfig(cfg)

	tier := config.TierName(flagDifficulty)
	switch tier {
	case config.TierEasy, config.TierNormal, config.TierHard:
		vg.SetDifficulty(tier)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (want easy, normal, or hard)\n", flagDifficulty)
		os.Exit(1)
	}

	if flagLevels != "" {
		campaign, loadErr := levels.LoadDir(flagLevels)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", loadErr)
			os.Exit(1)
		}
		vg.SetCampaign(campaign)
	}

	// Terminal size for the viewport
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtime)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
