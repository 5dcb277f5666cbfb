package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-vanguard/internal/levels"
)

var flagLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign stages",
	Long: `Shows the stages of the built-in campaign, or of a custom campaign
directory when --levels is given.`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory with custom campaign YAML stages")
}

func runLevels(cmd *cobra.Command, args []string) {
	var campaign []levels.Level
	var err error
	if flagLevelsDir != "" {
		campaign, err = levels.LoadDir(flagLevelsDir)
	} else {
		campaign, err = levels.LoadCampaign()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Campaign stages:")
	fmt.Println()
	fmt.Printf("  %-5s  %-20s  %-9s  %s\n", "Stage", "Name", "Size", "Hostiles")
	fmt.Printf("  %-5s  %-20s  %-9s  %s\n", "-----", "----", "----", "--------")
	for i, lvl := range campaign {
		count := len(lvl.Roster)
		major := lvl.Boss != nil
		for _, s := range lvl.Roster {
			if s.Major {
				major = true
			}
		}
		if lvl.Boss != nil {
			count++
		}
		hostiles := fmt.Sprintf("%d", count)
		if major {
			hostiles += " (boss)"
		}
		fmt.Printf("  %-5d  %-20s  %-9s  %s\n",
			i+1, lvl.Name, fmt.Sprintf("%vx%v", lvl.Width, lvl.Height), hostiles)
	}
	fmt.Println()
	fmt.Println("Run 'vanguard play' to start the campaign.")
}
