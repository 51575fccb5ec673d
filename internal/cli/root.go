// Package cli implements the FitQuest command-line interface using Cobra.
// Logging subcommands talk to the running daemon over its HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fitquest",
	Short: "FitQuest — personal nutrition & fitness tracker",
	Long: `FitQuest tracks meals, workouts, and water, and turns your activity
log into badges, points, levels, and streaks.

Run "fitquest serve" to start the daemon, then log activity with
"fitquest log food|exercise|water" or "fitquest checkin".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
