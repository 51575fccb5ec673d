package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitquest-app/fitquest/internal/domain"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show points, level, and streak",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	var resp struct {
		State      domain.AchievementState `json:"state"`
		LevelTitle string                  `json:"level_title"`
	}
	if err := getJSON("/api/state", &resp); err != nil {
		return err
	}

	st := resp.State
	fmt.Printf("Level %d — %s (%.0f%% to next)\n", st.Level, resp.LevelTitle, st.LevelProgress)
	fmt.Printf("Points:         %d\n", st.TotalPoints)
	fmt.Printf("Current streak: %d days\n", st.CurrentStreak)
	fmt.Printf("Longest streak: %d days\n", st.LongestStreak)
	fmt.Printf("Achievements:   %d unlocked\n", len(st.Unlocked))
	return nil
}
