package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitquest-app/fitquest/internal/domain"
)

func init() {
	logCmd.AddCommand(logFoodCmd, logExerciseCmd, logWaterCmd)
	rootCmd.AddCommand(logCmd, checkinCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log food, exercise, or water",
}

var logFoodCmd = &cobra.Command{
	Use:   "food <name> <calories>",
	Short: "Log a food entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		calories, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("calories must be a number: %q", args[1])
		}
		return postActivity("/api/log/food", map[string]any{
			"name": args[0], "calories": calories,
		})
	},
}

var logExerciseCmd = &cobra.Command{
	Use:   "exercise <name> <calories-burned>",
	Short: "Log a workout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		burned, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("calories burned must be a number: %q", args[1])
		}
		return postActivity("/api/log/exercise", map[string]any{
			"name": args[0], "calories_burned": burned,
		})
	},
}

var logWaterCmd = &cobra.Command{
	Use:   "water <ml>",
	Short: "Log water intake in milliliters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ml, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("ml must be a number: %q", args[0])
		}
		return postActivity("/api/log/water", map[string]any{"ml": ml})
	},
}

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record a daily check-in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return postActivity("/api/checkin", nil)
	},
}

// postActivity sends an activity mutation and prints any new unlocks.
func postActivity(path string, body any) error {
	var resp struct {
		Date     string                       `json:"date"`
		Unlocked []domain.UnlockedAchievement `json:"unlocked"`
	}
	if err := postJSON(path, body, &resp); err != nil {
		return err
	}

	fmt.Printf("Logged for %s\n", resp.Date)
	for _, ua := range resp.Unlocked {
		fmt.Printf("🏆 Achievement unlocked: %s (+%d pts)", ua.ID, ua.Points)
		if ua.Description != "" {
			fmt.Printf("  [%s]", ua.Description)
		}
		fmt.Println()
	}
	return nil
}
