package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitquest-app/fitquest/internal/domain"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"badges"},
	Short:   "List all achievements and their unlock status",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	var all []domain.AchievementStatus
	if err := getJSON("/api/achievements", &all); err != nil {
		return err
	}

	unlocked := 0
	for _, a := range all {
		mark := "  "
		if a.UnlockedAt != nil {
			mark = "✔ "
			unlocked++
		}
		fmt.Printf("%s%s %-18s %-10s %-12s %4d pts  %s\n",
			mark, a.Icon, a.Name, a.Tier, a.Category, a.BasePoints, a.Description)
	}
	fmt.Printf("\n%d / %d unlocked\n", unlocked, len(all))

	var next struct {
		Next *domain.AchievementStatus `json:"next"`
	}
	if err := getJSON("/api/next", &next); err == nil && next.Next != nil {
		fmt.Printf("Closest: %s (%.0f / %.0f)\n", next.Next.Name, next.Next.Progress, next.Next.Target)
	}
	return nil
}
