package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completed focus sessions",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		ranges := []struct {
			label string
			start time.Time
		}{
			{"Today", startOfDay},
			{"Last 7 days", startOfDay.AddDate(0, 0, -6)},
		}

		for _, r := range ranges {
			stats, err := db.GetFocusStats(r.start, now)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("📊 %-12s %3d sessions · %s focused\n", r.label, stats.Sessions, formatDuration(stats.Focused))
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		if !verbose {
			return
		}
		sessions, err := db.GetSessionsInRange(startOfDay.AddDate(0, 0, -6), now)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println()
		for _, s := range sessions {
			task := s.Task
			if task == "" {
				task = "-"
			}
			fmt.Printf("%s  %-4s %-7s %s\n", s.CompletedAt.Format("Mon 02 Jan 15:04"), formatDuration(s.Duration()), s.Policy, task)
		}
	}),
}

func init() {
	statsCmd.Flags().BoolP("verbose", "v", false, "List every session of the last 7 days")
}
