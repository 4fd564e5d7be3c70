package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/brainwave"
)

var modesCmd = &cobra.Command{
	Use:   "modes [mode]",
	Short: "Describe the brainwave modes",
	Long: `List the brainwave modes, or describe one in detail with its tips.
Select the mode shown during sessions with 'neuralfocus prefs set brainwaveMode <mode>'.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, m := range brainwave.All() {
				fmt.Printf("%-6s %-14s %s\n", m.ID, m.Range, m.Summary)
			}
			return
		}

		if !brainwave.Valid(args[0]) {
			fmt.Printf("Error: unknown mode '%s'\n", args[0])
			return
		}
		m := brainwave.Lookup(args[0])
		fmt.Println(m.Title())
		fmt.Println(strings.Repeat("-", len(m.Title())))
		fmt.Println(m.Description)
		fmt.Println()
		for _, tip := range m.Tips {
			fmt.Printf("  • %s\n", tip)
		}
	},
}
