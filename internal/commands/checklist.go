package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/db"
	"github.com/balkashynov/neuralfocus/internal/models"
)

var checklistCmd = &cobra.Command{
	Use:     "checklist",
	Aliases: []string{"cl"},
	Short:   "Manage the pre-session focus checklist",
	Run:     withDB(runChecklistList),
}

var checklistListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List checklist items",
	Run:     withDB(runChecklistList),
}

var checklistAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a checklist item",
	Args:  cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		if err := db.SeedChecklist(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		item, err := db.AddChecklistItem(strings.Join(args, " "))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("➕ Added item #%d: %s\n", item.ID, item.Text)
	}),
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Check or uncheck an item",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, ok := parseItemID(args[0])
		if !ok {
			return
		}
		item, err := db.ToggleChecklistItem(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if item.Completed {
			fmt.Printf("✅ Checked #%d: %s\n", item.ID, item.Text)
		} else {
			fmt.Printf("↩️  Unchecked #%d: %s\n", item.ID, item.Text)
		}
	}),
}

var checklistRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove an item",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		id, ok := parseItemID(args[0])
		if !ok {
			return
		}
		item, err := db.RemoveChecklistItem(id)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("🗑️  Removed #%d: %s\n", item.ID, item.Text)
	}),
}

func runChecklistList(cmd *cobra.Command, args []string) {
	if err := db.SeedChecklist(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	items, err := db.GetChecklist()
	if err != nil {
		fmt.Printf("Error fetching checklist: %v\n", err)
		return
	}

	if len(items) == 0 {
		fmt.Println("Checklist is empty. Use 'neuralfocus checklist add \"item\"' to add one.")
		return
	}

	fmt.Println(renderChecklist(items))
}

func renderChecklist(items []models.ChecklistItem) string {
	var b strings.Builder
	done := 0
	for _, item := range items {
		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
			done++
		}
		fmt.Fprintf(&b, "%-4d %s %s\n", item.ID, mark, item.Text)
	}
	fmt.Fprintf(&b, "%s\n%d/%d completed", strings.Repeat("-", 40), done, len(items))
	return b.String()
}

func parseItemID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		fmt.Printf("Error: invalid item ID '%s'\n", raw)
		return 0, false
	}
	return uint(id), true
}

func init() {
	checklistCmd.AddCommand(checklistListCmd)
	checklistCmd.AddCommand(checklistAddCmd)
	checklistCmd.AddCommand(checklistToggleCmd)
	checklistCmd.AddCommand(checklistRemoveCmd)
}
