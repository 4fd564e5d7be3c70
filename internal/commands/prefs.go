package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/db"
	"github.com/balkashynov/neuralfocus/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change saved preferences",
	Run:   withDB(runPrefsList),
}

var prefsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List all preferences",
	Run:     withDB(runPrefsList),
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one preference",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		p, err := prefs.Load(db.PreferenceStore{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		v, err := p.Get(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println(v)
	}),
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		m, err := prefs.NewManager(db.PreferenceStore{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if err := m.Set(args[0], args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		v, _ := m.Current().Get(args[0])
		fmt.Printf("✅ %s = %s\n", args[0], v)
	}),
}

func runPrefsList(cmd *cobra.Command, args []string) {
	p, err := prefs.Load(db.PreferenceStore{})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, key := range prefs.Keys {
		v, _ := p.Get(key)
		fmt.Printf("%-15s %s\n", key, v)
	}
}

func init() {
	prefsCmd.AddCommand(prefsListCmd)
	prefsCmd.AddCommand(prefsGetCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}
