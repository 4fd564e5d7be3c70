package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/config"
	"github.com/balkashynov/neuralfocus/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg is loaded once before any command runs
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "neuralfocus",
	Short: "A focus timer with a scripted volume ramp",
	Long: `neuralfocus runs focus sessions whose background volume follows a
phase schedule, with breaks, a focus checklist and session history, all
from the terminal.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		return nil
	},
	SilenceUsage: true,
}

// withDB wraps a command function to initialize the database first
func withDB(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := db.Initialize(cfg.DBPath()); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer db.Close()
		fn(cmd, args)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("neuralfocus %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command; ctx ends headless sessions
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(rampCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(forgotPasswordCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
