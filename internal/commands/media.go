package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/db"
	"github.com/balkashynov/neuralfocus/internal/parser"
	"github.com/balkashynov/neuralfocus/internal/prefs"
)

var mediaCmd = &cobra.Command{
	Use:   "media [url]",
	Short: "Show or change the background video",
	Long: `Without arguments, print the saved background video and its embed URL.
With a URL, save it; only YouTube links resolve to a playable embed.

Examples:
  neuralfocus media
  neuralfocus media https://youtu.be/jfKfPfyJRdk`,
	Args: cobra.MaximumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		m, err := prefs.NewManager(db.PreferenceStore{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(args) == 1 {
			if err := m.SetVideoURL(strings.TrimSpace(args[0])); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}

		url := m.Current().VideoURL
		fmt.Printf("🎬 Video: %s\n", url)
		if embed := parser.EmbedURL(url); embed != "" {
			fmt.Printf("   Embed: %s\n", embed)
		} else {
			fmt.Println("   No playable media for this URL. Use a YouTube link.")
		}
	}),
}
