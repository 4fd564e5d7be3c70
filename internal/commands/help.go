package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for neuralfocus",
	Long:  `Display detailed help for all neuralfocus commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
███╗   ██╗███████╗██╗   ██╗██████╗  █████╗ ██╗
████╗  ██║██╔════╝██║   ██║██╔══██╗██╔══██╗██║
██╔██╗ ██║█████╗  ██║   ██║██████╔╝███████║██║
██║╚██╗██║██╔══╝  ██║   ██║██╔══██╗██╔══██║██║
██║ ╚████║███████╗╚██████╔╝██║  ██║██║  ██║███████╗
╚═╝  ╚═══╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝  focus

neuralfocus - focus timer with a scripted volume ramp

COMMANDS:

  focus [task]            Start a focus session
    -d, --duration        25, 90, 180, 360 (or 25m, 90m, 3h, 6h)
    --policy              Ramp policy: linear|step
    -b, --break           Break length (X, Xm, Xs; 1-30 minutes)
    --no-ui               Headless mode, prints progress
    -n, --sessions        Stop after N sessions (headless)

    Keys:
      space         Start/pause
      r             Reset session
      1-4           Pick 25m / 90m / 3h / 6h
      s             Skip break
      [ ]           Shorter/longer break
      f             Restore focus volume
      a             Toggle auto volume
      m             Mute/unmute
      +/-           Volume up/down
      esc/q         Quit

    Example:
      neuralfocus focus "Write chapter 3" -d 90

  ramp [duration]         Show the volume ramp of a session length
    --policy              Ramp policy: linear|step

  checklist               Show the focus checklist
    add <text>            Add an item
    toggle <id>           Check/uncheck an item
    rm <id>               Remove an item

  prefs                   List saved preferences
    get <key>             Print one preference
    set <key> <value>     Change one preference

  media [url]             Show or set the background video
  modes [mode]            Describe the brainwave modes
  stats                   Completed sessions today and this week
    -v, --verbose         List every session

  login                   Sign in
  signup                  Create an account
  forgot-password         Request a password reset link

  version                 Print version information
  help                    Show this help

CONFIGURATION:

  <data dir>/config.toml and NEURALFOCUS_* environment variables, e.g.
  NEURALFOCUS_DURATION=90 NEURALFOCUS_RAMP_POLICY=step
  NEURALFOCUS_CUE_COMMAND="paplay" plays the end-of-session sounds.

`)
}
