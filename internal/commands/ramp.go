package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/neuralfocus/internal/parser"
	"github.com/balkashynov/neuralfocus/internal/ramp"
	"github.com/balkashynov/neuralfocus/internal/tui"
)

var rampCmd = &cobra.Command{
	Use:   "ramp [duration]",
	Short: "Show the volume ramp of a session length",
	Long: `Print the phase table of a session length and the volume the mixer is
asked for at regular points of the session. Without a duration, all four
lengths are listed.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		policyName, _ := cmd.Flags().GetString("policy")
		if policyName == "" {
			policyName = cfg.RampPolicy
		}
		policy, err := ramp.ParsePolicy(policyName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(args) == 0 {
			for _, p := range ramp.Presets {
				fmt.Printf("%-4s %-32s break %s\n", p.Label(), p.Description(), tui.FormatClock(p.BreakSeconds()))
			}
			return
		}

		p, err := parser.ParseDuration(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Print(renderRamp(p, policy))
	},
}

func renderRamp(p ramp.Preset, policy ramp.Policy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s ramp\n\n", p.Description(), policy)

	fmt.Fprintf(&b, "%-6s %-10s %s\n", "PHASE", "UNTIL", "VOLUME")
	for i, ph := range p.Phases() {
		fmt.Fprintf(&b, "%-6d %-10s %d%%\n", i+1, tui.FormatClock(ph.Until), ph.Volume)
	}

	b.WriteString("\n")
	samples := 12
	for i := 0; i <= samples; i++ {
		elapsed := p.Seconds() * i / samples
		phase, vol := ramp.VolumeFor(p, policy, elapsed)
		fmt.Fprintf(&b, "%8s  p%d %3d%% %s\n", tui.FormatClock(elapsed), phase, vol, strings.Repeat("█", vol/4))
	}
	return b.String()
}

func init() {
	rampCmd.Flags().String("policy", "", "Volume ramp policy: linear or step")
}
