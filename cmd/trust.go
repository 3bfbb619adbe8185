package cmd

import (
	"fmt"

	"github.com/mj1618/axwatch/internal/output"
	"github.com/mj1618/axwatch/internal/platform"
	"github.com/spf13/cobra"
)

const settingsHint = "System Settings > Privacy & Security > Accessibility"

var trustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Report whether axwatch has accessibility permission",
	Long: `Report whether this process is trusted for accessibility control.

Grant permission at: ` + settingsHint + `
Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).

With --prompt, macOS shows its permission dialog when permission is missing.`,
	RunE: runTrust,
}

func init() {
	rootCmd.AddCommand(trustCmd)
	trustCmd.Flags().Bool("prompt", false, "Show the macOS accessibility permission prompt when untrusted")
	trustCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runTrust(cmd *cobra.Command, args []string) error {
	prompt, _ := cmd.Flags().GetBool("prompt")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Trust == nil {
		return fmt.Errorf("trust check not available on this platform")
	}

	res := output.TrustResult{
		Trusted:  provider.Trust.IsTrusted(prompt),
		Prompted: prompt,
	}
	if !res.Trusted {
		res.Settings = settingsHint
	}
	return output.Print(res)
}
