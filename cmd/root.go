package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mj1618/axwatch/internal/envconfig"
	"github.com/mj1618/axwatch/internal/logutil"
	"github.com/mj1618/axwatch/internal/output"
	"github.com/mj1618/axwatch/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "axwatch",
	Short: "Watch accessibility notifications from a running macOS application",
	Long: `axwatch checks accessibility permission, finds a running application by bundle
identifier (Finder by default), and registers an accessibility observer for one
notification (window moved by default), reporting every notification it receives.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "text", "Output format: text, yaml, json")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (default info, debug with AXWATCH_DEBUG)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Read the root persistent flag directly so subcommand flags cannot shadow it.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}

		levelName, _ := rootCmd.PersistentFlags().GetString("log-level")
		if levelName == "" && envconfig.Debug {
			levelName = "debug"
		}
		level, err := logutil.ParseLevel(levelName)
		if err != nil {
			return err
		}
		slog.SetDefault(logutil.NewLogger(os.Stderr, level))
		return nil
	}
}
