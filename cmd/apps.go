package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mj1618/axwatch/internal/model"
	"github.com/mj1618/axwatch/internal/output"
	"github.com/mj1618/axwatch/internal/platform"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List running applications",
	Long: `List running applications in the order macOS reports them. With --bundle-id,
only applications with that bundle identifier are listed; 'watch' observes the last one.`,
	RunE: runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
	appsCmd.Flags().String("bundle-id", "", "Only list applications with this bundle identifier")
	appsCmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
}

func runApps(cmd *cobra.Command, args []string) error {
	bundleID, _ := cmd.Flags().GetString("bundle-id")

	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}
	if provider.Processes == nil {
		return fmt.Errorf("process lookup not available on this platform")
	}

	apps, err := provider.Processes.RunningApplications(bundleID)
	if err != nil {
		return err
	}

	if output.OutputFormat == output.FormatText {
		writeAppsTable(cmd.OutOrStdout(), apps)
		return nil
	}
	return output.Print(output.AppsResult{
		BundleID: bundleID,
		TS:       time.Now().Unix(),
		Apps:     apps,
	})
}

func writeAppsTable(w io.Writer, apps []model.Process) {
	var data [][]string
	for _, p := range apps {
		active := ""
		if p.Active {
			active = "*"
		}
		launched := ""
		if !p.LaunchedAt.IsZero() {
			launched = p.LaunchedAt.Format(time.DateTime)
		}
		data = append(data, []string{p.Name, p.BundleID, strconv.Itoa(p.PID), active, launched})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"NAME", "BUNDLE ID", "PID", "ACTIVE", "LAUNCHED"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
