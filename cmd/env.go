package cmd

import (
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mj1618/axwatch/internal/envconfig"
	"github.com/mj1618/axwatch/internal/output"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the AXWATCH_* environment configuration",
	RunE:  runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnv(cmd *cobra.Command, args []string) error {
	if output.OutputFormat != output.FormatText {
		return output.Print(envconfig.Values())
	}

	vars := envconfig.AsMap()
	values := envconfig.Values()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"NAME", "VALUE", "DESCRIPTION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.SetAutoWrapText(false)
	for _, name := range names {
		v := vars[name]
		table.Append([]string{v.Name, values[name], v.Description})
	}
	table.Render()
	return nil
}
