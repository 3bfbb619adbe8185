package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mj1618/axwatch/internal/output"
	"github.com/mj1618/axwatch/internal/platform"
)

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notification aliases accepted by --notification",
	Long: `List the short notification aliases and the accessibility notification each one
maps to. --notification also accepts any raw name starting with "AX".`,
	RunE: runNotifications,
}

func init() {
	rootCmd.AddCommand(notificationsCmd)
}

type notificationAlias struct {
	Alias        string `yaml:"alias"        json:"alias"`
	Notification string `yaml:"notification" json:"notification"`
}

func notificationList() []notificationAlias {
	aliases := platform.NotificationAliases()
	out := make([]notificationAlias, 0, len(aliases))
	for _, a := range aliases {
		out = append(out, notificationAlias{Alias: a, Notification: platform.Notifications[a]})
	}
	return out
}

func runNotifications(cmd *cobra.Command, args []string) error {
	list := notificationList()
	if output.OutputFormat == output.FormatText {
		writeNotificationsTable(cmd.OutOrStdout(), list)
		return nil
	}
	return output.Print(list)
}

func writeNotificationsTable(w io.Writer, list []notificationAlias) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ALIAS", "NOTIFICATION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, n := range list {
		table.Append([]string{n.Alias, n.Notification})
	}
	table.Render()
}
