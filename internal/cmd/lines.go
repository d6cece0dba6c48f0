package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewLinesCmd(app *TransitCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lines",
		Aliases: []string{"routes"},
		Short:   "Inspect service status of subway lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "LINE\tCOLOR\tSTATUS\tDELAYED AT")
			for _, status := range catalog.LineStatuses() {
				delayedAt := "-"
				if status.Delayed() {
					delayedAt = strings.Join(status.DelayedStations, ", ")
				}
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
					status.Line.ID,
					status.Line.Color,
					status.Label(),
					delayedAt,
				)
			}
			return table.Flush()
		},
	}

	return cmd
}
