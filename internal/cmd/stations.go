package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewStationsCmd(app *TransitCtlApp) *cobra.Command {
	var delayedOnly bool

	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Inspect state of stations",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "ID\tNAME\tLINES\tSTATUS\tLAT\tLNG")
			for _, station := range catalog.Stations() {
				if delayedOnly && !station.Delayed() {
					continue
				}
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%.4f\t%.4f\n",
					station.ID,
					station.Name,
					strings.Join(station.Lines(), " "),
					station.Status.Label(),
					station.Lat,
					station.Lng,
				)
			}
			return table.Flush()
		},
	}

	cmd.Flags().BoolVar(&delayedOnly, "delayed", false, "Only list delayed stations")

	return cmd
}
