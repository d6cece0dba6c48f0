package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewArrivalsCmd(app *TransitCtlApp) *cobra.Command {
	var stationID string

	cmd := &cobra.Command{
		Use:   "arrivals",
		Short: "Inspect upcoming train arrivals",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}

			if stationID != "" {
				if _, err := catalog.Station(stationID); err != nil {
					return err
				}
			}

			table := newTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "STATION\tLINE\tDIRECTION\tMINUTES")
			for _, arrival := range catalog.Arrivals(stationID) {
				station, err := catalog.Station(arrival.StationID)
				if err != nil {
					return err
				}
				fmt.Fprintf(table, "%s\t%s\t%s\t%d\n",
					station.Name,
					arrival.Line,
					arrival.Direction,
					arrival.Minutes,
				)
			}
			return table.Flush()
		},
	}

	cmd.Flags().StringVar(&stationID, "station", "", "Only list arrivals at this station id")

	return cmd
}
