package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewTrainsCmd(app *TransitCtlApp) *cobra.Command {
	var line string

	cmd := &cobra.Command{
		Use:     "trains",
		Aliases: []string{"trips"},
		Short:   "Inspect live train positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout())
			fmt.Fprintln(table, "ID\tLINE\tDIRECTION\tSPEED\tCOLOR")
			for _, train := range catalog.TrainsOnLine(strings.ToUpper(line)) {
				fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%s\n",
					train.ID,
					train.Line,
					train.Direction,
					train.Speed,
					catalog.TrainMarkerColor(train),
				)
			}
			return table.Flush()
		},
	}

	cmd.Flags().StringVar(&line, "line", "", "Only list trains on this line")

	return cmd
}
