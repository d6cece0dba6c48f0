package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type healthReport struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
	Trains   int    `json:"trains"`
}

func NewHealthCmd(app *TransitCtlApp) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Inspect health of a running transit-web",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report, err := app.checkHealth(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d stations, %d trains)\n",
				app.ServerURL, report.Status, report.Stations, report.Trains)
			if report.Status != "ok" {
				return fmt.Errorf("server reported status %q", report.Status)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Give up after this long")

	return cmd
}

func (app *TransitCtlApp) checkHealth(ctx context.Context) (healthReport, error) {
	url := strings.TrimSuffix(app.ServerURL, "/") + "/healthz"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return healthReport{}, err
	}

	resp, err := app.HTTPClient.Do(req)
	if err != nil {
		return healthReport{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return healthReport{}, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	var report healthReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return healthReport{}, fmt.Errorf("decode health: %w", err)
	}
	return report, nil
}
