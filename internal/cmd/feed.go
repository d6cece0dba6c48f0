package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/proto"

	"github.com/Shreyas191/nyc-transit-hub/internal/feed"
)

const vehiclePositionsPath = "/api/gtfs-rt/vehicle-positions"

func NewFeedCmd(app *TransitCtlApp) *cobra.Command {
	var format string
	var remote bool

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the GTFS-RT vehicle positions feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := feed.ParseFormat(format)
			if err != nil {
				return err
			}

			var message *gtfs.FeedMessage
			if remote {
				message, err = app.fetchVehiclePositions(cmd.Context())
			} else {
				message, err = app.localVehiclePositions()
			}
			if err != nil {
				return err
			}

			body, err := feed.Marshal(message, outFormat)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := out.Write(body); err != nil {
				return err
			}
			if outFormat == feed.FormatJSON {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(feed.FormatJSON), "Output encoding: json or protobuf")
	cmd.Flags().BoolVar(&remote, "remote", false, "Download the feed from --server instead of building it locally")

	return cmd
}

func (app *TransitCtlApp) localVehiclePositions() (*gtfs.FeedMessage, error) {
	catalog, err := app.Catalog()
	if err != nil {
		return nil, err
	}
	return feed.VehiclePositions(catalog, time.Now()), nil
}

func (app *TransitCtlApp) fetchVehiclePositions(ctx context.Context) (*gtfs.FeedMessage, error) {
	url := strings.TrimSuffix(app.ServerURL, "/") + vehiclePositionsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/x-protobuf")

	resp, err := app.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	message := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, message); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return message, nil
}
