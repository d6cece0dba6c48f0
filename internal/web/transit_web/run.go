package transit_web

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Shreyas191/nyc-transit-hub/internal/common"
	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

func Run(cfg Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *common.Metrics
	var catalogTimer prometheus.Observer
	if cfg.TelemetryAddress != "" {
		telemetry := common.NewTelemetryServer(cfg.TelemetryAddress, common.TelemetryOptions{
			Service: "transit-web",
			Pprof:   cfg.Pprof,
		})
		if err := telemetry.Start(); err != nil {
			log.Printf("Telemetry disabled: %v", err)
		} else {
			defer telemetry.Stop()
			metrics = common.NewMetrics(telemetry.GetRegistry())
			catalogTimer = metrics.StartupStepSeconds.WithLabelValues("load_catalog")
		}
	}

	catalog, err := common.Timed("load-catalog", catalogTimer, func() (*transit.Catalog, error) {
		return transit.LoadOrDefault(cfg.CatalogPath)
	})
	if err != nil {
		log.Printf("Failed to load catalog: %v", err)
		return 1
	}

	server, err := NewTransitWebServer(cfg, catalog, metrics)
	if err != nil {
		log.Printf("Failed to build server: %v", err)
		return 1
	}

	if err := server.Serve(ctx); err != nil {
		log.Printf("Server error: %v", err)
		return 1
	}
	return 0
}
