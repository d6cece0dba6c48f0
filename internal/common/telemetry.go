package common

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestSeconds  *prometheus.HistogramVec
	PageRendersTotal    *prometheus.CounterVec
	RenderErrorsTotal   *prometheus.CounterVec
	FeedRequestsTotal   *prometheus.CounterVec
	StartupStepSeconds  *prometheus.HistogramVec
	CatalogRecordsGauge *prometheus.GaugeVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HttpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transit_http_requests_total",
				Help: "HTTP requests served, by route pattern and status code",
			},
			[]string{"route", "code"},
		),
		HttpRequestSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transit_http_request_seconds",
				Help:    "Time spent serving HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		PageRendersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transit_page_renders_total",
				Help: "HTML pages rendered, by page",
			},
			[]string{"page"},
		),
		RenderErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transit_render_errors_total",
				Help: "Template executions that failed, by template",
			},
			[]string{"template"},
		),
		FeedRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transit_feed_requests_total",
				Help: "GTFS-RT mock feed downloads, by encoding",
			},
			[]string{"format"},
		),
		StartupStepSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transit_startup_step_seconds",
				Help:    "Duration of startup steps such as catalog load",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
			[]string{"step"},
		),
		CatalogRecordsGauge: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "transit_catalog_records",
				Help: "Records held by the in-memory catalog, by kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		metrics.HttpRequestsTotal,
		metrics.HttpRequestSeconds,
		metrics.PageRendersTotal,
		metrics.RenderErrorsTotal,
		metrics.FeedRequestsTotal,
		metrics.StartupStepSeconds,
		metrics.CatalogRecordsGauge,
	)

	return metrics
}

// TelemetryOptions describe the process the telemetry listener reports on.
type TelemetryOptions struct {
	Service string // value of the service label on transit_build_info
	Pprof   bool   // mount net/http/pprof under /debug/pprof/
}

// TelemetryServer exposes /metrics and, optionally, pprof on a listener separate from the site.
type TelemetryServer struct {
	addr     string
	mux      *http.ServeMux
	registry *prometheus.Registry
	options  TelemetryOptions

	server   *http.Server
	listener net.Listener
}

func NewTelemetryServer(addr string, options TelemetryOptions) *TelemetryServer {
	telemetry := &TelemetryServer{
		addr:     addr,
		registry: prometheus.NewRegistry(),
		mux:      http.NewServeMux(),
		options:  options,
	}

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "transit_build_info",
			Help: "Build metadata of the running transit service",
		},
		[]string{"service", "version", "git_commit"},
	)

	telemetry.registry.MustRegister(
		collectors.NewGoCollector(), // Go runtime metrics
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo,
	)
	buildInfo.WithLabelValues(options.Service, Version, GitCommit).Set(1)

	telemetry.mux.Handle("/metrics", promhttp.HandlerFor(telemetry.registry, promhttp.HandlerOpts{
		Registry: telemetry.registry,
	}))
	if options.Pprof {
		mountPprof(telemetry.mux)
	}

	return telemetry
}

func mountPprof(mux *http.ServeMux) {
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

func (telemetry *TelemetryServer) GetRegistry() *prometheus.Registry {
	return telemetry.registry
}

func (telemetry *TelemetryServer) Handler() http.Handler {
	return telemetry.mux
}

func (telemetry *TelemetryServer) Start() error {
	telemetry.server = &http.Server{
		Addr:              telemetry.addr,
		Handler:           telemetry.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", telemetry.addr)
	if err != nil {
		return fmt.Errorf("telemetry listen %s: %w", telemetry.addr, err)
	}
	telemetry.listener = listener

	go func() {
		if err := telemetry.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("telemetry server error: %v", err)
		}
	}()

	log.Printf("%s telemetry on %s (pprof %t)", telemetry.options.Service, listener.Addr(), telemetry.options.Pprof)
	return nil
}

func (telemetry *TelemetryServer) Addr() string {
	if telemetry.listener == nil {
		return telemetry.addr
	}
	return telemetry.listener.Addr().String()
}

func (telemetry *TelemetryServer) Stop() error {
	if telemetry.server == nil {
		return nil
	}

	return telemetry.server.Close()
}
