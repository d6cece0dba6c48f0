package transit_web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/Shreyas191/nyc-transit-hub/internal/common"
	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

// Protobuf feeds are left uncompressed.
var compressedTypes = []string{
	"text/html",
	"text/css",
	"text/javascript",
	"application/javascript",
	"application/json",
}

type TransitWebServer struct {
	cfg      Config
	catalog  *transit.Catalog
	renderer *Renderer
	metrics  *common.Metrics
	server   *http.Server
	router   chi.Router

	mapDocument   MapDocument
	leafletOrigin string

	now      func() time.Time
	newNonce func() string
}

// NewTransitWebServer wires the site and API routes over catalog. metrics may be nil.
func NewTransitWebServer(cfg Config, catalog *transit.Catalog, metrics *common.Metrics) (*TransitWebServer, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	mapDocument, err := BuildMapDocument(catalog, cfg.Map, renderer)
	if err != nil {
		return nil, fmt.Errorf("build map document: %w", err)
	}

	leaflet, err := url.Parse(cfg.Map.LeafletURL)
	if err != nil {
		return nil, fmt.Errorf("parse leaflet url: %w", err)
	}

	static, err := staticHandler()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	server := &TransitWebServer{
		cfg:      cfg,
		catalog:  catalog,
		renderer: renderer,
		metrics:  metrics,
		router:   router,
		server: &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		mapDocument:   mapDocument,
		leafletOrigin: leaflet.Scheme + "://" + leaflet.Host,
		now:           time.Now,
		newNonce:      uuid.NewString,
	}

	if metrics != nil {
		metrics.CatalogRecordsGauge.WithLabelValues("stations").Set(float64(len(catalog.Stations())))
		metrics.CatalogRecordsGauge.WithLabelValues("trains").Set(float64(len(catalog.Trains())))
		metrics.CatalogRecordsGauge.WithLabelValues("lines").Set(float64(len(catalog.Lines())))
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5, compressedTypes...))
	router.Use(server.instrument)

	for _, page := range Pages {
		router.Get(page.Path, server.handlePage(page))
	}
	router.Get("/healthz", server.handleHealth)
	router.Handle("/static/*", static)

	router.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		api.Get("/stations", server.handleStations)
		api.Get("/stations/{stationID}", server.handleStation)
		api.Get("/trains", server.handleTrains)
		api.Get("/lines", server.handleLines)
		api.Get("/map", server.handleMapDocument)
		api.Get("/gtfs-rt/vehicle-positions", server.handleVehiclePositions)
		api.NotFound(server.handleAPINotFound)
	})

	router.NotFound(server.handleUnmatched)

	return server, nil
}

func (server *TransitWebServer) Handler() http.Handler {
	return server.router
}

func (server *TransitWebServer) Serve(ctx context.Context) error {
	log.Printf("listening on %s", server.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := server.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down.")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.server.Shutdown(shutdownCtx)
}
