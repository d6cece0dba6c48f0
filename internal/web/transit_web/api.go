package transit_web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shreyas191/nyc-transit-hub/internal/feed"
	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

// ErrorResponse is the JSON error body shared by every /api route.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type StationDTO struct {
	transit.Station
	Lines       []string `json:"lines"`
	StatusLabel string   `json:"statusLabel"`
	MarkerColor string   `json:"markerColor"`
}

type StationsResponse struct {
	Stations []StationDTO `json:"stations"`
	Count    int          `json:"count"`
}

type TrainDTO struct {
	transit.Train
	MarkerColor string `json:"markerColor"`
}

type TrainsResponse struct {
	Trains      []TrainDTO `json:"trains"`
	Count       int        `json:"count"`
	GeneratedAt time.Time  `json:"generatedAt"`
}

type LineDTO struct {
	ID              string   `json:"id"`
	Color           string   `json:"color"`
	Status          string   `json:"status"`
	StatusLabel     string   `json:"statusLabel"`
	DelayedStations []string `json:"delayedStations"`
}

type LinesResponse struct {
	Lines []LineDTO `json:"lines"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Stations int    `json:"stations"`
	Trains   int    `json:"trains"`
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	if status == http.StatusOK {
		writer.Header().Set("Cache-Control", "public, max-age=15")
	}
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func toStationDTO(station transit.Station) StationDTO {
	return StationDTO{
		Station:     station,
		Lines:       station.Lines(),
		StatusLabel: station.Status.Label(),
		MarkerColor: station.MarkerColor(),
	}
}

// handleStations handles GET /api/stations
func (server *TransitWebServer) handleStations(writer http.ResponseWriter, request *http.Request) {
	stations := server.catalog.Stations()
	response := StationsResponse{
		Stations: make([]StationDTO, 0, len(stations)),
		Count:    len(stations),
	}
	for _, station := range stations {
		response.Stations = append(response.Stations, toStationDTO(station))
	}
	writeJSON(writer, http.StatusOK, response)
}

// handleStation handles GET /api/stations/{stationID}
func (server *TransitWebServer) handleStation(writer http.ResponseWriter, request *http.Request) {
	stationID := chi.URLParam(request, "stationID")

	station, err := server.catalog.Station(stationID)
	if errors.Is(err, transit.ErrStationNotFound) {
		writeJSON(writer, http.StatusNotFound, ErrorResponse{
			Error: "Station not found",
			Details: map[string]interface{}{
				"stationId": stationID,
			},
		})
		return
	}
	if err != nil {
		writeJSON(writer, http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve station"})
		return
	}

	writeJSON(writer, http.StatusOK, toStationDTO(station))
}

// handleTrains handles GET /api/trains, optionally filtered with ?line=
func (server *TransitWebServer) handleTrains(writer http.ResponseWriter, request *http.Request) {
	query := ParseTrainsQuery(request.URL.Query())

	trains := server.catalog.TrainsOnLine(query.Line)
	response := TrainsResponse{
		Trains:      make([]TrainDTO, 0, len(trains)),
		Count:       len(trains),
		GeneratedAt: server.now().UTC(),
	}
	for _, train := range trains {
		response.Trains = append(response.Trains, TrainDTO{
			Train:       train,
			MarkerColor: server.catalog.TrainMarkerColor(train),
		})
	}
	writeJSON(writer, http.StatusOK, response)
}

// handleLines handles GET /api/lines
func (server *TransitWebServer) handleLines(writer http.ResponseWriter, request *http.Request) {
	statuses := server.catalog.LineStatuses()
	response := LinesResponse{Lines: make([]LineDTO, 0, len(statuses))}
	for _, status := range statuses {
		delayedStations := status.DelayedStations
		if delayedStations == nil {
			delayedStations = []string{}
		}
		response.Lines = append(response.Lines, LineDTO{
			ID:              status.Line.ID,
			Color:           status.Line.Color,
			Status:          status.Code(),
			StatusLabel:     status.Label(),
			DelayedStations: delayedStations,
		})
	}
	writeJSON(writer, http.StatusOK, response)
}

// handleMapDocument handles GET /api/map
func (server *TransitWebServer) handleMapDocument(writer http.ResponseWriter, request *http.Request) {
	writeJSON(writer, http.StatusOK, server.mapDocument)
}

// handleVehiclePositions handles GET /api/gtfs-rt/vehicle-positions
// Serves the mock trains as protobuf, or protojson with ?format=json
func (server *TransitWebServer) handleVehiclePositions(writer http.ResponseWriter, request *http.Request) {
	format, err := feed.ParseFormat(request.URL.Query().Get("format"))
	if err != nil {
		writeJSON(writer, http.StatusBadRequest, ErrorResponse{
			Error: "Unsupported feed format",
			Details: map[string]interface{}{
				"format":    request.URL.Query().Get("format"),
				"supported": []string{string(feed.FormatProtobuf), string(feed.FormatJSON)},
			},
		})
		return
	}

	body, err := feed.Marshal(feed.VehiclePositions(server.catalog, server.now()), format)
	if err != nil {
		writeJSON(writer, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to encode feed",
			Details: map[string]interface{}{
				"internal": err.Error(),
			},
		})
		return
	}

	if server.metrics != nil {
		server.metrics.FeedRequestsTotal.WithLabelValues(string(format)).Inc()
	}

	writer.Header().Set("Content-Type", format.ContentType())
	writer.Header().Set("Cache-Control", "public, max-age=15")
	writer.WriteHeader(http.StatusOK)
	writer.Write(body)
}

func (server *TransitWebServer) handleAPINotFound(writer http.ResponseWriter, request *http.Request) {
	writeJSON(writer, http.StatusNotFound, ErrorResponse{
		Error: "Unknown API route",
		Details: map[string]interface{}{
			"path": request.URL.Path,
		},
	})
}

func (server *TransitWebServer) handleHealth(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	json.NewEncoder(writer).Encode(HealthResponse{
		Status:   "ok",
		Stations: len(server.catalog.Stations()),
		Trains:   len(server.catalog.Trains()),
	})
}
