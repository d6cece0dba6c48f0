package transit_web

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out), recorder.Body.String())
	return out
}

func TestAPIStations(t *testing.T) {
	server := newTestServer(t, nil)

	recorder := get(t, server, "/api/stations")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=15", recorder.Header().Get("Cache-Control"))

	response := decode[StationsResponse](t, recorder)
	assert.Equal(t, 7, response.Count)
	require.Len(t, response.Stations, 7)
	assert.Equal(t, []string{"1", "2", "3"}, response.Stations[0].Lines)
	assert.Equal(t, transit.BrandColor, response.Stations[0].MarkerColor)
}

func TestAPIStation(t *testing.T) {
	server := newTestServer(t, nil)

	recorder := get(t, server, "/api/stations/3")
	require.Equal(t, http.StatusOK, recorder.Code)

	station := decode[StationDTO](t, recorder)
	assert.Equal(t, "Penn Station - 34th St", station.Name)
	assert.Equal(t, transit.StatusDelayed, station.Status)
	assert.Equal(t, "Delayed", station.StatusLabel)
	assert.Equal(t, transit.AlertColor, station.MarkerColor)
}

func TestAPIStationNotFound(t *testing.T) {
	server := newTestServer(t, nil)

	recorder := get(t, server, "/api/stations/99")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Cache-Control"))

	response := decode[ErrorResponse](t, recorder)
	assert.Equal(t, "Station not found", response.Error)
	assert.Equal(t, "99", response.Details["stationId"])
}

func TestAPITrains(t *testing.T) {
	server := newTestServer(t, nil)

	response := decode[TrainsResponse](t, get(t, server, "/api/trains"))
	assert.Equal(t, 4, response.Count)
	assert.True(t, testNow.Equal(response.GeneratedAt))

	response = decode[TrainsResponse](t, get(t, server, "/api/trains?line=a"))
	require.Equal(t, 1, response.Count)
	assert.Equal(t, "t3", response.Trains[0].ID)
	assert.Equal(t, "#0066cc", response.Trains[0].MarkerColor)

	response = decode[TrainsResponse](t, get(t, server, "/api/trains?line=G"))
	assert.Equal(t, 0, response.Count)
	assert.NotNil(t, response.Trains)
}

func TestAPILines(t *testing.T) {
	server := newTestServer(t, nil)

	response := decode[LinesResponse](t, get(t, server, "/api/lines"))
	require.Len(t, response.Lines, 12)

	byID := map[string]LineDTO{}
	for _, line := range response.Lines {
		byID[line.ID] = line
	}
	assert.Equal(t, "delays", byID["E"].Status)
	assert.Equal(t, []string{"Penn Station - 34th St"}, byID["E"].DelayedStations)
	assert.Equal(t, "good_service", byID["Q"].Status)
	assert.Equal(t, "Good Service", byID["Q"].StatusLabel)
	assert.Equal(t, []string{}, byID["Q"].DelayedStations)
}

func TestAPIMapDocumentMatchesPage(t *testing.T) {
	server := newTestServer(t, nil)

	doc := decode[MapDocument](t, get(t, server, "/api/map"))
	assert.Equal(t, server.mapDocument, doc)
	assert.Len(t, doc.Stations, 7)
	assert.Len(t, doc.Trains, 4)
	assert.Len(t, doc.Circles, 2)
}

func TestAPIVehiclePositions(t *testing.T) {
	server := newTestServer(t, nil)

	recorder := get(t, server, "/api/gtfs-rt/vehicle-positions")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/x-protobuf", recorder.Header().Get("Content-Type"))

	var message gtfs.FeedMessage
	require.NoError(t, proto.Unmarshal(recorder.Body.Bytes(), &message))
	assert.Len(t, message.GetEntity(), 4)
	assert.Equal(t, uint64(testNow.Unix()), message.GetHeader().GetTimestamp())

	recorder = get(t, server, "/api/gtfs-rt/vehicle-positions?format=json")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Body.String(), `"gtfsRealtimeVersion"`)

	recorder = get(t, server, "/api/gtfs-rt/vehicle-positions?format=xml")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Unsupported feed format", decode[ErrorResponse](t, recorder).Error)
}

func TestAPIUnknownRoute(t *testing.T) {
	server := newTestServer(t, nil)

	recorder := get(t, server, "/api/depots")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Unknown API route", decode[ErrorResponse](t, recorder).Error)
}

func TestAPICORS(t *testing.T) {
	server := newTestServer(t, nil)

	request := httptest.NewRequest(http.MethodGet, "/api/lines", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/api/lines", nil)
	request.Header.Set("Origin", "https://elsewhere.example")
	recorder = httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPICompressesJSON(t *testing.T) {
	server := newTestServer(t, nil)

	request := httptest.NewRequest(http.MethodGet, "/api/stations", nil)
	request.Header.Set("Accept-Encoding", "gzip")
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "gzip", recorder.Header().Get("Content-Encoding"))
	assert.Contains(t, recorder.Header().Values("Vary"), "Accept-Encoding")

	reader, err := gzip.NewReader(recorder.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(reader)
	require.NoError(t, err)

	var response StationsResponse
	require.NoError(t, json.Unmarshal(body, &response))
	assert.Equal(t, 7, response.Count)

	plain := get(t, server, "/api/stations")
	assert.Empty(t, plain.Header().Get("Content-Encoding"))

	request = httptest.NewRequest(http.MethodGet, "/api/gtfs-rt/vehicle-positions", nil)
	request.Header.Set("Accept-Encoding", "gzip")
	recorder = httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Content-Encoding"))
}
