package transit

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	assert.Len(t, catalog.Stations(), 7)
	assert.Len(t, catalog.Trains(), 4)
	assert.Len(t, catalog.Lines(), 12)
	assert.Len(t, catalog.Overlays(), 2)

	penn, err := catalog.Station("3")
	require.NoError(t, err)
	assert.Equal(t, "Penn Station - 34th St", penn.Name)
	assert.Equal(t, StatusDelayed, penn.Status)
}

func TestStationMarkerColorFollowsStatus(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	for _, station := range catalog.Stations() {
		if station.Status == StatusDelayed {
			assert.Equal(t, AlertColor, station.MarkerColor(), station.Name)
		} else {
			assert.Equal(t, BrandColor, station.MarkerColor(), station.Name)
		}
	}
}

func TestTrainMarkerColor(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	for _, train := range catalog.Trains() {
		color, ok := catalog.LineColor(train.Line)
		require.True(t, ok, train.ID)
		assert.Equal(t, color, catalog.TrainMarkerColor(train))
	}

	assert.Equal(t, "#0066cc", catalog.TrainMarkerColor(Train{ID: "t9", Line: "A"}))
	assert.Equal(t, AlertColor, catalog.TrainMarkerColor(Train{ID: "t9", Line: "7"}))
}

func TestStationLines(t *testing.T) {
	station := Station{Line: "N/Q/R/4/5/6"}
	assert.Equal(t, []string{"N", "Q", "R", "4", "5", "6"}, station.Lines())
	assert.True(t, station.Serves("R"))
	assert.False(t, station.Serves("A"))

	assert.Equal(t, []string{"A"}, Station{Line: "A/"}.Lines())
}

func TestStationStatusLabel(t *testing.T) {
	assert.Equal(t, "Delayed", StatusDelayed.Label())
	assert.Equal(t, "Normal Service", StatusNormal.Label())
}

func TestStationNotFound(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	_, err = catalog.Station("99")
	assert.True(t, errors.Is(err, ErrStationNotFound))
}

func TestTrainsOnLine(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	trains := catalog.TrainsOnLine("A")
	require.Len(t, trains, 1)
	assert.Equal(t, "t3", trains[0].ID)

	assert.Empty(t, catalog.TrainsOnLine("G"))
	assert.Len(t, catalog.TrainsOnLine(""), 4)
}

func TestArrivalsSortedSoonestFirst(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	arrivals := catalog.Arrivals("")
	require.NotEmpty(t, arrivals)
	for i := 1; i < len(arrivals); i++ {
		assert.LessOrEqual(t, arrivals[i-1].Minutes, arrivals[i].Minutes)
	}

	for _, arrival := range catalog.Arrivals("1") {
		assert.Equal(t, "1", arrival.StationID)
	}
	assert.Empty(t, catalog.Arrivals("nope"))
}

func TestLineStatuses(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	byLine := map[string]LineStatus{}
	for _, status := range catalog.LineStatuses() {
		byLine[status.Line.ID] = status
	}
	require.Len(t, byLine, 12)

	assert.Equal(t, "delays", byLine["A"].Code())
	assert.Equal(t, []string{"Penn Station - 34th St"}, byLine["A"].DelayedStations)
	assert.Equal(t, []string{"Wall St"}, byLine["2"].DelayedStations)
	assert.Equal(t, "Delays", byLine["3"].Label())
	assert.Equal(t, "good_service", byLine["1"].Code())
	assert.Equal(t, "Good Service", byLine["N"].Label())
}

func TestSpeedMetersPerSecond(t *testing.T) {
	speed, ok := Train{Speed: "30 mph"}.SpeedMetersPerSecond()
	require.True(t, ok)
	assert.InDelta(t, 13.4112, speed, 0.0001)

	_, ok = Train{Speed: "fast"}.SpeedMetersPerSecond()
	assert.False(t, ok)
	_, ok = Train{Speed: "30 kph"}.SpeedMetersPerSecond()
	assert.False(t, ok)
}

const minimalCatalog = `
lines:
  - { id: "1", color: "#ff3333" }
stations:
  - { id: "1", name: "Times Square", lat: 40.7559, lng: -73.9862, line: "1", status: %s }
`

func TestLoadRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad status", strings.Replace(minimalCatalog, "%s", "closed", 1)},
		{"latitude out of range", strings.Replace(strings.Replace(minimalCatalog, "%s", "normal", 1), "40.7559", "97.1", 1)},
		{"bad color", strings.Replace(strings.Replace(minimalCatalog, "%s", "normal", 1), "#ff3333", "red", 1)},
		{"unknown field", strings.Replace(minimalCatalog, "%s", "normal", 1) + "depots: []\n"},
		{"no stations", "lines:\n  - { id: \"1\", color: \"#ff3333\" }\n"},
		{"duplicate station", strings.Replace(minimalCatalog, "%s", "normal", 1) +
			"  - { id: \"1\", name: \"Again\", lat: 40.7, lng: -73.9, line: \"1\", status: normal }\n"},
		{"arrival for unknown station", strings.Replace(minimalCatalog, "%s", "normal", 1) +
			"arrivals:\n  - { station: \"9\", line: \"1\", direction: \"Uptown\", minutes: 1 }\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(test.yaml))
			assert.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader(strings.Replace(minimalCatalog, "%s", "normal", 1)))
	assert.NoError(t, err)
}

func TestCatalogAccessorsReturnCopies(t *testing.T) {
	catalog, err := Default()
	require.NoError(t, err)

	stations := catalog.Stations()
	stations[0].Name = "changed"

	first, err := catalog.Station(stations[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Times Square - 42nd St", first.Name)
}
