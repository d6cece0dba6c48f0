package transit

import (
	"strconv"
	"strings"
)

const (
	// BrandColor is the NYC subway blue used for normal stations and chrome.
	BrandColor = "#0039a6"
	// AlertColor marks delayed stations and trains on unmapped lines.
	AlertColor = "#f44336"
	// LiveTrainColor is the swatch the map legend shows for trains.
	LiveTrainColor = "#ff3333"
)

type StationStatus string

const (
	StatusNormal  StationStatus = "normal"
	StatusDelayed StationStatus = "delayed"
)

func (status StationStatus) Label() string {
	if status == StatusDelayed {
		return "Delayed"
	}
	return "Normal Service"
}

type Station struct {
	ID     string        `yaml:"id" json:"id" validate:"required"`
	Name   string        `yaml:"name" json:"name" validate:"required"`
	Lat    float64       `yaml:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lng    float64       `yaml:"lng" json:"lng" validate:"gte=-180,lte=180"`
	Line   string        `yaml:"line" json:"line" validate:"required"`
	Status StationStatus `yaml:"status" json:"status" validate:"oneof=normal delayed"`
}

// Lines splits the slash-delimited line field ("N/Q/R") into ids.
func (station Station) Lines() []string {
	parts := strings.Split(station.Line, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (station Station) Serves(line string) bool {
	for _, id := range station.Lines() {
		if id == line {
			return true
		}
	}
	return false
}

func (station Station) Delayed() bool {
	return station.Status == StatusDelayed
}

// MarkerColor is the alert color for delayed stations and the brand color otherwise.
func (station Station) MarkerColor() string {
	if station.Delayed() {
		return AlertColor
	}
	return BrandColor
}

type Train struct {
	ID        string  `yaml:"id" json:"id" validate:"required"`
	Lat       float64 `yaml:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lng       float64 `yaml:"lng" json:"lng" validate:"gte=-180,lte=180"`
	Line      string  `yaml:"line" json:"line" validate:"required"`
	Direction string  `yaml:"direction" json:"direction" validate:"required"`
	Speed     string  `yaml:"speed" json:"speed" validate:"required"`
}

const metersPerSecondPerMph = 0.44704

// SpeedMetersPerSecond parses speeds written as "<n> mph".
func (train Train) SpeedMetersPerSecond() (float64, bool) {
	fields := strings.Fields(train.Speed)
	if len(fields) != 2 || !strings.EqualFold(fields[1], "mph") {
		return 0, false
	}
	mph, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || mph < 0 {
		return 0, false
	}
	return mph * metersPerSecondPerMph, true
}

type Line struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Color string `yaml:"color" json:"color" validate:"required,hexcolor"`
}

// Overlay is a decorative circle drawn on the map.
type Overlay struct {
	Name        string  `yaml:"name" json:"name" validate:"required"`
	Lat         float64 `yaml:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `yaml:"lng" json:"lng" validate:"gte=-180,lte=180"`
	Radius      float64 `yaml:"radius" json:"radius" validate:"gt=0"`
	Color       string  `yaml:"color" json:"color" validate:"required,hexcolor"`
	FillOpacity float64 `yaml:"fill_opacity" json:"fillOpacity" validate:"gte=0,lte=1"`
	Weight      int     `yaml:"weight" json:"weight" validate:"gte=0"`
}

type Arrival struct {
	StationID string `yaml:"station" json:"stationId" validate:"required"`
	Line      string `yaml:"line" json:"line" validate:"required"`
	Direction string `yaml:"direction" json:"direction" validate:"required"`
	Minutes   int    `yaml:"minutes" json:"minutes" validate:"gte=0"`
}

type LineStatus struct {
	Line            Line
	DelayedStations []string
}

func (status LineStatus) Delayed() bool {
	return len(status.DelayedStations) > 0
}

// Code uses the service status vocabulary of the MTA alert feeds.
func (status LineStatus) Code() string {
	if status.Delayed() {
		return "delays"
	}
	return "good_service"
}

func (status LineStatus) Label() string {
	if status.Delayed() {
		return "Delays"
	}
	return "Good Service"
}

func (status LineStatus) Message() string {
	if !status.Delayed() {
		return "Trains are running with no reported delays."
	}
	return "Delays reported at " + strings.Join(status.DelayedStations, ", ") + "."
}
