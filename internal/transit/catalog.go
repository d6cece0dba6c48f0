package transit

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

var ErrStationNotFound = errors.New("station not found")

type document struct {
	Lines    []Line    `yaml:"lines" validate:"required,min=1,dive"`
	Stations []Station `yaml:"stations" validate:"required,min=1,dive"`
	Trains   []Train   `yaml:"trains" validate:"dive"`
	Overlays []Overlay `yaml:"overlays" validate:"dive"`
	Arrivals []Arrival `yaml:"arrivals" validate:"dive"`
}

// Catalog is the read-only set of mock records behind every page and API.
// It is safe for concurrent use because nothing mutates it after Load.
type Catalog struct {
	lines    []Line
	stations []Station
	trains   []Train
	overlays []Overlay
	arrivals []Arrival

	lineColors   map[string]string
	stationIndex map[string]int
}

// Default decodes the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalogYAML))
}

func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// LoadOrDefault reads path when it is set and falls back to the embedded catalog.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

func Load(reader io.Reader) (*Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	catalog := &Catalog{
		lines:        doc.Lines,
		stations:     doc.Stations,
		trains:       doc.Trains,
		overlays:     doc.Overlays,
		arrivals:     doc.Arrivals,
		lineColors:   make(map[string]string, len(doc.Lines)),
		stationIndex: make(map[string]int, len(doc.Stations)),
	}

	for _, line := range doc.Lines {
		if _, exists := catalog.lineColors[line.ID]; exists {
			return nil, fmt.Errorf("duplicate line %q", line.ID)
		}
		catalog.lineColors[line.ID] = line.Color
	}

	for i, station := range doc.Stations {
		if _, exists := catalog.stationIndex[station.ID]; exists {
			return nil, fmt.Errorf("duplicate station %q", station.ID)
		}
		catalog.stationIndex[station.ID] = i
	}

	trainIDs := make(map[string]bool, len(doc.Trains))
	for _, train := range doc.Trains {
		if trainIDs[train.ID] {
			return nil, fmt.Errorf("duplicate train %q", train.ID)
		}
		trainIDs[train.ID] = true
	}

	for _, arrival := range doc.Arrivals {
		if _, ok := catalog.stationIndex[arrival.StationID]; !ok {
			return nil, fmt.Errorf("arrival on line %s references unknown station %q", arrival.Line, arrival.StationID)
		}
	}

	return catalog, nil
}

func (catalog *Catalog) Stations() []Station {
	return slices.Clone(catalog.stations)
}

func (catalog *Catalog) Station(id string) (Station, error) {
	i, ok := catalog.stationIndex[id]
	if !ok {
		return Station{}, fmt.Errorf("%w: %s", ErrStationNotFound, id)
	}
	return catalog.stations[i], nil
}

func (catalog *Catalog) Trains() []Train {
	return slices.Clone(catalog.trains)
}

// TrainsOnLine returns every train when line is empty.
func (catalog *Catalog) TrainsOnLine(line string) []Train {
	if line == "" {
		return catalog.Trains()
	}
	out := make([]Train, 0, len(catalog.trains))
	for _, train := range catalog.trains {
		if train.Line == line {
			out = append(out, train)
		}
	}
	return out
}

func (catalog *Catalog) Lines() []Line {
	return slices.Clone(catalog.lines)
}

func (catalog *Catalog) Overlays() []Overlay {
	return slices.Clone(catalog.overlays)
}

// Arrivals returns arrivals soonest first, optionally for a single station.
func (catalog *Catalog) Arrivals(stationID string) []Arrival {
	out := make([]Arrival, 0, len(catalog.arrivals))
	for _, arrival := range catalog.arrivals {
		if stationID == "" || arrival.StationID == stationID {
			out = append(out, arrival)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Minutes < out[j].Minutes
	})
	return out
}

func (catalog *Catalog) LineColor(line string) (string, bool) {
	color, ok := catalog.lineColors[line]
	return color, ok
}

// LineColorOr returns fallback for lines missing from the color map.
func (catalog *Catalog) LineColorOr(line, fallback string) string {
	if color, ok := catalog.lineColors[line]; ok {
		return color
	}
	return fallback
}

// TrainMarkerColor is the train's line color, or AlertColor for unmapped lines.
func (catalog *Catalog) TrainMarkerColor(train Train) string {
	return catalog.LineColorOr(train.Line, AlertColor)
}

// LineStatuses derives one status per mapped line from the delayed stations serving it.
func (catalog *Catalog) LineStatuses() []LineStatus {
	out := make([]LineStatus, 0, len(catalog.lines))
	for _, line := range catalog.lines {
		status := LineStatus{Line: line}
		for _, station := range catalog.stations {
			if station.Delayed() && station.Serves(line.ID) {
				status.DelayedStations = append(status.DelayedStations, station.Name)
			}
		}
		out = append(out, status)
	}
	return out
}
