package transit_web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

const (
	stationMarkerSize = 14
	trainMarkerSize   = 18

	mapIntro = "Track live locations of subways and buses. Click on markers for detailed information."
)

func MapLegend() []LegendItem {
	return []LegendItem{
		{Label: "Subway Station", Color: transit.BrandColor},
		{Label: "Delayed Station", Color: transit.AlertColor},
		{Label: "Live Train", Color: transit.LiveTrainColor},
	}
}

func BuildIconAssets(leafletURL string) IconAssets {
	images := strings.TrimSuffix(leafletURL, "/") + "/images/"
	return IconAssets{
		IconURL:       images + "marker-icon.png",
		IconRetinaURL: images + "marker-icon-2x.png",
		ShadowURL:     images + "marker-shadow.png",
	}
}

func BuildStationPopupVM(catalog *transit.Catalog, station transit.Station) StationPopupVM {
	lines := station.Lines()
	badges := make([]LineBadgeVM, 0, len(lines))
	for _, line := range lines {
		badges = append(badges, LineBadgeVM{
			ID:    line,
			Color: catalog.LineColorOr(line, transit.BrandColor),
		})
	}

	return StationPopupVM{
		Name:        station.Name,
		Lines:       badges,
		StatusLabel: station.Status.Label(),
		Delayed:     station.Delayed(),
	}
}

func BuildTrainPopupVM(catalog *transit.Catalog, train transit.Train) TrainPopupVM {
	return TrainPopupVM{
		ID:        train.ID,
		Line:      train.Line,
		Color:     catalog.TrainMarkerColor(train),
		Direction: train.Direction,
		Speed:     train.Speed,
	}
}

// BuildMapDocument resolves marker colors and renders popup markup for every
// station and train so the browser only has to place them.
func BuildMapDocument(catalog *transit.Catalog, cfg MapConfig, renderer *Renderer) (MapDocument, error) {
	doc := MapDocument{
		Center:      [2]float64{cfg.CenterLat, cfg.CenterLng},
		Zoom:        cfg.Zoom,
		TileURL:     cfg.TileURL,
		Attribution: cfg.Attribution,
		Icons:       BuildIconAssets(cfg.LeafletURL),
		Legend:      MapLegend(),
	}

	stations := catalog.Stations()
	doc.Stations = make([]MarkerVM, 0, len(stations))
	for _, station := range stations {
		popup, err := renderer.RenderFragment("station_popup.html", BuildStationPopupVM(catalog, station))
		if err != nil {
			return MapDocument{}, fmt.Errorf("station %s popup: %w", station.ID, err)
		}
		doc.Stations = append(doc.Stations, MarkerVM{
			ID:       station.ID,
			Kind:     "station",
			Position: [2]float64{station.Lat, station.Lng},
			Color:    station.MarkerColor(),
			Size:     stationMarkerSize,
			Title:    station.Name,
			Popup:    popup,
		})
	}

	trains := catalog.Trains()
	doc.Trains = make([]MarkerVM, 0, len(trains))
	for _, train := range trains {
		popup, err := renderer.RenderFragment("train_popup.html", BuildTrainPopupVM(catalog, train))
		if err != nil {
			return MapDocument{}, fmt.Errorf("train %s popup: %w", train.ID, err)
		}
		doc.Trains = append(doc.Trains, MarkerVM{
			ID:       train.ID,
			Kind:     "train",
			Position: [2]float64{train.Lat, train.Lng},
			Color:    catalog.TrainMarkerColor(train),
			Size:     trainMarkerSize,
			Title:    fmt.Sprintf("Train %s (Line %s)", train.ID, train.Line),
			Popup:    popup,
		})
	}

	overlays := catalog.Overlays()
	doc.Circles = make([]CircleVM, 0, len(overlays))
	for _, overlay := range overlays {
		doc.Circles = append(doc.Circles, CircleVM{
			Name:        overlay.Name,
			Center:      [2]float64{overlay.Lat, overlay.Lng},
			Radius:      overlay.Radius,
			Color:       overlay.Color,
			FillOpacity: overlay.FillOpacity,
			Weight:      overlay.Weight,
		})
	}

	return doc, nil
}

func BuildMapPageVM(doc MapDocument, leafletURL string) (MapPageVM, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return MapPageVM{}, err
	}

	// json.Marshal escapes <, > and &, so the payload cannot close the script element.
	return MapPageVM{
		Intro:        mapIntro,
		LeafletURL:   strings.TrimSuffix(leafletURL, "/"),
		Legend:       doc.Legend,
		DocumentJSON: template.JS(encoded),
	}, nil
}
