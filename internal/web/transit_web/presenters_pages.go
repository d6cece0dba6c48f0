package transit_web

import (
	"fmt"
	"time"

	"github.com/Shreyas191/nyc-transit-hub/internal/transit"
)

const dataSourceURL = "https://api.mta.info"

func BuildPageVM(page Page, requestPath string, now time.Time, nonce string, content any) PageVM {
	nav := make([]NavItemVM, 0, len(Pages))
	links := make([]NavItemVM, 0, len(Pages))
	for _, candidate := range Pages {
		nav = append(nav, NavItemVM{
			Path:   candidate.Path,
			Label:  candidate.Label,
			Icon:   candidate.Icon,
			Active: candidate.Path == requestPath,
		})
		links = append(links, NavItemVM{
			Path:  candidate.Path,
			Label: candidate.FooterLabel,
		})
	}

	return PageVM{
		Title:   page.Label + " | NYC TRANSIT HUB",
		Heading: page.Heading,
		Nav:     nav,
		Footer: FooterVM{
			Links:         links,
			DataSourceURL: dataSourceURL,
			Year:          now.Year(),
		},
		Nonce:   nonce,
		Content: content,
	}
}

func BuildHomePageVM(catalog *transit.Catalog) HomePageVM {
	stations := catalog.Stations()
	delayed := 0
	for _, station := range stations {
		if station.Delayed() {
			delayed++
		}
	}

	return HomePageVM{
		StationCount: len(stations),
		TrainCount:   len(catalog.Trains()),
		LineCount:    len(catalog.Lines()),
		DelayedCount: delayed,
		Features: []FeatureVM{
			{Title: "Real-time Map", Description: "See stations and trains plotted across Manhattan.", Path: "/map"},
			{Title: "Arrival time", Description: "Check when the next trains reach your station.", Path: "/arrivals"},
			{Title: "Service Status", Description: "Find out which lines are running with delays.", Path: "/status"},
		},
	}
}

func formatETA(minutes int) string {
	switch {
	case minutes <= 0:
		return "Arriving"
	case minutes == 1:
		return "1 min"
	}
	return fmt.Sprintf("%d min", minutes)
}

func BuildArrivalsPageVM(catalog *transit.Catalog, query ArrivalsQuery) ArrivalsPageVM {
	stations := catalog.Stations()
	vm := ArrivalsPageVM{
		Stations:        make([]StationOptionVM, 0, len(stations)),
		SelectedStation: query.StationID,
	}
	for _, station := range stations {
		vm.Stations = append(vm.Stations, StationOptionVM{
			ID:       station.ID,
			Name:     station.Name,
			Selected: station.ID == query.StationID,
		})
	}

	if query.StationID != "" {
		if _, err := catalog.Station(query.StationID); err != nil {
			vm.Notice = fmt.Sprintf("No station with id %q. Pick one from the list.", query.StationID)
			vm.Rows = []ArrivalRowVM{}
			return vm
		}
	}

	arrivals := catalog.Arrivals(query.StationID)
	vm.Rows = make([]ArrivalRowVM, 0, len(arrivals))
	for _, arrival := range arrivals {
		station, err := catalog.Station(arrival.StationID)
		if err != nil {
			continue
		}
		vm.Rows = append(vm.Rows, ArrivalRowVM{
			Station: station.Name,
			Line: LineBadgeVM{
				ID:    arrival.Line,
				Color: catalog.LineColorOr(arrival.Line, transit.BrandColor),
			},
			Direction: arrival.Direction,
			ETA:       formatETA(arrival.Minutes),
		})
	}
	if len(vm.Rows) == 0 {
		vm.Notice = "No upcoming trains."
	}
	return vm
}

func BuildStatusPageVM(catalog *transit.Catalog, now time.Time) StatusPageVM {
	statuses := catalog.LineStatuses()
	vm := StatusPageVM{
		UpdatedAt: now.Format("15:04:05"),
		Rows:      make([]LineStatusRowVM, 0, len(statuses)),
	}

	delayed := 0
	for _, status := range statuses {
		if status.Delayed() {
			delayed++
		}
		vm.Rows = append(vm.Rows, LineStatusRowVM{
			Line:    LineBadgeVM{ID: status.Line.ID, Color: status.Line.Color},
			Label:   status.Label(),
			Delayed: status.Delayed(),
			Message: status.Message(),
		})
	}

	switch delayed {
	case 0:
		vm.Summary = "Good service on all lines."
	case 1:
		vm.Summary = "1 line is reporting delays."
	default:
		vm.Summary = fmt.Sprintf("%d lines are reporting delays.", delayed)
	}
	return vm
}
