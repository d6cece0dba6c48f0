package transit_web

import (
	"net/url"
	"strings"
)

type TrainsQuery struct {
	Line string // empty for every line
}

func ParseTrainsQuery(values url.Values) TrainsQuery {
	line := strings.ToUpper(strings.TrimSpace(values.Get("line")))
	if line == "ALL" {
		line = ""
	}
	return TrainsQuery{Line: line}
}

type ArrivalsQuery struct {
	StationID string // empty for every station
}

func ParseArrivalsQuery(values url.Values) ArrivalsQuery {
	return ArrivalsQuery{StationID: strings.TrimSpace(values.Get("station"))}
}
