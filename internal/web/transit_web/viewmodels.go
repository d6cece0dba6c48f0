package transit_web

import "html/template"

type PageVM struct {
	Title   string
	Heading string
	Nav     []NavItemVM
	Footer  FooterVM
	Nonce   string
	Content any
}

type NavItemVM struct {
	Path   string
	Label  string
	Icon   string
	Active bool
}

type FooterVM struct {
	Links         []NavItemVM
	DataSourceURL string
	Year          int
}

type HomePageVM struct {
	StationCount int
	TrainCount   int
	LineCount    int
	DelayedCount int
	Features     []FeatureVM
}

type FeatureVM struct {
	Title       string
	Description string
	Path        string
}

type MapPageVM struct {
	Intro        string
	LeafletURL   string
	Legend       []LegendItem
	DocumentJSON template.JS
}

// MapDocument is everything the browser needs to draw the map; served
// embedded in /map and standalone at /api/map.
type MapDocument struct {
	Center      [2]float64   `json:"center"`
	Zoom        int          `json:"zoom"`
	TileURL     string       `json:"tileUrl"`
	Attribution string       `json:"attribution"`
	Icons       IconAssets   `json:"icons"`
	Stations    []MarkerVM   `json:"stations"`
	Trains      []MarkerVM   `json:"trains"`
	Circles     []CircleVM   `json:"circles"`
	Legend      []LegendItem `json:"legend"`
}

type IconAssets struct {
	IconURL       string `json:"iconUrl"`
	IconRetinaURL string `json:"iconRetinaUrl"`
	ShadowURL     string `json:"shadowUrl"`
}

type MarkerVM struct {
	ID       string     `json:"id"`
	Kind     string     `json:"kind"`
	Position [2]float64 `json:"position"`
	Color    string     `json:"color"`
	Size     int        `json:"size"`
	Title    string     `json:"title"`
	Popup    string     `json:"popup"`
}

type CircleVM struct {
	Name        string     `json:"name"`
	Center      [2]float64 `json:"center"`
	Radius      float64    `json:"radius"`
	Color       string     `json:"color"`
	FillOpacity float64    `json:"fillOpacity"`
	Weight      int        `json:"weight"`
}

type LegendItem struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type StationPopupVM struct {
	Name        string
	Lines       []LineBadgeVM
	StatusLabel string
	Delayed     bool
}

type TrainPopupVM struct {
	ID        string
	Line      string
	Color     string
	Direction string
	Speed     string
}

type LineBadgeVM struct {
	ID    string
	Color string
}

type ArrivalsPageVM struct {
	Stations        []StationOptionVM
	SelectedStation string
	Notice          string
	Rows            []ArrivalRowVM
}

type StationOptionVM struct {
	ID       string
	Name     string
	Selected bool
}

type ArrivalRowVM struct {
	Station   string
	Line      LineBadgeVM
	Direction string
	ETA       string
}

type StatusPageVM struct {
	Summary   string
	UpdatedAt string
	Rows      []LineStatusRowVM
}

type LineStatusRowVM struct {
	Line    LineBadgeVM
	Label   string
	Delayed bool
	Message string
}
