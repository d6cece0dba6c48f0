package transit_web

import (
	"bytes"
	"log"
	"net/http"
	"strings"
)

type Page struct {
	Path        string
	Label       string
	FooterLabel string
	Icon        string
	Heading     string
	Template    string
}

// Pages are the registered site routes, in navigation order.
var Pages = []Page{
	{Path: "/", Label: "Home", FooterLabel: "Home", Icon: "\U0001F686", Heading: "Welcome to NYC Transit Hub", Template: "home.html"},
	{Path: "/map", Label: "Map", FooterLabel: "Real-time Map", Icon: "\U0001F5FA", Heading: "NYC Transit Real-Time Map", Template: "map.html"},
	{Path: "/arrivals", Label: "Arrivals", FooterLabel: "Arrival time", Icon: "\U0001F552", Heading: "Upcoming Arrivals", Template: "arrivals.html"},
	{Path: "/status", Label: "Status", FooterLabel: "Service Status", Icon: "⚠", Heading: "Subway Service Status", Template: "status.html"},
	{Path: "/account", Label: "Account", FooterLabel: "User Account", Icon: "\U0001F464", Heading: "My Account", Template: "account.html"},
}

func (server *TransitWebServer) handlePage(page Page) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		content, err := server.pageContent(page, request)
		if err != nil {
			server.renderFailed(writer, page.Template, err)
			return
		}
		server.renderPage(writer, request, page, content)
	}
}

func (server *TransitWebServer) pageContent(page Page, request *http.Request) (any, error) {
	switch page.Template {
	case "home.html":
		return BuildHomePageVM(server.catalog), nil
	case "map.html":
		return BuildMapPageVM(server.mapDocument, server.cfg.Map.LeafletURL)
	case "arrivals.html":
		return BuildArrivalsPageVM(server.catalog, ParseArrivalsQuery(request.URL.Query())), nil
	case "status.html":
		return BuildStatusPageVM(server.catalog, server.now()), nil
	}
	return nil, nil
}

func (server *TransitWebServer) renderPage(writer http.ResponseWriter, request *http.Request, page Page, content any) {
	nonce := server.newNonce()
	viewmodel := BuildPageVM(page, request.URL.Path, server.now(), nonce, content)

	var body bytes.Buffer
	if err := server.renderer.Render(&body, page.Template, viewmodel); err != nil {
		server.renderFailed(writer, page.Template, err)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Header().Set("Content-Security-Policy", server.contentSecurityPolicy(nonce))
	writer.Header().Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(http.StatusOK)
	body.WriteTo(writer)

	if server.metrics != nil {
		server.metrics.PageRendersTotal.WithLabelValues(strings.TrimSuffix(page.Template, ".html")).Inc()
	}
}

func (server *TransitWebServer) renderFailed(writer http.ResponseWriter, template string, err error) {
	log.Printf("render %s: %v", template, err)
	if server.metrics != nil {
		server.metrics.RenderErrorsTotal.WithLabelValues(template).Inc()
	}
	http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (server *TransitWebServer) contentSecurityPolicy(nonce string) string {
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' " + server.leafletOrigin + " 'nonce-" + nonce + "'",
		"style-src 'self' 'unsafe-inline' " + server.leafletOrigin,
		"img-src 'self' data: https:",
		"connect-src 'self'",
	}, "; ")
}

// handleUnmatched sends every unregistered path back to the home page.
func (server *TransitWebServer) handleUnmatched(writer http.ResponseWriter, request *http.Request) {
	http.Redirect(writer, request, "/", http.StatusFound)
}
