package transit_web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// instrument records request counts and latency keyed by the matched chi route pattern.
func (server *TransitWebServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if server.metrics == nil {
			next.ServeHTTP(writer, request)
			return
		}

		start := time.Now()
		wrapped := middleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(wrapped, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}

		server.metrics.HttpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		server.metrics.HttpRequestSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
