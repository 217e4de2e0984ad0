// Package handlers contains the host application's http handlers.
package handlers

import (
	"net/http"

	"myregistrar/helpers"
	"myregistrar/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// HTTPServer serves the host application's own endpoints: the health URL announced to the registry, the
// registration status and the metrics.
type HTTPServer struct {
	status interfaces.StatusProvider
	logger log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil status or logger.
func NewHTTPServer(status interfaces.StatusProvider, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer")
	return &HTTPServer{
		status: helpers.NilPanic(status, "handlers.http.go: status provider is required"),
		logger: logger,
	}
}

// RegisterHandlers mounts GET /health, GET /registration and GET /metrics on e. Metrics are served from gatherer.
func RegisterHandlers(e *echo.Echo, server *HTTPServer, gatherer prometheus.Gatherer) {
	e.GET("/health", server.Health)
	e.GET("/registration", server.Registration)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// Health (GET /health) always reports UP while the process serves requests.
func (h *HTTPServer) Health(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, HealthResponse{Status: "UP"})
}

// Registration (GET /registration) returns the registration status snapshot.
func (h *HTTPServer) Registration(ectx echo.Context) error {
	status := h.status.Status()
	level.Debug(h.logger).Log("msg", "registration status requested", "state", status.State)
	return ectx.JSON(http.StatusOK, status)
}
