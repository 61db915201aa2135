package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/web-bootstrap/internal/logger"
	"github.com/MKhiriev/web-bootstrap/models"
)

type handler struct {
	version string
	logger  *logger.Logger
}

// New returns the router for build info. A non-empty version overrides the
// build version reported by GET /version.
func New(buildInfo models.AppBuildInfo, version string, logger *logger.Logger) *chi.Mux {
	if version == "" {
		version = buildInfo.BuildVersion()
	}
	h := &handler{version: version, logger: logger}

	router := chi.NewRouter()
	router.Get("/version", h.getVersion)
	router.Get("/health", h.getHealth)
	router.Post("/echo", h.echo)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	logger.Info().Str("version", version).Msg("api routes registered")
	return router
}
