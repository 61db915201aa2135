package http

import (
	"net/http"

	"github.com/MKhiriev/web-bootstrap/internal/config"
	"github.com/MKhiriev/web-bootstrap/internal/logger"
)

//go:generate mockgen -destination=../../mock/http_handler_mock.go -package=mock net/http Handler

// Handler assembles the inbound request pipeline around an application
// router mounted under the configured API prefix.
type Handler struct {
	routes http.Handler

	server config.Server
	body   config.Body

	logger *logger.Logger
}

func NewHandler(routes http.Handler, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		routes: routes,
		server: cfg.Server,
		body:   cfg.Body,
		logger: logger,
	}
}
