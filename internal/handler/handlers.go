package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/web-bootstrap/internal/config"
	"github.com/MKhiriev/web-bootstrap/internal/handler/http"
	"github.com/MKhiriev/web-bootstrap/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers around routes, the application
// router mounted under the configured API prefix.
func NewHandlers(routes nethttp.Handler, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if routes == nil {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(routes, cfg, logger),
	}, nil
}
