package routes

import (
	"net/http"

	"github.com/MKhiriev/web-bootstrap/internal/logger"
	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

const echoKindNone = "none"

type echoResponse struct {
	Kind string `json:"kind"`
	Body any    `json:"body"`
}

// echo returns the body decoded by the pipeline's parsers.
func (h *handler) echo(w http.ResponseWriter, r *http.Request) {
	resp := echoResponse{Kind: echoKindNone, Body: map[string]any{}}

	if body, ok := utils.GetParsedBodyFromContext(r.Context()); ok {
		resp.Kind = string(body.Kind)
		resp.Body = body.Value
	}

	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing echo response")
	}
}
