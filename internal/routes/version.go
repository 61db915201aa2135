package routes

import (
	"net/http"

	"github.com/MKhiriev/web-bootstrap/internal/utils"
)

func (h *handler) getVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(h.version))
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *handler) getHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, healthResponse{Status: "ok"}, http.StatusOK)
}
