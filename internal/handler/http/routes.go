package http

import (
	"github.com/go-chi/chi/v5"
)

// Init builds the pipeline: every stage of [Handler.pipeline] in order, then
// the application router under the API prefix, then the not-found fallback.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	stages := h.pipeline()
	names := make([]string, 0, len(stages)+2)
	for _, s := range stages {
		router.Use(s.middleware)
		names = append(names, s.name)
	}

	router.Mount(h.server.APIPrefix, mountPrefix(h.server.APIPrefix, h.routes))
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)
	names = append(names, stageAPIMount, stageNotFound)

	h.logger.Info().
		Strs("stages", names).
		Str("api_prefix", h.server.APIPrefix).
		Str("static_dir", h.server.StaticDir).
		Msg("request pipeline built")

	return router
}
