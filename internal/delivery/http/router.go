package http //nolint:revive // directory-based package name, imported with alias

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Xausdorf/vietqr-hub/internal/infrastructure/metrics"
)

const requestTimeout = 30 * time.Second

func NewRouter(h *Handler, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Instrument(m))
	r.Use(middleware.Timeout(requestTimeout))

	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/banks", h.HandleBanks)
		r.Post("/qr", h.HandleEncode)
		r.Get("/qr/{account_id}", h.HandleQR)
		r.Get("/qr/{account_id}/payload", h.HandlePayload)
	})

	return r
}
