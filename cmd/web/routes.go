package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/AdamBeresnev/tba-match-widget/internal/config"
	"github.com/AdamBeresnev/tba-match-widget/internal/httputil"
	"github.com/AdamBeresnev/tba-match-widget/internal/metrics"
	"github.com/AdamBeresnev/tba-match-widget/internal/middleware"
	"github.com/AdamBeresnev/tba-match-widget/internal/service"
	"github.com/AdamBeresnev/tba-match-widget/views"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type matchViewer interface {
	GetMatchViewData(ctx context.Context, rc service.RenderContext) (*service.MatchData, error)
}

func newRouter(cfg *config.Config, matchService matchViewer, recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	r.Use(middleware.Metrics(recorder))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.NotFound(w, "Not found", nil)
	})

	r.Handle("/metrics", recorder.Handler())

	r.Route(cfg.PathPrefix, func(r chi.Router) {
		// GET /matches?eventKey=2025onnob&teamKey=frc1334&sort=date
		r.Get("/matches", func(w http.ResponseWriter, r *http.Request) {
			rc, err := service.ParseRenderContext(r.URL.Query())
			if err != nil {
				var validationErr *service.ValidationError
				if errors.As(err, &validationErr) {
					httputil.BadRequest(w, validationErr.Error(), nil)
					return
				}
				httputil.BadRequest(w, "Invalid query", err)
				return
			}

			data, err := matchService.GetMatchViewData(r.Context(), rc)
			if err != nil {
				httputil.InternalServerError(w, "Failed to fetch matches", err)
				return
			}

			body, err := views.RenderBytes(r.Context(), views.MatchesPage(views.PrepareMatchesPage(data, rc)))
			if err != nil {
				httputil.InternalServerError(w, "Failed to render matches", err)
				return
			}
			httputil.HTML(w, body)
		})

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		})
	})

	return r
}
