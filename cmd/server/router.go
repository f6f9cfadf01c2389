package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/WandLZhang/chinese-conversation/internal/api"
	apiMiddleware "github.com/WandLZhang/chinese-conversation/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(apiMiddleware.TraceMiddleware)

	// Browser clients call the API directly; preflight requests answer 204.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders:       []string{"Content-Type"},
		MaxAge:               3600,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	r.Use(corsHandler.Handler)

	evaluateHandler := api.NewEvaluateHandler(app.vocabStore, app.evaluator, app.logger)
	reviewHandler := api.NewReviewHandler(app.vocabStore, app.logger)
	questionHandler := api.NewQuestionHandler(app.vocabStore, app.generator, app.synthesizer, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", evaluateHandler.Evaluate)
		r.Post("/review-time", reviewHandler.OverrideReview)
		r.Post("/mastered", reviewHandler.SetMastered)
		r.Post("/questions", questionHandler.GenerateQuestion)
		r.Post("/audio", questionHandler.GenerateAudio)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
