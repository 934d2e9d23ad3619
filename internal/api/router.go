package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/SyntaxStrategist/genuity-ai/docs"
	"github.com/SyntaxStrategist/genuity-ai/internal/api/handler"
	"github.com/SyntaxStrategist/genuity-ai/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler           *handler.UserHandler
	moodEntryHandler      *handler.MoodEntryHandler
	insightsHandler       *handler.InsightsHandler
	accountabilityHandler *handler.AccountabilityHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	moodEntryHandler *handler.MoodEntryHandler,
	insightsHandler *handler.InsightsHandler,
	accountabilityHandler *handler.AccountabilityHandler,
) *Router {
	return &Router{
		userHandler:           userHandler,
		moodEntryHandler:      moodEntryHandler,
		insightsHandler:       insightsHandler,
		accountabilityHandler: accountabilityHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Mood entries (nested under users)
			r.Route("/{userId}/entries", func(r chi.Router) {
				r.Post("/", rt.moodEntryHandler.Create)
				r.Get("/", rt.moodEntryHandler.List)
				r.Delete("/{entryId}", rt.moodEntryHandler.Delete)
				r.Patch("/{entryId}/health", rt.moodEntryHandler.UpdateHealth)
			})

			r.Get("/{userId}/mood/summary", rt.moodEntryHandler.Summary)

			// Pattern and prediction insights
			r.Get("/{userId}/patterns", rt.insightsHandler.GetPatterns)
			r.Route("/{userId}/predictions", func(r chi.Router) {
				r.Post("/", rt.insightsHandler.CreatePrediction)
				r.Get("/", rt.insightsHandler.ListPredictions)
			})
			r.Post("/{userId}/plans/feedback", rt.insightsHandler.PostPlanFeedback)

			// Accountability loop
			r.Route("/{userId}/accountability", func(r chi.Router) {
				r.Get("/", rt.accountabilityHandler.List)
				r.Post("/{checkId}/follow-up", rt.accountabilityHandler.SubmitFollowUp)
			})
			r.Get("/{userId}/effectiveness", rt.accountabilityHandler.ListReports)
		})
	})

	return r
}
