package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"formacao-backend/internal/handlers"
	"formacao-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	brandHandler *handlers.BrandHandler,
	trainingHandler *handlers.TrainingHandler,
	quizHandler *handlers.QuizHandler,
	progressHandler *handlers.ProgressHandler,
	adminHandler *handlers.AdminHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP); quiz generation gets its own
	// tighter budget since every call is a paid AI request.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)
	generateLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// ──── Catalog Routes ────
		r.Route("/brands", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", brandHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.RequireAdmin)
				r.Post("/", brandHandler.Create)
				r.Put("/{id}", brandHandler.Update)
				r.Delete("/{id}", brandHandler.Delete)
			})
		})

		r.Route("/trainings", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", trainingHandler.ListByBrand)
			r.Get("/{id}", trainingHandler.Get)

			// Learner progress
			r.Post("/{id}/watched", progressHandler.MarkWatched)
			r.Get("/{id}/progress", progressHandler.GetForTraining)

			// Quiz flow
			r.Group(func(r chi.Router) {
				r.Use(generateLimiter.Middleware)
				r.Post("/{id}/quiz/generate", quizHandler.Generate)
			})
			r.Post("/{id}/quiz/check", quizHandler.CheckAnswer)
			r.Post("/{id}/quiz/submit", quizHandler.Submit)

			// Admin content management
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.RequireAdmin)
				r.Post("/", trainingHandler.Create)
				r.Put("/{id}", trainingHandler.Update)
				r.Delete("/{id}", trainingHandler.Delete)
				r.Post("/{id}/transcript", trainingHandler.ExtractTranscript)
			})
		})

		// ──── Progress Routes ────
		r.Route("/progress", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", progressHandler.List)
		})

		// ──── Admin Routes ────
		r.Route("/admin", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Use(jwtAuth.RequireAdmin)
			r.Post("/claims", adminHandler.SetAdminClaim)
		})
	})

	return r
}
