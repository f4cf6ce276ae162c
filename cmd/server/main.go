package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formacao-backend/internal/config"
	"formacao-backend/internal/database"
	"formacao-backend/internal/handlers"
	"formacao-backend/internal/middleware"
	"formacao-backend/internal/repository"
	"formacao-backend/internal/router"
	"formacao-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Formação Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	brandRepo := repository.NewBrandRepo(pool)
	trainingRepo := repository.NewTrainingRepo(pool)
	quizRepo := repository.NewQuizRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)

	// ──── Step 5: Initialize Gemini Client ────
	// The API key is optional: without it quiz generation reports a
	// precondition failure but the rest of the API works.
	var generator services.ContentGenerator
	var geminiService *services.GeminiService
	if cfg.GeminiAPIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		generator = geminiService
		log.Println("✓ Gemini Flash client initialized")
	} else {
		log.Println("⚠ GEMINI_API_KEY not set, AI quiz generation disabled")
	}

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg)
	sessionStore := services.NewSessionStore(redisClient)
	authService := services.NewAuthService(userRepo, jwtAuth, cfg.AllowedEmailDomain)
	contentService := services.NewContentService(brandRepo, trainingRepo)
	transcriptService := services.NewTranscriptService(trainingRepo)
	progressService := services.NewProgressService(progressRepo, trainingRepo)
	quizService := services.NewQuizService(
		trainingRepo,
		quizRepo,
		progressRepo,
		userRepo,
		sessionStore,
		generator,
		emailService,
		cfg.PassThreshold,
	)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	brandHandler := handlers.NewBrandHandler(contentService)
	trainingHandler := handlers.NewTrainingHandler(contentService, transcriptService)
	quizHandler := handlers.NewQuizHandler(quizService)
	progressHandler := handlers.NewProgressHandler(progressService)
	adminHandler := handlers.NewAdminHandler(authService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		brandHandler,
		trainingHandler,
		quizHandler,
		progressHandler,
		adminHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Formação Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
