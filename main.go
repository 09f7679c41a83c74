package main

import (
	"log/slog"
	"os"
	"time"

	"tripplanner/config"
	"tripplanner/handlers"
	"tripplanner/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	sloggin "github.com/samber/slog-gin"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()

	searchClient, err := services.NewSerpClient(cfg.SerpAPIKey, logger)
	if err != nil {
		logger.Error("flight/hotel search unavailable", "error", err)
		os.Exit(1)
	}
	genClient, err := services.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, logger)
	if err != nil {
		logger.Error("itinerary generation unavailable", "error", err)
		os.Exit(1)
	}
	planner := services.NewPlanner(searchClient, genClient, logger)
	api := handlers.NewAPI(searchClient, planner)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		sloggin.NewWithConfig(logger.WithGroup("http"), sloggin.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
		}),
		gin.Recovery(),
	)

	// CORS — allow configured frontend origins
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	allowedOrigins = append(allowedOrigins, cfg.FrontendURLs...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Itinerary-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.Health)
		apiGroup.POST("/plan", api.Plan)
		apiGroup.POST("/plan/pdf", api.PlanPDF)
		apiGroup.POST("/flights", api.Flights)
		apiGroup.POST("/hotels", api.Hotels)
	}

	logger.Info("trip planner backend starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
