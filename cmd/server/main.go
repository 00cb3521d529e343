package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"placepilot/internal/auth"
	"placepilot/internal/config"
	"placepilot/internal/handler"
	"placepilot/internal/repository"
	"placepilot/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("PlacePilot recommendation server")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	// Database
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}
	log.Println("Connected to PostgreSQL database")

	// External clients
	var llm service.TextCompleter
	if cfg.Gemini.Enabled {
		llm = service.NewGeminiClient(&cfg.Gemini)
		log.Printf("Gemini client initialized (model: %s)", cfg.Gemini.Model)
	} else {
		log.Println("Gemini is disabled - intent extraction will use the fallback intent")
		log.Println("Set GEMINI_API_KEY environment variable to enable extraction")
	}

	if !cfg.Mapbox.Enabled {
		log.Println("Warning: MAPBOX_TOKEN not set - venue search will return no results")
	}
	venues := service.NewMapboxClient(&cfg.Mapbox)

	// Pipeline stages
	intentNormalizer := service.NewIntentNormalizer(llm)
	planner := service.NewPlanner()
	traffic := service.NewTrafficNormalizer(cfg.Scoring.MaxAcceptableMinutes)
	crowd := service.NewCrowdEstimator()
	personalizer := service.NewPersonalizer()
	scorer := service.NewScorer(cfg.Scoring)
	explainer := service.NewExplainer()

	recommender := service.NewRecommendService(
		intentNormalizer, planner, venues, traffic, crowd,
		personalizer, scorer, explainer, repo,
		cfg.Recommend.PerCategoryLimit, cfg.Recommend.MaxResults,
	)
	booking := service.NewBookingService()

	log.Println("Services initialized")

	// Auth
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMins)

	// Handlers
	authHandler := handler.NewAuthHandler(repo, tokens)
	recommendHandler := handler.NewRecommendHandler(recommender)
	userHandler := handler.NewUserHandler(repo)
	bookingHandler := handler.NewBookingHandler(booking, repo)

	// Router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "placepilot",
			"version": Version,
		})
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/auth/signup", authHandler.Signup)
		apiV1.POST("/auth/login", authHandler.Login)

		apiV1.POST("/places/recommend", handler.OptionalAuth(tokens), recommendHandler.Recommend)

		userGroup := apiV1.Group("/user", handler.RequireAuth(tokens))
		{
			userGroup.GET("/preferences", userHandler.GetPreferences)
			userGroup.POST("/visited", userHandler.AddVisited)
			userGroup.POST("/affinity", userHandler.BumpAffinity)
		}

		bookingGroup := apiV1.Group("/booking", handler.RequireAuth(tokens))
		{
			bookingGroup.POST("/evaluate", bookingHandler.Evaluate)
			bookingGroup.POST("/create", bookingHandler.Create)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}
