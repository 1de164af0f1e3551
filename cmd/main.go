package main

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/careersynapse/backend/internal/clients/mail"
	redisclient "github.com/careersynapse/backend/internal/clients/redis"
	"github.com/careersynapse/backend/internal/db"
	"github.com/careersynapse/backend/internal/handlers"
	"github.com/careersynapse/backend/internal/inference"
	"github.com/careersynapse/backend/internal/logger"
	"github.com/careersynapse/backend/internal/middleware"
	"github.com/careersynapse/backend/internal/repos"
	"github.com/careersynapse/backend/internal/server"
	"github.com/careersynapse/backend/internal/services"
	"github.com/careersynapse/backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	mode := utils.GetEnv("GIN_MODE", "debug", nil)
	log, err := logger.New(mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	clientURL := utils.GetEnv("CLIENT_URL", "http://localhost:3000", log)
	port := utils.GetEnv("PORT", "5000", log)
	jwtSecret := utils.GetEnv("JWT_SECRET", "", log)
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	sessionTTL := utils.GetEnvAsDuration("SESSION_TTL", 7*24*time.Hour, log)

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Failed to connect to postgres", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}
	gormDB := postgresService.DB()

	userRepo := repos.NewUserRepo(gormDB, log)
	analysisRepo := repos.NewCareerAnalysisRepo(gormDB, log)
	chatStateRepo := repos.NewChatStateRepo(gormDB, log)

	var cache redisclient.Cache
	if redisAddr := utils.GetEnv("REDIS_ADDR", "", log); redisAddr != "" {
		cache, err = redisclient.NewCache(log, redisAddr)
		if err != nil {
			log.Warn("Redis unavailable, insights caching disabled", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	mailClient, err := mail.New(log, mail.Config{
		APIKey:    utils.GetEnv("MAIL_API_KEY", "", log),
		BaseURL:   utils.GetEnv("MAIL_BASE_URL", "", log),
		FromEmail: utils.GetEnv("MAIL_FROM_EMAIL", "", log),
		FromName:  utils.GetEnv("MAIL_FROM_NAME", "Career Synapse", log),
	})
	if err != nil {
		log.Fatal("Failed to build mail client", "error", err)
	}

	inferenceClient, err := inference.NewClient(log, inference.Config{
		PredictURL: utils.GetEnv("MODEL_PREDICT_URL", "", log),
		AnalyzeURL: utils.GetEnv("MODEL_ANALYZE_URL", "", log),
		ChatURL:    utils.GetEnv("MODEL_CHAT_URL", "", log),
	})
	if err != nil {
		log.Fatal("Failed to build inference client", "error", err)
	}

	authService := services.NewAuthService(gormDB, log, userRepo, mailClient, jwtSecret, sessionTTL)
	oauthService := services.NewOAuthService(gormDB, log, userRepo, authService, services.OAuthConfig{
		GoogleClientID:     utils.GetEnv("GOOGLE_CLIENT_ID", "", log),
		GoogleClientSecret: utils.GetEnv("GOOGLE_CLIENT_SECRET", "", log),
		GithubClientID:     utils.GetEnv("GITHUB_CLIENT_ID", "", log),
		GithubClientSecret: utils.GetEnv("GITHUB_CLIENT_SECRET", "", log),
		CallbackBaseURL:    utils.GetEnv("SERVER_URL", "http://localhost:"+port, log),
	})
	analysisService := services.NewAnalysisService(gormDB, log, analysisRepo, inferenceClient, cache)
	insightsService := services.NewInsightsService(gormDB, log, userRepo, analysisRepo, cache)
	chatService := services.NewChatService(gormDB, log, chatStateRepo, inferenceClient)

	router := server.NewRouter(server.RouterConfig{
		Mode:           mode,
		ClientURL:      clientURL,
		Log:            log,
		AuthMiddleware: middleware.NewAuthMiddleware(authService, log),

		AuthHandler:           handlers.NewAuthHandler(log, authService, oauthService, clientURL),
		AnalysisHandler:       handlers.NewAnalysisHandler(log, analysisService),
		PDFHandler:            handlers.NewPDFHandler(log, analysisService),
		CareerAnalysisHandler: handlers.NewCareerAnalysisHandler(log, analysisService),
		InsightsHandler:       handlers.NewInsightsHandler(log, insightsService),
		ChatbotHandler:        handlers.NewChatbotHandler(log, chatService),
		HealthcheckHandler:    handlers.NewHealthcheckHandler(),
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
