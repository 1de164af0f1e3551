package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/careersynapse/backend/internal/handlers"
	"github.com/careersynapse/backend/internal/logger"
)

type RouterConfig struct {
	Mode      string
	ClientURL string
	Log       *logger.Logger

	AuthMiddleware gin.HandlerFunc

	AuthHandler           *handlers.AuthHandler
	AnalysisHandler       *handlers.AnalysisHandler
	PDFHandler            *handlers.PDFHandler
	CareerAnalysisHandler *handlers.CareerAnalysisHandler
	InsightsHandler       *handlers.InsightsHandler
	ChatbotHandler        *handlers.ChatbotHandler
	HealthcheckHandler    *handlers.HealthcheckHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")

	api.GET("/health", cfg.HealthcheckHandler.Healthcheck)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", cfg.AuthHandler.Signup)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
		auth.POST("/verify-otp", cfg.AuthHandler.VerifyOTP)
		auth.POST("/reset-password", cfg.AuthHandler.ResetPassword)
		auth.GET("/google", cfg.AuthHandler.OAuthRedirect("google"))
		auth.GET("/google/callback", cfg.AuthHandler.OAuthCallback("google"))
		auth.GET("/github", cfg.AuthHandler.OAuthRedirect("github"))
		auth.GET("/github/callback", cfg.AuthHandler.OAuthCallback("github"))
	}

	analysis := api.Group("/analysis", cfg.AuthMiddleware)
	{
		analysis.POST("/create", cfg.AnalysisHandler.Create)
		analysis.GET("/user-analyses", cfg.AnalysisHandler.UserAnalyses)
		analysis.GET("/:id", cfg.AnalysisHandler.GetByID)
		analysis.DELETE("/:id", cfg.AnalysisHandler.Delete)
	}

	pdf := api.Group("/pdf", cfg.AuthMiddleware)
	{
		pdf.POST("/analyze", cfg.PDFHandler.Analyze)
	}

	careerAnalysis := api.Group("/career-analysis", cfg.AuthMiddleware)
	{
		careerAnalysis.POST("/create", cfg.CareerAnalysisHandler.Create)
		careerAnalysis.POST("/profile/submit", cfg.CareerAnalysisHandler.SubmitProfile)
		careerAnalysis.GET("/user", cfg.CareerAnalysisHandler.User)
		careerAnalysis.GET("/latest", cfg.CareerAnalysisHandler.Latest)
		careerAnalysis.GET("/:id", cfg.CareerAnalysisHandler.GetByID)
		careerAnalysis.PUT("/skill/:skillId/complete", cfg.CareerAnalysisHandler.CompleteSkill)
	}

	insights := api.Group("/insights", cfg.AuthMiddleware)
	{
		insights.GET("/data", cfg.InsightsHandler.Data)
		insights.GET("/report/pdf", cfg.InsightsHandler.ReportPDF)
		insights.GET("/report/json", cfg.InsightsHandler.ReportJSON)
	}

	chatbot := api.Group("/chatbot")
	{
		chatbot.POST("/message", cfg.AuthMiddleware, cfg.ChatbotHandler.Message)
		chatbot.GET("/status", cfg.ChatbotHandler.Status)
	}

	return router
}
