package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/techfolio/backend/adapters/email"
	"github.com/techfolio/backend/adapters/event"
	httpAdapter "github.com/techfolio/backend/adapters/http"
	"github.com/techfolio/backend/adapters/media_storage"
	"github.com/techfolio/backend/adapters/persistence"
	authUC "github.com/techfolio/backend/internal/application/usecase/auth"
	mediaUC "github.com/techfolio/backend/internal/application/usecase/media"
	portfolioUC "github.com/techfolio/backend/internal/application/usecase/portfolio"
	wizardUC "github.com/techfolio/backend/internal/application/usecase/wizard"
	"github.com/techfolio/backend/internal/config"
	"github.com/techfolio/backend/pkg/auth"
	"github.com/techfolio/backend/pkg/imageproc"
	"github.com/techfolio/backend/pkg/logger"
	"github.com/techfolio/backend/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "techfolio-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	// Backend clients, constructed once at startup and injected
	// everywhere they are needed.
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init uploader", err)
	}

	// Repositories and stores
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool, appLogger)
	resetTokenRepo := persistence.NewPostgresResetTokenRepo(dbPool)
	mediaRepo := persistence.NewPostgresMediaRepo(dbPool)
	sessionStore := persistence.NewRedisSessionStore(redisClient, cfg.Auth.SessionTTL)
	previewCache := persistence.NewRedisPreviewCache(redisClient, cfg.Auth.SessionTTL)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	mailer := email.NewSMTPMailer(cfg)
	compressor := imageproc.NewCompressor()

	// Use cases
	signupUseCase := authUC.NewSignupUseCase(userRepo, portfolioRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	resetUseCase := authUC.NewResetPasswordUseCase(userRepo, resetTokenRepo, mailer, appLogger, cfg.App.BaseURL, cfg.Auth.ResetTokenTTL)
	getPortfolioUseCase := portfolioUC.NewGetPortfolioUseCase(portfolioRepo)
	savePortfolioUseCase := portfolioUC.NewSavePortfolioUseCase(portfolioRepo, previewCache, kafkaClient, appLogger)
	publishUseCase := portfolioUC.NewPublishPortfolioUseCase(savePortfolioUseCase, kafkaClient, appLogger, cfg.App.BaseURL)
	previewUseCase := portfolioUC.NewPreviewUseCase(portfolioRepo, previewCache, appLogger, cfg.App.BaseURL)
	sessionUseCase := wizardUC.NewSessionUseCase(sessionStore, getPortfolioUseCase, savePortfolioUseCase, appLogger)
	profilePictureUseCase := mediaUC.NewSetProfilePictureUseCase(compressor, sessionUseCase, savePortfolioUseCase, appLogger)
	projectImageUseCase := mediaUC.NewUploadProjectImageUseCase(mediaRepo, uploader, appLogger)

	// HTTP handlers
	authHandler := httpAdapter.NewAuthHandler(signupUseCase, loginUseCase, resetUseCase)
	wizardHandler := httpAdapter.NewWizardHandler(sessionUseCase, publishUseCase)
	portfolioHandler := httpAdapter.NewPortfolioHandler(getPortfolioUseCase, savePortfolioUseCase)
	previewHandler := httpAdapter.NewPreviewHandler(previewUseCase)
	mediaHandler := httpAdapter.NewMediaHandler(profilePictureUseCase, projectImageUseCase)

	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	optionalAuth := httpAdapter.OptionalAuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/forgot-password", authHandler.ForgotPassword)
			authRoutes.POST("/reset-password", authHandler.ResetPassword)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(authMiddleware)
		{
			wizard := dashboard.Group("/wizard")
			{
				wizard.GET("", wizardHandler.Load)
				wizard.POST("/step", wizardHandler.Step)
				wizard.POST("/skills", wizardHandler.AddSkill)
				wizard.DELETE("/skills/:index", wizardHandler.RemoveSkill)
				wizard.POST("/projects", wizardHandler.AddProject)
				wizard.DELETE("/projects/:index", wizardHandler.RemoveProject)
				wizard.PUT("/draft", wizardHandler.UpdateDraft)
				wizard.POST("/save", wizardHandler.Save)
				wizard.POST("/publish", wizardHandler.Publish)
			}

			dashboard.GET("/portfolio", portfolioHandler.GetPortfolio)
			dashboard.PUT("/portfolio", portfolioHandler.UpdatePortfolio)
			dashboard.POST("/profile-picture", mediaHandler.SetProfilePicture)
			dashboard.POST("/media", mediaHandler.UploadProjectImage)
		}

		public := api.Group("/")
		public.Use(optionalAuth)
		{
			public.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "UP"}) })
			public.GET("/preview/:id", previewHandler.GetPreview)
			public.GET("/preview/:id/titles", previewHandler.StreamTitles)
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
