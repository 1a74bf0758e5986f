package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	configs "github.com/sportsconnect/api/config"
	"github.com/sportsconnect/api/internal/handler"
	"github.com/sportsconnect/api/internal/middleware"
	"github.com/sportsconnect/api/internal/repository"
	"github.com/sportsconnect/api/internal/router"
	"github.com/sportsconnect/api/internal/service"
	"github.com/sportsconnect/api/internal/validation"
	"github.com/sportsconnect/api/pkg/circuit"
	"github.com/sportsconnect/api/pkg/database"
	"github.com/sportsconnect/api/pkg/logger"
	"github.com/sportsconnect/api/pkg/mailer"
	"github.com/sportsconnect/api/pkg/redis"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	if err := validation.RegisterCustomValidators(); err != nil {
		logger.GetLogger().Fatal("Failed to register validators", zap.Error(err))
	}

	db := database.InitDatabase(config)
	defer database.CloseDB()

	redisClient, err := redis.NewClient(config)
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Outbound mail: SendGrid behind a breaker and a small worker pool.
	// A missing API key is survivable in development; sends fail and log.
	var sender mailer.Sender
	sgSender, err := mailer.NewSendGridSender(config)
	if err != nil {
		if config.IsDevelopment() {
			logger.GetLogger().Warn("Mail disabled", zap.Error(err))
			sender = noopSender{}
		} else {
			logger.GetLogger().Fatal("Failed to configure mail sender", zap.Error(err))
		}
	} else {
		sender = sgSender
	}

	mailBreaker := circuit.NewBreaker("sendgrid", circuit.DefaultConfig(), logger.GetLogger())
	dispatcher := mailer.NewDispatcher(sender, mailBreaker, config.Mail.QueueSize, config.Mail.Workers)
	defer dispatcher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(redisClient, config.OTP.TTL)

	// Services
	tokenService := service.NewTokenService(config.JWT.Secret, config.JWT.ExpirationTime)
	otpService := service.NewOTPService(otpRepo, dispatcher, config.OTP.TTL, config.IsDevelopment())
	authService := service.NewAuthService(userRepo, tokenService, dispatcher)
	userService := service.NewUserService(userRepo)
	adminService := service.NewAdminService(userRepo, tokenService, config.Admin.Username, config.Admin.Password)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, otpService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	r := router.NewRouter(
		authHandler,
		userHandler,
		adminHandler,
		healthHandler,
		authMiddleware,
		config,
	)

	srv := &http.Server{
		Addr:         ":" + config.App.Port,
		Handler:      r.SetupRoutes(),
		ReadTimeout:  config.App.Timeout,
		WriteTimeout: config.App.Timeout,
	}

	go func() {
		logger.GetLogger().Info("HTTP server listening",
			zap.String("port", config.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.GetLogger().Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.GetLogger().Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.GetLogger().Error("Forced shutdown", zap.Error(err))
	}

	logger.GetLogger().Info("Server stopped")
}

// noopSender stands in when no mail provider is configured in development.
type noopSender struct{}

func (noopSender) Send(msg mailer.Message) error {
	logger.GetLogger().Info("Mail suppressed (no provider configured)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}
