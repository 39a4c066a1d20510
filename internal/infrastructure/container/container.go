package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/studybuddy-app/studybuddy-backend/internal/config"
	"github.com/studybuddy-app/studybuddy-backend/internal/delivery/http"
	"github.com/studybuddy-app/studybuddy-backend/internal/delivery/http/handler"
	"github.com/studybuddy-app/studybuddy-backend/internal/delivery/http/middleware"
	"github.com/studybuddy-app/studybuddy-backend/internal/infrastructure/database"
	"github.com/studybuddy-app/studybuddy-backend/internal/infrastructure/gemini"
	"github.com/studybuddy-app/studybuddy-backend/internal/infrastructure/server"
	"github.com/studybuddy-app/studybuddy-backend/internal/repository/postgres"
	"github.com/studybuddy-app/studybuddy-backend/internal/usecase/auth"
	connectionuc "github.com/studybuddy-app/studybuddy-backend/internal/usecase/connection"
	"github.com/studybuddy-app/studybuddy-backend/internal/usecase/match"
	profileuc "github.com/studybuddy-app/studybuddy-backend/internal/usecase/profile"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Gemini *gemini.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini client. Matching still works without it; the
	// matcher then serves deterministic results only.
	var geminiClient *gemini.Client
	if cfg.Gemini.APIKey != "" {
		geminiClient, err = gemini.NewClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Warn("failed to initialize gemini client, matching will use deterministic fallback", zap.Error(err))
			geminiClient = nil
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, matching will use deterministic fallback")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	connectionRepo := postgres.NewConnectionRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		redisClient,
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiryMin,
		logger,
	)

	profileUseCase := profileuc.NewProfileUseCase(
		profileRepo,
		userRepo,
	)

	var matcher *match.Matcher
	if geminiClient != nil {
		matcher = match.NewMatcher(geminiClient, cfg.Gemini.Timeout, logger)
	} else {
		matcher = match.NewMatcher(nil, cfg.Gemini.Timeout, logger)
	}

	matchUseCase := match.NewMatchUseCase(
		profileRepo,
		connectionRepo,
		matcher,
	)

	connectionUseCase := connectionuc.NewConnectionUseCase(
		connectionRepo,
		profileRepo,
		logger,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	connectionHandler := handler.NewConnectionHandler(connectionUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		matchHandler,
		connectionHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Gemini: geminiClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
