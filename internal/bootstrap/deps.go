// Package bootstrap wires configuration, storage, services, and the
// HTTP server together.
package bootstrap

import (
	"context"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/adapter/out/provider/google"
	"github.com/kisxo/SikshaSathi-Backend/config"
	"github.com/kisxo/SikshaSathi-Backend/core/agent/llm"
	"github.com/kisxo/SikshaSathi-Backend/core/service/auth"
	"github.com/kisxo/SikshaSathi-Backend/core/service/mail"
	"github.com/kisxo/SikshaSathi-Backend/core/service/profile"
	"github.com/kisxo/SikshaSathi-Backend/core/service/study"
	"github.com/kisxo/SikshaSathi-Backend/core/service/user"
	"github.com/kisxo/SikshaSathi-Backend/infra/database"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Dependencies holds all wired services and infrastructure handles.
type Dependencies struct {
	DB    *sqlx.DB
	Redis *redis.Client

	AuthService    *auth.Service
	GoogleService  *auth.GoogleService
	UserService    *user.Service
	ProfileService *profile.Service

	GoalService     *study.GoalService
	ResourceService *study.ResourceService
	ChatService     *study.ChatService

	MailService   *mail.Service
	IngestService *mail.IngestService
}

// NewDependencies connects infrastructure and builds the service graph.
// The returned cleanup closes all connections.
func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	if err := persistence.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	// Redis is optional. Without it webhook deduplication falls back to
	// the database unique index.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without it")
			redisClient = nil
		}
	}

	// Repositories
	users := persistence.NewUserAdapter(db)
	profiles := persistence.NewProfileAdapter(db)
	accounts := persistence.NewGoogleAccountAdapter(db)
	emails := persistence.NewEmailAdapter(db)
	summaries := persistence.NewSummaryAdapter(db)
	goals := persistence.NewGoalAdapter(db)
	resources := persistence.NewResourceAdapter(db)
	chats := persistence.NewChatAdapter(db)

	if cfg.AdminBootstrapUser != "" {
		if u, err := users.GetByEmail(ctx, cfg.AdminBootstrapUser); err == nil && !u.IsAdmin {
			u.IsAdmin = true
			if err := users.Update(ctx, u); err != nil {
				logger.WithError(err).Warn("Failed to promote bootstrap admin")
			} else {
				logger.Info("Promoted %s to admin", cfg.AdminBootstrapUser)
			}
		}
	}

	// Outbound providers
	gmailProvider := google.NewGmailProvider()
	youtubeProvider := google.NewYouTubeProvider(cfg.YouTubeAPIKey)

	planner := llm.NewClientWithConfig(llm.ClientConfig{
		APIKey:      cfg.GroqAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	})
	fast := llm.NewClientWithConfig(llm.ClientConfig{
		APIKey:      cfg.GroqAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMFastModel,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	})

	// Services
	googleService := auth.NewGoogleService(accounts, users, auth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})

	deps := &Dependencies{
		DB:    db,
		Redis: redisClient,

		AuthService:    auth.NewService(users, cfg.JWTSecret, cfg.JWTExpiry),
		GoogleService:  googleService,
		UserService:    user.NewService(users),
		ProfileService: profile.NewService(profiles),

		GoalService:     study.NewGoalService(planner, goals),
		ResourceService: study.NewResourceService(fast, youtubeProvider, resources),
		ChatService:     study.NewChatService(fast, users, profiles, chats),

		MailService:   mail.NewService(googleService, gmailProvider, summaries, cfg.TopicName()),
		IngestService: mail.NewIngestService(googleService, gmailProvider, emails, summaries, planner),
	}

	cleanup := func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close Redis client")
			}
		}
		if err := db.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close database")
		}
	}

	return deps, cleanup, nil
}
