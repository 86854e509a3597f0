package bootstrap

import (
	"time"

	"github.com/kisxo/SikshaSathi-Backend/adapter/in/http"
	"github.com/kisxo/SikshaSathi-Backend/config"
	"github.com/kisxo/SikshaSathi-Backend/infra/middleware"
	"github.com/kisxo/SikshaSathi-Backend/pkg/crypto"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// NewAPI builds the Fiber application with all routes registered.
func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "sikshasathi-api",
	})

	if err := crypto.Init(); err != nil {
		logger.WithError(err).Warn("Token encryption disabled")
	}

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		ReadBufferSize:        16384,
		WriteBufferSize:       16384,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		BodyLimit:             10 * 1024 * 1024,
		ServerHeader:          "",
		DisableDefaultDate:    true,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	allowOrigins := cfg.AllowedOrigins
	allowCredentials := true
	if allowOrigins == "" || allowOrigins == "*" {
		// Never allow "*" with credentials in production.
		if cfg.IsProduction() {
			allowOrigins = ""
			allowCredentials = false
		} else {
			allowOrigins = "http://localhost:3000,http://localhost:5173"
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allowCredentials,
		MaxAge:           86400,
	}))

	// Health checks (no auth required)
	healthHandler := http.NewHealthHandler(deps.DB)
	healthHandler.Register(app)

	// Gmail push webhook (no auth required, called by Pub/Sub)
	webhookHandler := http.NewWebhookHandler(deps.IngestService, deps.Redis, cfg.IdempotencyTTL)
	webhookHandler.Register(app)

	authHandler := http.NewAuthHandler(deps.AuthService, deps.GoogleService)
	userHandler := http.NewUserHandler(deps.UserService)
	chatHandler := http.NewChatHandler(deps.ChatService)

	// Public routes: registration, login, Google OAuth, anonymous chat
	public := app.Group("/api/v1")
	authHandler.Register(public)
	userHandler.RegisterPublic(public)
	public.Use("/chat/public", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	chatHandler.RegisterPublic(public)

	// Authenticated API routes
	api := app.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTSecret))

	userHandler.Register(api)
	http.NewProfileHandler(deps.ProfileService).Register(api)
	http.NewGoalHandler(deps.GoalService).Register(api)
	http.NewResourceHandler(deps.ResourceService).Register(api)
	chatHandler.Register(api)
	http.NewMailHandler(deps.MailService).Register(api)

	logger.Info("API server initialized successfully")

	return app, cleanup, nil
}
