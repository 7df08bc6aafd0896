// Package server contains the HTTP handlers and routing for the marketplace API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "marketplace/docs" // swagger docs
	"marketplace/internal/analytics"
	"marketplace/internal/bootstrap"
	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/featureflags"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/repository"
	"marketplace/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager
	publisher      analytics.Publisher

	feedService       *service.FeedService
	searchService     *service.SearchService
	connectionService *service.ConnectionService
	postService       *service.PostService
	accountService    *service.AccountService
}

// NewServer connects to the database and Redis, then wires the server.
func NewServer(ctx context.Context, cfg *config.Config, opts bootstrap.Options) (*Server, error) {
	db, rdb, err := bootstrap.InitRuntime(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, rdb)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; caching, revocation and analytics then degrade.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	publisher, err := analytics.New(cfg, redisClient)
	if err != nil {
		return nil, fmt.Errorf("analytics publisher: %w", err)
	}

	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("marketplace-api"),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		publisher:      publisher,
	}
	server.wireServices(
		repository.NewPostRepository(db),
		repository.NewAccountRepository(db),
		repository.NewConnectionRepository(db),
	)
	return server, nil
}

func (s *Server) wireServices(
	posts repository.PostRepository,
	accounts repository.AccountRepository,
	connections repository.ConnectionRepository,
) {
	sizes := s.config.PageSizes()
	if s.featureFlags == nil {
		s.featureFlags = featureflags.NewManager(s.config.FeatureFlags)
	}

	s.feedService = service.NewFeedService(posts, accounts, sizes,
		service.WithAnonymousFeedCache(s.redis, s.config.FeedCacheTTL(), s.featureFlags))
	s.searchService = service.NewSearchService(posts, accounts, sizes, s.featureFlags)
	s.connectionService = service.NewConnectionService(connections)
	s.postService = service.NewPostService(posts, s.publisher, s.redis, sizes.Feed)
	s.accountService = service.NewAccountService(accounts, middleware.IssueToken)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)

	optional := middleware.OptionalIdentity(s.redis)
	required := middleware.AuthRequired(s.redis)

	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", required, s.Logout)

	feeds := api.Group("/feeds", optional)
	feeds.Get("/", s.GetFeed)
	feeds.Get("/users", s.GetTrendingUsers)

	search := api.Group("/q", optional, middleware.RateLimit(s.redis, 30, time.Minute, "search"))
	search.Get("/posts", s.SearchPosts)
	search.Get("/people", s.SearchPeople)

	// specific /:hash/<resource> routes before the bare /:hash route
	profiles := api.Group("/u")
	profiles.Patch("/:hash/follow", required,
		middleware.RateLimitWithPolicy(s.redis, 30, time.Minute, middleware.FailClosed, "follow"), s.ToggleFollow)
	profiles.Get("/:hash/posts", optional, s.GetAuthorPosts)
	profiles.Get("/:hash/followers", optional, s.GetFollowers)
	profiles.Get("/:hash/following", optional, s.GetFollowing)
	profiles.Get("/:hash", optional, s.GetProfile)

	me := api.Group("/user", required)
	me.Get("/", s.GetMe)
	me.Patch("/edit/name", s.EditName)
	me.Patch("/edit/bio", s.EditBio)
	me.Patch("/edit/picture", s.EditPicture)
	me.Patch("/edit/email", s.EditEmail)
	me.Patch("/edit/contact", s.EditContact)
	me.Patch("/edit/password", s.EditPassword)

	posts := api.Group("/p")
	posts.Put("/", required, middleware.RateLimit(s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Patch("/:hash/publish", required, s.PublishPost)
	posts.Patch("/:hash/edit/content", required, s.EditPostContent)
	posts.Patch("/:hash/edit/name", required, s.EditPostName)
	posts.Patch("/:hash/edit/location", required, s.EditPostLocation)
	posts.Patch("/:hash/edit/price", required, s.EditPostPrice)
	posts.Patch("/:hash/edit/end", required, s.EditPostEnd)
	posts.Delete("/:hash", required, s.DeletePost)
	posts.Get("/:hash", optional, s.ViewPost)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil {
		dbStatus = "unavailable"
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// redis backs caching, revocation and rate limits but the API still serves without it
	redisStatus := "healthy"
	if s.redis == nil {
		redisStatus = "unavailable"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		redisStatus = "unhealthy"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// NewApp builds the fiber app with middleware and routes.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Marketplace API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, fe)
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// Start starts the server
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			middleware.Logger.Error("error closing analytics publisher", slog.String("error", err.Error()))
		}
	}

	if err := database.Close(); err != nil {
		middleware.Logger.Error("error closing database", slog.String("error", err.Error()))
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
