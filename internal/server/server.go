// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"driftline/internal/config"
	"driftline/internal/feed"
	"driftline/internal/middleware"
	"driftline/internal/models"
	"driftline/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "driftline-api"
	tokenAudience = "driftline-client"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *store.Store
	feed           *feed.Service
	promMiddleware *fiberprometheus.FiberPrometheus
}

// NewServer creates a new server instance, opening the backing store file.
func NewServer(cfg *config.Config) (*Server, error) {
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return NewServerWithDeps(cfg, st), nil
}

// NewServerWithDeps creates a Server using an already-initialized store.
// Tests construct isolated in-memory stores and pass them here.
func NewServerWithDeps(cfg *config.Config, st *store.Store) *Server {
	return &Server{
		config:         cfg,
		store:          st,
		feed:           feed.NewService(st),
		promMiddleware: middleware.InitMetrics("driftline-api"),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// OpenTelemetry span per request
	app.Use(middleware.TracingMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before anything that can short-circuit, so browser clients still
	// receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
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
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Driftline Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	// Public browse routes
	publicPosts := api.Group("/posts")
	publicPosts.Get("/:id/comments", s.GetComments)
	publicPosts.Get("/:id", s.GetPost)

	publicUsers := api.Group("/users")
	publicUsers.Get("/:id/posts", s.GetUserPosts)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes; /me before the generic /:id route
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/", s.GetAllUsers)
	users.Get("/:id", s.GetUserProfile)

	// Feed
	protected.Get("/feed", s.GetFeed)

	// Post routes
	posts := protected.Group("/posts")
	posts.Post("/", s.CreatePost)
	posts.Post("/:id/comments", s.CreateComment)
	posts.Post("/:id/reactions", s.ReactToPost)
	posts.Put("/:id", s.UpdatePost)

	// Comment routes
	comments := protected.Group("/comments")
	comments.Post("/:id/reactions", s.ReactToComment)
	comments.Put("/:id", s.UpdateComment)

	// Friend routes; /requests routes before the generic /:userId
	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Post("/requests/:userId", s.SendFriendRequest)
	friends.Get("/requests", s.GetPendingRequests)
	friends.Get("/requests/sent", s.GetSentRequests)
	friends.Post("/requests/:requestId/accept", s.AcceptFriendRequest)
	friends.Post("/requests/:requestId/decline", s.DeclineFriendRequest)
	friends.Delete("/:userId", s.RemoveFriend)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. The store is in-memory,
// so ready means loaded: report the table sizes alongside.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "healthy",
		"version": "1.0.0",
		"checks": fiber.Map{
			"store": fiber.Map{
				"users":       s.store.Users.Len(),
				"posts":       s.store.Posts.Len(),
				"comments":    s.store.Comments.Len(),
				"reactions":   s.store.Reactions.Len(),
				"friendships": s.store.Friendships.Len(),
			},
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It resolves the
// caller identity from a Bearer token and stores it in c.Locals("userID").
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		c.Locals("userID", sub)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, sub)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// Shutdown releases server resources, flushing the store to disk.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.store.Save(); err != nil {
		middleware.Logger.ErrorContext(ctx, "error flushing store on shutdown", "error", err)
		return err
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
