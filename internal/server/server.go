package server

import (
	"log"

	"pdf-knowledge-be/internal/bootstrap"
	"pdf-knowledge-be/internal/config"
	"pdf-knowledge-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Knowledge.MaxUploadBytes),
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Browsers poll the library endpoints; serve them fresh.
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Set("Cache-Control", "no-store")
		return ctx.Next()
	})

	// Static
	app.Static("/uploads", "./"+cfg.App.UploadDir)

	// Routes
	registerRoutes(app, cfg, container)

	// The shutdown route stops this listener.
	container.OnShutdown(app.Shutdown)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")

	sessionGuard := serverutils.SessionTokenMiddleware(cfg.App.SessionSecret)

	c.SystemController.RegisterRoutes(app, api, sessionGuard)

	// Uploads bind to a session when a token is presented but never require
	// one; the original interface accepted anonymous uploads.
	api.Use("/knowledge", optionalSession(cfg.App.SessionSecret))
	c.UploadController.RegisterRoutes(api)

	c.LibraryController.RegisterRoutes(api)

	c.ChatHandler.RegisterRoutes(app)
}

// optionalSession resolves a session token into locals when present and lets
// the request through either way.
func optionalSession(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := ctx.Query("token")
		if tokenStr == "" {
			authHeader := ctx.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				tokenStr = authHeader[7:]
			}
		}
		if tokenStr != "" {
			if sessionID, err := serverutils.ParseSessionToken(secret, tokenStr); err == nil {
				ctx.Locals("session_id", sessionID)
			}
		}
		return ctx.Next()
	}
}
