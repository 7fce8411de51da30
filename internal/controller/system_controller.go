package controller

import (
	"time"

	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISystemController interface {
	RegisterRoutes(app *fiber.App, api fiber.Router, sessionGuard fiber.Handler)
	Index(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	Shutdown(ctx *fiber.Ctx) error
}

type systemController struct {
	sessionSecret string
	shutdown      func() error
	log           logger.ILogger
}

// NewSystemController wires the index, session issuing and shutdown routes.
// shutdown is called after the shutdown response is written.
func NewSystemController(sessionSecret string, shutdown func() error, log logger.ILogger) ISystemController {
	return &systemController{
		sessionSecret: sessionSecret,
		shutdown:      shutdown,
		log:           log,
	}
}

func (c *systemController) RegisterRoutes(app *fiber.App, api fiber.Router, sessionGuard fiber.Handler) {
	app.Get("/", c.Index)

	h := api.Group("/assistant/v1")
	h.Get("/session", c.CreateSession)

	sys := api.Group("/system/v1")
	sys.Get("/shutdown", sessionGuard, c.Shutdown)
}

func (c *systemController) Index(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.IndexResponse{
		App:  "PDF Knowledge Assistant",
		Year: time.Now().Year(),
		Endpoints: []string{
			"GET /api/assistant/v1/session",
			"POST /api/knowledge/v1/upload",
			"GET /api/library/v1/documents",
			"GET /api/library/v1/topics",
			"GET /api/library/v1/topics/:topic",
			"GET /api/library/v1/stats",
			"GET /api/system/v1/shutdown",
			"WS /ws/chat?token=",
		},
	})
}

func (c *systemController) CreateSession(ctx *fiber.Ctx) error {
	sessionID := uuid.New().String()
	token, err := serverutils.IssueSessionToken(c.sessionSecret, sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(dto.SessionResponse{
		SessionId: sessionID,
		Token:     token,
	})
}

func (c *systemController) Shutdown(ctx *fiber.Ctx) error {
	c.log.Info("SystemController", "Shutting down PDF Knowledge Assistant", nil)

	if c.shutdown != nil {
		go func() {
			// Give the response time to flush before the listener closes.
			time.Sleep(250 * time.Millisecond)
			if err := c.shutdown(); err != nil {
				c.log.Error("SystemController", "Shutdown failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	return ctx.SendString("PDF Knowledge Assistant shut down successfully.")
}
