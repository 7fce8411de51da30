package handler

import (
	"context"

	"pdf-knowledge-be/internal/constant"
	"pdf-knowledge-be/internal/dto"
	"pdf-knowledge-be/internal/pkg/logger"
	"pdf-knowledge-be/internal/pkg/serverutils"
	"pdf-knowledge-be/internal/service"
	internalWS "pdf-knowledge-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ChatHandler owns the /ws/chat socket: it authenticates the handshake,
// registers the connection with the hub and drives the agent for every
// user_query frame.
type ChatHandler struct {
	chatService   service.IChatService
	hub           *internalWS.Hub
	sessionSecret string
	logger        logger.ILogger
}

func NewChatHandler(chatService service.IChatService, hub *internalWS.Hub, sessionSecret string, log logger.ILogger) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		hub:           hub,
		sessionSecret: sessionSecret,
		logger:        log,
	}
}

func (h *ChatHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/ws/chat", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *ChatHandler) ServeWs(c *fiber.Ctx) error {
	// Token source priority: query param (browser standard), then
	// Authorization header (tooling standard).
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	sessionIDStr, err := serverutils.ParseSessionToken(h.sessionSecret, tokenStr)
	if err != nil {
		h.logger.Warn("ChatHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := uuid.Parse(sessionIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatHandler", "Starting WebSocket session", map[string]interface{}{"session_id": sessionID})

			// Written directly: the connection is not in the hub yet.
			greeting := dto.ChatEvent{
				Event: constant.ChatEventAgentResponse,
				Data:  h.chatService.Greeting(sessionID.String()),
			}
			if err := conn.WriteJSON(greeting); err != nil {
				h.logger.Warn("ChatHandler", "Failed to send greeting", map[string]interface{}{"session_id": sessionID})
			}

			internalWS.ServeWs(h.hub, conn, sessionID, h.onMessage)
			h.logger.Info("ChatHandler", "WebSocket session ended", map[string]interface{}{"session_id": sessionID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// onMessage handles one inbound frame. Only user_query events are meaningful;
// everything else is dropped.
func (h *ChatHandler) onMessage(sessionID uuid.UUID, event dto.ChatEvent) {
	if err := serverutils.ValidateRequest(event); err != nil {
		h.logger.Warn("ChatHandler", "Dropping malformed frame", map[string]interface{}{"session_id": sessionID})
		return
	}
	if event.Event != constant.ChatEventUserQuery {
		return
	}

	if event.Data == "" {
		h.hub.Send(sessionID, dto.ChatEvent{
			Event: constant.ChatEventAgentResponse,
			Data:  "Error: Empty query received.",
		})
		return
	}

	// Echo user query
	h.hub.Send(sessionID, dto.ChatEvent{
		Event: constant.ChatEventUserMessage,
		Data:  event.Data,
	})

	response, err := h.chatService.HandleQuery(context.Background(), sessionID.String(), event.Data)
	if err != nil {
		h.logger.Error("ChatHandler", "Query processing failed", map[string]interface{}{"error": err.Error()})
		h.hub.Send(sessionID, dto.ChatEvent{
			Event: constant.ChatEventAgentResponse,
			Data:  "Error processing query: " + err.Error(),
		})
		return
	}
	if response == "" {
		response = "No response from agent."
	}

	h.hub.Send(sessionID, dto.ChatEvent{
		Event: constant.ChatEventAgentResponse,
		Data:  response,
	})
}
