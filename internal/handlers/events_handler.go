package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/middleware"
	eventws "github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/websocket"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/pkg/utils"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

var errMissingToken = errors.New("missing token")

// EventsHandler pushes request updates and session notices to browsers.
type EventsHandler struct {
	hub         *eventws.Hub
	jwtSecret   string
	revocations middleware.RevocationChecker
}

func NewEventsHandler(hub *eventws.Hub, jwtSecret string, revocations middleware.RevocationChecker) *EventsHandler {
	return &EventsHandler{hub: hub, jwtSecret: jwtSecret, revocations: revocations}
}

// WebSocketAuth runs before the upgrade. Browsers cannot set headers on a
// websocket handshake, so the token may also come in the query string.
func (h *EventsHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return respondError(c, fiber.StatusUpgradeRequired, "WebSocket upgrade required")
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	if h.revocations != nil && claims.SessionID != "" {
		revoked, err := h.revocations.IsRevoked(c.Context(), claims.SessionID)
		if err != nil {
			return respondError(c, fiber.StatusInternalServerError, "Failed to verify session")
		}
		if revoked {
			return respondError(c, fiber.StatusUnauthorized, "Session has been signed out")
		}
	}

	c.Locals("user_id", claims.UserID())
	c.Locals("session_id", claims.SessionID)
	c.Locals("token_expiry", claims.Expiry())
	return c.Next()
}

func (h *EventsHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	sessionID, _ := conn.Locals("session_id").(string)
	expiresAt, _ := conn.Locals("token_expiry").(time.Time)
	client := eventws.NewClient(h.hub, conn, userID, sessionID, expiresAt)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *EventsHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		tokenString, _ = utils.BearerToken(c.Get("Authorization"))
	}
	if tokenString == "" {
		return nil, errMissingToken
	}
	return utils.ValidateToken(tokenString, h.jwtSecret)
}
