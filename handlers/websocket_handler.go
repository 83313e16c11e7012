package handlers

import (
	"github.com/anjiri1684/wiki_quiz/logger"
	"github.com/anjiri1684/wiki_quiz/middleware"
	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/anjiri1684/wiki_quiz/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// ServeWs streams the session state to the socket. The current state is sent
// right after connecting, then again after every change.
func ServeWs(hub *websocket.Hub, log *logger.Logger) func(*websocketcontrib.Conn) {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *websocketcontrib.Conn) {
		sessionID, _ := c.Locals(middleware.SessionIDKey).(string)
		ctrl, _ := c.Locals(middleware.ControllerKey).(*services.SessionController)
		if sessionID == "" || ctrl == nil {
			_ = c.WriteJSON(fiber.Map{"error": "Missing session"})
			_ = c.Close()
			return
		}

		client := &websocket.Client{SessionID: sessionID, Conn: c}
		hub.Register(client)
		defer func() {
			hub.Unregister(client)
			_ = c.Close()
		}()
		hub.Publish(sessionID, ctrl.Snapshot())

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
					log.Debug("websocket closed", "session_id", sessionID)
				} else {
					log.Warn("websocket read error", "session_id", sessionID, "error", err)
				}
				return
			}
		}
	}
}
