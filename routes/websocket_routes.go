package routes

import (
	"github.com/anjiri1684/wiki_quiz/handlers"
	"github.com/anjiri1684/wiki_quiz/logger"
	"github.com/anjiri1684/wiki_quiz/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func WebsocketRoutes(app *fiber.App, session fiber.Handler, hub *websocket.Hub, log *logger.Logger) {
	api := app.Group("/api/v1")

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocketcontrib.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", session, websocketcontrib.New(handlers.ServeWs(hub, log)))
}
