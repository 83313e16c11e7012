package routes

import (
	"github.com/anjiri1684/wiki_quiz/handlers"
	"github.com/gofiber/fiber/v2"
)

func HistoryRoutes(app *fiber.App, session fiber.Handler) {
	history := app.Group("/api/v1/history", session)
	history.Post("/close", handlers.CloseHistoryEntry)
	history.Post("/:id/open", handlers.OpenHistoryEntry)
}
