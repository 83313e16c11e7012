package routes

import (
	"github.com/anjiri1684/wiki_quiz/handlers"
	"github.com/gofiber/fiber/v2"
)

func PageRoutes(app *fiber.App, session fiber.Handler) {
	app.Get("/", session, handlers.RenderIndex)
}
