package routes

import (
	"github.com/anjiri1684/wiki_quiz/handlers"
	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App, store *services.SessionStore) {
	app.Get("/health", handlers.Health(store))
}
