package handlers

import (
	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/gofiber/fiber/v2"
)

func Health(store *services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"sessions": store.Len(),
		})
	}
}
