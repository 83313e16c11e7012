package handlers

import (
	"github.com/anjiri1684/wiki_quiz/middleware"
	"github.com/gofiber/fiber/v2"
)

func RenderIndex(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}
	return c.Render("index", fiber.Map{
		"State": ctrl.Snapshot(),
	})
}
