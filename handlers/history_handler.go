package handlers

import (
	"github.com/anjiri1684/wiki_quiz/middleware"
	"github.com/gofiber/fiber/v2"
)

func OpenHistoryEntry(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid quiz ID"})
	}

	ctrl.SelectHistoryEntry(c.UserContext(), int64(id))
	return respond(c, ctrl)
}

func CloseHistoryEntry(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}
	ctrl.CloseDetail()
	return respond(c, ctrl)
}
