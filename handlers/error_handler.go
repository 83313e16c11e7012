package handlers

import (
	"errors"

	"github.com/anjiri1684/wiki_quiz/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		message := err.Error()
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", "error", err, "path", c.Path(), "method", c.Method())
			message = utils.StatusMessage(code)
			if message == "" {
				message = utils.StatusMessage(fiber.StatusInternalServerError)
			}
		} else {
			log.Debug("request rejected", "error", err, "path", c.Path(), "method", c.Method())
		}
		return c.Status(code).JSON(fiber.Map{
			"status":  "error",
			"code":    code,
			"message": message,
		})
	}
}
