package handlers

import (
	"errors"

	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// sessionError turns controller errors into client errors. Anything else goes
// to the app ErrorHandler.
func sessionError(c *fiber.Ctx, err error) error {
	var code int
	switch {
	case errors.Is(err, services.ErrEmptyURL),
		errors.Is(err, services.ErrInvalidSelection),
		errors.Is(err, services.ErrUnknownTab):
		code = fiber.StatusBadRequest
	case errors.Is(err, services.ErrAttemptNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrIncompleteAnswers):
		code = fiber.StatusConflict
	default:
		return err
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// respond sends browsers back to the page and API callers the new state.
func respond(c *fiber.Ctx, ctrl *services.SessionController) error {
	if c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.JSON(ctrl.Snapshot())
}
