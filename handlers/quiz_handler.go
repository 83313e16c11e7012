package handlers

import (
	"github.com/anjiri1684/wiki_quiz/middleware"
	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

func GetSession(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}
	return c.JSON(ctrl.Snapshot())
}

func SelectTab(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}

	type Request struct {
		Tab string `json:"tab" form:"tab" validate:"required,oneof=generate history"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.SelectTab(c.UserContext(), services.Tab(utils.CopyString(req.Tab))); err != nil {
		return sessionError(c, err)
	}
	return respond(c, ctrl)
}

// GenerateQuiz blocks until the backend answers, so the redirect after a form
// post lands on the finished state.
func GenerateQuiz(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}

	type Request struct {
		URL string `json:"url" form:"url" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A Wikipedia URL is required"})
	}

	if err := ctrl.RequestGeneration(c.UserContext(), utils.CopyString(req.URL)); err != nil {
		return sessionError(c, err)
	}
	return respond(c, ctrl)
}

func SelectAnswer(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}

	type Request struct {
		Question *int   `json:"question" form:"question" validate:"required,min=0"`
		Option   string `json:"option" form:"option" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := ctrl.SelectAnswer(c.Params("attemptId"), *req.Question, utils.CopyString(req.Option)); err != nil {
		return sessionError(c, err)
	}
	return respond(c, ctrl)
}

func SubmitQuiz(c *fiber.Ctx) error {
	ctrl, err := middleware.CurrentController(c)
	if err != nil {
		return err
	}
	if err := ctrl.Submit(c.Params("attemptId")); err != nil {
		return sessionError(c, err)
	}
	return respond(c, ctrl)
}
