package routes

import (
	"github.com/anjiri1684/wiki_quiz/handlers"
	"github.com/anjiri1684/wiki_quiz/middleware"
	"github.com/gofiber/fiber/v2"
)

func QuizRoutes(app *fiber.App, session fiber.Handler, generateLimit int) {
	api := app.Group("/api/v1")

	api.Get("/session", session, handlers.GetSession)
	api.Post("/tab", session, handlers.SelectTab)
	api.Post("/generate", session, middleware.GenerateLimiter(generateLimit), handlers.GenerateQuiz)

	quiz := api.Group("/quiz", session)
	quiz.Post("/:attemptId/answers", handlers.SelectAnswer)
	quiz.Post("/:attemptId/submit", handlers.SubmitQuiz)
}
