package routes

import (
	"github.com/anjiri1684/wiki_quiz/logger"
	"github.com/anjiri1684/wiki_quiz/middleware"
	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/anjiri1684/wiki_quiz/websocket"
	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	Sessions      *services.SessionStore
	Hub           *websocket.Hub
	Log           *logger.Logger
	GenerateLimit int
}

// Register mounts every route of the web client on app.
func Register(app *fiber.App, d Deps) {
	session := middleware.Session(middleware.NewSessionCookieStore(), d.Sessions)

	PublicRoutes(app, d.Sessions)
	PageRoutes(app, session)
	QuizRoutes(app, session, d.GenerateLimit)
	HistoryRoutes(app, session)
	WebsocketRoutes(app, session, d.Hub, d.Log)
}
