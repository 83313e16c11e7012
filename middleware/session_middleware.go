package middleware

import (
	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	SessionIDKey  = "session_id"
	ControllerKey = "controller"

	SessionCookieName = "wiki_quiz_session"
)

func NewSessionCookieStore() *session.Store {
	return session.New(session.Config{
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// Session attaches the browser session's controller to the request. The
// session cookie is issued on first contact.
func Session(cookies *session.Store, sessions *services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := cookies.Get(c)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load session")
		}
		id := utils.CopyString(sess.ID())
		if err := sess.Save(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save session")
		}

		c.Locals(SessionIDKey, id)
		c.Locals(ControllerKey, sessions.Get(id))
		return c.Next()
	}
}

func CurrentSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}

func CurrentController(c *fiber.Ctx) (*services.SessionController, error) {
	ctrl, ok := c.Locals(ControllerKey).(*services.SessionController)
	if !ok || ctrl == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Session not initialised")
	}
	return ctrl, nil
}
