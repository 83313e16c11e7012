package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/wiki_quiz/configs"
	"github.com/anjiri1684/wiki_quiz/handlers"
	"github.com/anjiri1684/wiki_quiz/jobs"
	"github.com/anjiri1684/wiki_quiz/logger"
	"github.com/anjiri1684/wiki_quiz/routes"
	"github.com/anjiri1684/wiki_quiz/services"
	"github.com/anjiri1684/wiki_quiz/views"
	"github.com/anjiri1684/wiki_quiz/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	settings := config.Load()

	log, err := logger.New(settings.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	backend, err := services.NewQuizAPIClient(services.QuizAPIOptions{
		BaseURL: settings.QuizAPIBaseURL,
		Timeout: settings.QuizAPITimeout,
	})
	if err != nil {
		log.Fatal("invalid quiz api configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(log.With("component", "websocket"))

	store := services.NewSessionStore(backend, log, hub)

	c := cron.New()
	if _, err := jobs.ScheduleSessionSweep(c, settings.SessionSweepSchedule, store, settings.SessionIdleTTL, log.With("job", "session_sweep")); err != nil {
		log.Fatal("invalid session sweep schedule", "schedule", settings.SessionSweepSchedule, "error", err)
	}
	c.Start()
	defer c.Stop()
	log.Info("session sweep scheduled", "schedule", settings.SessionSweepSchedule, "idle_ttl", settings.SessionIdleTTL)

	app := fiber.New(fiber.Config{
		AppName:      "WikiQuiz",
		Views:        views.NewEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: settings.QuizAPITimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: settings.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods: "GET, POST, OPTIONS",
		MaxAge:       86400,
	}))
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Register(app, routes.Deps{
		Sessions:      store,
		Hub:           hub,
		Log:           log,
		GenerateLimit: settings.GenerateRateLimit,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info("server starting", "addr", settings.ListenAddr, "quiz_api", settings.QuizAPIBaseURL)
		return app.Listen(settings.ListenAddr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	if err := g.Wait(); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
