package handler

import (
	"quizcraft/internal/config"
	"quizcraft/internal/middleware"
	"quizcraft/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with the shared middleware stack.
func NewApp(cfg config.ServerConfig, views fiber.Views) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    cfg.BodyLimit,
		Views:        views,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))
	app.Use(recover.New())
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))

	return app
}

// RegisterRoutes mounts the pages, the JSON API and the health check.
func RegisterRoutes(app *fiber.App, pages *WebHandler, api *APIHandler, health *HealthHandler) {
	app.Get("/healthz", health.Check)

	app.Get("/", pages.Index)
	app.Post("/", pages.Generate)
	app.Get("/history/", pages.History)
	app.Get("/quiz/:id/", pages.Detail)
	app.Get("/quiz/:id/download/json/", pages.DownloadJSON)
	app.Get("/quiz/:id/download/md/", pages.DownloadMarkdown)
	app.Post("/quiz/:id/delete/", pages.Delete)

	apiGroup := app.Group("/api")
	apiGroup.Get("/quizzes", api.ListQuizzes)
	apiGroup.Post("/quizzes", api.CreateQuiz)
	apiGroup.Get("/quizzes/:id", api.GetQuiz)
	apiGroup.Delete("/quizzes/:id", api.DeleteQuiz)
}
