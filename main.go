package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/env"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/router"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/seed"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/session"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/store"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "3000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	store.SetupStore()
	repository.InitializeFactory(store.GetStore())

	repos := repository.GetGlobalRepositories()
	session.SetupService(session.NewService(repos.Session, repos.User))

	if _, err := seed.EnsureSeeded(repos); err != nil {
		log.Fatalf("seed: %v", err)
	}
	if err := repos.Session.PurgeExpired(); err != nil {
		log.Printf("purge sessions: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:   "Archivist",
		BodyLimit: 10 * 1024 * 1024,
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	router.InstallRouter(app)

	return app
}
