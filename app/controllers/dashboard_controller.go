package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/statistics"
)

// HandleDashboard returns the dashboard aggregates.
func HandleDashboard(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	stats, err := statistics.NewService(repos.Document, repos.Category).Dashboard()
	if err != nil {
		return errInternal(c)
	}
	return c.JSON(stats)
}
