package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/repository"
)

// HandleListActivities returns the audit trail, newest first.
func HandleListActivities(c *fiber.Ctx) error {
	activities, err := repository.GetGlobalRepositories().Activity.List()
	if err != nil {
		return errInternal(c)
	}
	return c.JSON(fiber.Map{"activities": activities})
}
