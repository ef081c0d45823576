package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
)

type profileUpdateRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Bio          *string `json:"bio"`
	Organization *string `json:"organization"`
}

// HandleGetProfile returns the caller's profile.
func HandleGetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}
	return c.JSON(fiber.Map{"user": publicUser(user)})
}

// HandleUpdateProfile applies a partial update to the caller's own profile.
// Role and password are not reachable from here.
func HandleUpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Organization != nil {
		user.Organization = *req.Organization
	}

	if err := user.Validate(); err != nil {
		return errValidation(c, "Données invalides")
	}
	if err := repository.GetGlobalRepositories().User.Update(user); err != nil {
		return errInternal(c)
	}

	recordActivity(user.ID, "Profil mis à jour", "Informations personnelles", models.TARGET_TYPE_USER)

	return c.JSON(fiber.Map{"user": publicUser(user)})
}
