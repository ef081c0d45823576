package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/usercontext"
)

// jsonError writes the uniform error envelope.
func jsonError(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   kind,
		"message": message,
	})
}

func errUnauthorized(c *fiber.Ctx) error {
	return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Non authentifié")
}

func errNotFound(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusNotFound, "not_found", message)
}

func errValidation(c *fiber.Ctx, message string) error {
	return jsonError(c, fiber.StatusBadRequest, "validation", message)
}

func errInternal(c *fiber.Ctx) error {
	return jsonError(c, fiber.StatusInternalServerError, "internal", "Une erreur est survenue")
}

// currentUser loads the full user record behind the request context. The
// second return is false for anonymous requests or stale sessions.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	uc := usercontext.GetUserContext(c)
	if !uc.IsLoggedIn {
		return nil, false
	}
	user, err := repository.GetGlobalRepositories().User.GetByID(uc.UserID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// publicUser strips credentials from a user record for API responses.
func publicUser(u *models.User) fiber.Map {
	return fiber.Map{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"role":         u.Role,
		"organization": u.Organization,
		"bio":          u.Bio,
		"createdAt":    u.CreatedAt,
	}
}

// recordActivity appends to the audit trail. Feed failures never fail the
// request that triggered them.
func recordActivity(userID, action, target, targetType string) {
	_ = repository.GetGlobalRepositories().Activity.Create(&models.Activity{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     action,
		Target:     target,
		TargetType: targetType,
		CreatedAt:  time.Now(),
	})
}

// notify pushes a notification to one user, best effort.
func notify(userID, title, message string) {
	_ = repository.GetGlobalRepositories().Notification.Create(&models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now(),
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
