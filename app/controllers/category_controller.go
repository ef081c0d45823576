package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/statistics"
)

type categoryCreateRequest struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// HandleListCategories returns all categories with document counts computed
// on the fly.
func HandleListCategories(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	stats, err := statistics.NewService(repos.Document, repos.Category).CategoriesWithStats()
	if err != nil {
		return errInternal(c)
	}
	return c.JSON(fiber.Map{"categories": stats})
}

// HandleCreateCategory creates a category. Names are unique ignoring case.
func HandleCreateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	var req categoryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Name == "" {
		return errValidation(c, "Nom de catégorie requis")
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Category.GetByName(req.Name); err == nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "Cette catégorie existe déjà")
	}

	cat := &models.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
		CreatedBy:   user.ID,
		CreatedAt:   time.Now(),
	}
	if cat.Icon == "" {
		cat.Icon = "FolderOpen"
	}
	if err := cat.Validate(); err != nil {
		return errValidation(c, "Données invalides")
	}
	if err := repos.Category.Create(cat); err != nil {
		return errInternal(c)
	}

	recordActivity(user.ID, "Catégorie créée", cat.Name, models.TARGET_TYPE_CATEGORY)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": cat})
}

// HandleUpdateCategory renames or redescribes a category. Documents keep
// referencing the old name; the link is by name, not id.
func HandleUpdateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	repos := repository.GetGlobalRepositories()
	cat, err := repos.Category.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Catégorie introuvable")
		}
		return errInternal(c)
	}

	var req categoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Name != nil {
		if other, err := repos.Category.GetByName(*req.Name); err == nil && other.ID != cat.ID {
			return jsonError(c, fiber.StatusConflict, "conflict", "Cette catégorie existe déjà")
		}
		cat.Name = *req.Name
	}
	if req.Icon != nil {
		cat.Icon = *req.Icon
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}

	if err := cat.Validate(); err != nil {
		return errValidation(c, "Données invalides")
	}
	if err := repos.Category.Update(cat); err != nil {
		return errInternal(c)
	}

	recordActivity(user.ID, "Catégorie modifiée", cat.Name, models.TARGET_TYPE_CATEGORY)

	return c.JSON(fiber.Map{"category": cat})
}

// HandleDeleteCategory removes a category. Its documents are left in place
// and keep their category name.
func HandleDeleteCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	repos := repository.GetGlobalRepositories()
	cat, err := repos.Category.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Catégorie introuvable")
		}
		return errInternal(c)
	}

	if err := repos.Category.Delete(cat.ID); err != nil {
		return errInternal(c)
	}

	recordActivity(user.ID, "Catégorie supprimée", cat.Name, models.TARGET_TYPE_CATEGORY)

	return c.JSON(fiber.Map{"success": true})
}
