package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/plans"
)

type userCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userRoleRequest struct {
	Role string `json:"role"`
}

// HandleListUsers lists all accounts without credentials.
func HandleListUsers(c *fiber.Ctx) error {
	users, err := repository.GetGlobalRepositories().User.List()
	if err != nil {
		return errInternal(c)
	}

	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := users[i]
		out = append(out, fiber.Map{
			"id":           u.ID,
			"name":         u.Name,
			"email":        u.Email,
			"role":         u.Role,
			"organization": u.Organization,
			"createdAt":    u.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"users": out})
}

// HandleCreateUser provisions a team member. The plan's seat limit gates
// admission; anything but an explicit admin role becomes employee.
func HandleCreateUser(c *fiber.Ctx) error {
	admin, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	var req userCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return errValidation(c, "Nom, email et mot de passe requis")
	}

	repos := repository.GetGlobalRepositories()
	checker := plans.NewChecker(repos.Subscription, repos.Document, repos.User)
	check, err := checker.CheckUserLimit(admin.ID)
	if err != nil {
		return errInternal(c)
	}
	if !check.Allowed {
		return jsonError(c, fiber.StatusPaymentRequired, "limit_reached", check.Reason)
	}

	if _, err := repos.User.GetByEmail(req.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "Un compte avec cet email existe déjà")
	}

	role := models.ROLE_EMPLOYEE
	roleLabel := "Employé"
	if req.Role == models.ROLE_ADMIN {
		role = models.ROLE_ADMIN
		roleLabel = "Admin"
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return errValidation(c, "Données invalides")
	}
	user.Organization = admin.Organization
	if err := repos.User.Create(user); err != nil {
		return errInternal(c)
	}

	recordActivity(admin.ID, "Utilisateur créé", fmt.Sprintf("%s (%s)", user.Name, roleLabel), models.TARGET_TYPE_USER)
	notify(user.ID, "Bienvenue !", fmt.Sprintf("Votre compte a été créé par %s. Bienvenue sur Archivist.", admin.Name))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": fiber.Map{"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role},
	})
}

// HandleUpdateUserRole changes another user's role. Admins cannot change
// their own role.
func HandleUpdateUserRole(c *fiber.Ctx) error {
	admin, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	id := c.Params("id")
	if id == admin.ID {
		return errValidation(c, "Vous ne pouvez pas modifier votre propre rôle")
	}

	var req userRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	switch req.Role {
	case models.ROLE_USER, models.ROLE_EMPLOYEE, models.ROLE_ADMIN:
	default:
		return errValidation(c, "Rôle invalide")
	}

	repos := repository.GetGlobalRepositories()
	target, err := repos.User.GetByID(id)
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Utilisateur introuvable")
		}
		return errInternal(c)
	}

	target.Role = req.Role
	if err := repos.User.Update(target); err != nil {
		return errInternal(c)
	}

	recordActivity(admin.ID, "Rôle modifié", fmt.Sprintf("%s : %s", target.Name, req.Role), models.TARGET_TYPE_USER)

	return c.JSON(fiber.Map{
		"user": fiber.Map{"id": target.ID, "name": target.Name, "email": target.Email, "role": target.Role},
	})
}

// HandleDeleteUser removes another account. Self-deletion is refused.
func HandleDeleteUser(c *fiber.Ctx) error {
	admin, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	id := c.Params("id")
	if id == admin.ID {
		return errValidation(c, "Vous ne pouvez pas supprimer votre propre compte")
	}

	repos := repository.GetGlobalRepositories()
	target, err := repos.User.GetByID(id)
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Utilisateur introuvable")
		}
		return errInternal(c)
	}

	if err := repos.User.Delete(target.ID); err != nil {
		return errInternal(c)
	}

	recordActivity(admin.ID, "Utilisateur supprimé", target.Name, models.TARGET_TYPE_USER)

	return c.JSON(fiber.Map{"success": true})
}
