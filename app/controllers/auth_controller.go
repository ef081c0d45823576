package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/billing"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/session"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleRegister creates an account, opens a session and puts the new user
// on the free plan.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return errValidation(c, "Nom, email et mot de passe requis")
	}
	if len(req.Password) < 6 {
		return errValidation(c, "Le mot de passe doit contenir au moins 6 caractères")
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.User.GetByEmail(req.Email); err == nil {
		return jsonError(c, fiber.StatusConflict, "conflict", "Un compte avec cet email existe déjà")
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Password, models.ROLE_USER)
	if err != nil {
		return errValidation(c, "Données invalides")
	}
	if err := repos.User.Create(user); err != nil {
		return errInternal(c)
	}

	if _, err := billing.NewServiceDefault().StartFreePlan(user.ID); err != nil {
		return errInternal(c)
	}

	token, err := session.GetService().Create(user.ID)
	if err != nil {
		return errInternal(c)
	}
	setSessionCookie(c, token)

	recordActivity(user.ID, "Inscription", "Nouveau compte créé", models.TARGET_TYPE_USER)
	notify(user.ID, "Bienvenue !", "Bienvenue sur Archivist. Commencez par importer vos premiers documents.")

	return c.JSON(fiber.Map{"user": publicUser(user)})
}

// HandleLogin verifies credentials and opens a session. Unknown email and
// wrong password return the same message.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Email == "" || req.Password == "" {
		return errValidation(c, "Email et mot de passe requis")
	}

	user, err := repository.GetGlobalRepositories().User.GetByEmail(req.Email)
	if err != nil || !user.CheckPassword(req.Password) {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized", "Email ou mot de passe incorrect")
	}

	token, err := session.GetService().Create(user.ID)
	if err != nil {
		return errInternal(c)
	}
	setSessionCookie(c, token)

	recordActivity(user.ID, "Connexion", "Session démarrée", models.TARGET_TYPE_USER)

	return c.JSON(fiber.Map{"user": publicUser(user)})
}

// HandleLogout destroys the session and clears the cookie. Always succeeds.
func HandleLogout(c *fiber.Ctx) error {
	if token := c.Cookies(session.CookieName); token != "" {
		_ = session.GetService().Destroy(token)
	}
	clearSessionCookie(c)
	return c.JSON(fiber.Map{"success": true})
}

// HandleMe returns the authenticated user's own record.
func HandleMe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}
	return c.JSON(fiber.Map{"user": publicUser(user)})
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(session.Duration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
