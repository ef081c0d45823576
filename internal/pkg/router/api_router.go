package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/OussamaBoujdig/archivio1/app/controllers"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/authz"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{Max: 120}))

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Get("/me", middleware.RequireAPIAuth, controllers.HandleMe)

	// Profile
	api.Get("/profile", middleware.RequireAPIAuth, controllers.HandleGetProfile)
	api.Put("/profile", middleware.RequireAPIAuth, controllers.HandleUpdateProfile)

	// Documents
	docs := api.Group("/documents", middleware.RequirePermission(authz.ManageDocuments))
	docs.Get("/", controllers.HandleListDocuments)
	docs.Post("/", controllers.HandleCreateDocument)
	docs.Get("/:id", controllers.HandleGetDocument)
	docs.Put("/:id", controllers.HandleUpdateDocument)
	docs.Delete("/:id", controllers.HandleDeleteDocument)

	// Categories: reading is open to any authenticated user, mutations need
	// the category permission.
	api.Get("/categories", middleware.RequireAPIAuth, controllers.HandleListCategories)
	cats := api.Group("/categories", middleware.RequirePermission(authz.ManageCategories))
	cats.Post("/", controllers.HandleCreateCategory)
	cats.Put("/:id", controllers.HandleUpdateCategory)
	cats.Delete("/:id", controllers.HandleDeleteCategory)

	// Users (admin only)
	users := api.Group("/users", middleware.RequirePermission(authz.ManageUsers))
	users.Get("/", controllers.HandleListUsers)
	users.Post("/", controllers.HandleCreateUser)
	users.Put("/:id", controllers.HandleUpdateUserRole)
	users.Delete("/:id", controllers.HandleDeleteUser)

	// Feeds
	api.Get("/activities", middleware.RequireAPIAuth, controllers.HandleListActivities)
	api.Get("/notifications", middleware.RequireAPIAuth, controllers.HandleListNotifications)
	api.Put("/notifications", middleware.RequireAPIAuth, controllers.HandleMarkAllNotificationsRead)
	api.Put("/notifications/:id/read", middleware.RequireAPIAuth, controllers.HandleMarkNotificationRead)

	// Dashboard
	api.Get("/dashboard", middleware.RequireAPIAuth, controllers.HandleDashboard)

	// Billing. The webhook is called by the payment provider and carries its
	// own signature check instead of a session.
	api.Get("/plans", controllers.HandleListPlans)
	api.Get("/subscription", middleware.RequirePermission(authz.ViewBilling), controllers.HandleGetSubscription)
	stripe := api.Group("/stripe")
	stripe.Post("/checkout", middleware.RequirePermission(authz.ManageBilling), controllers.HandleCheckout)
	stripe.Post("/portal", middleware.RequirePermission(authz.ManageBilling), controllers.HandlePortal)
	stripe.Post("/webhook", controllers.HandleWebhook)

	// Assistant
	assistant := api.Group("/ai", middleware.RequireAPIAuth)
	assistant.Post("/chat", controllers.HandleAssistantChat)
	assistant.Post("/summarize", controllers.HandleSummarizeDocument)
	assistant.Post("/categorize", controllers.HandleCategorizeDocument)
	assistant.Post("/extract-tags", controllers.HandleExtractTags)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
