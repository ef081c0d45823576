package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/usercontext"
)

// HandleListNotifications returns the caller's notifications with the unread
// count.
func HandleListNotifications(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)
	repos := repository.GetGlobalRepositories()

	notifications, err := repos.Notification.ListByUser(userID)
	if err != nil {
		return errInternal(c)
	}
	unread, err := repos.Notification.UnreadCount(userID)
	if err != nil {
		return errInternal(c)
	}

	return c.JSON(fiber.Map{"notifications": notifications, "unreadCount": unread})
}

// HandleMarkNotificationRead marks one notification as read.
func HandleMarkNotificationRead(c *fiber.Ctx) error {
	err := repository.GetGlobalRepositories().Notification.MarkRead(c.Params("id"), usercontext.GetUserID(c))
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Notification introuvable")
		}
		return errInternal(c)
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleMarkAllNotificationsRead marks every notification of the caller as
// read.
func HandleMarkAllNotificationsRead(c *fiber.Ctx) error {
	if err := repository.GetGlobalRepositories().Notification.MarkAllRead(usercontext.GetUserID(c)); err != nil {
		return errInternal(c)
	}
	return c.JSON(fiber.Map{"success": true})
}
