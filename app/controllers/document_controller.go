package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/OussamaBoujdig/archivio1/app/models"
	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/plans"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/utils"
)

type documentCreateRequest struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Size        string   `json:"size"`
	SizeBytes   int64    `json:"sizeBytes"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	FileName    string   `json:"fileName"`
}

// HandleListDocuments lists documents, filtered when q, category or status
// query parameters are present.
func HandleListDocuments(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()

	query := c.Query("q")
	category := c.Query("category")
	status := c.Query("status")

	var docs []models.Document
	var err error
	if query != "" || category != "" || status != "" {
		docs, err = repos.Document.Search(query, category, status)
	} else {
		docs, err = repos.Document.List()
	}
	if err != nil {
		return errInternal(c)
	}
	return c.JSON(fiber.Map{"documents": docs})
}

// HandleCreateDocument registers a document after the plan admits one more
// document and its bytes. Denials are 402 with the reason.
func HandleCreateDocument(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	var req documentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Title == "" || req.Category == "" {
		return errValidation(c, "Titre et catégorie requis")
	}

	repos := repository.GetGlobalRepositories()
	checker := plans.NewChecker(repos.Subscription, repos.Document, repos.User)

	check, err := checker.CheckDocumentLimit(user.ID)
	if err != nil {
		return errInternal(c)
	}
	if !check.Allowed {
		return jsonError(c, fiber.StatusPaymentRequired, "limit_reached", check.Reason)
	}
	check, err = checker.CheckStorageLimit(user.ID, req.SizeBytes)
	if err != nil {
		return errInternal(c)
	}
	if !check.Allowed {
		return jsonError(c, fiber.StatusPaymentRequired, "limit_reached", check.Reason)
	}

	now := time.Now()
	doc := &models.Document{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Category:    req.Category,
		Type:        req.Type,
		Size:        req.Size,
		SizeBytes:   req.SizeBytes,
		Status:      models.DOCUMENT_STATUS_PROCESSING,
		Date:        now.Format("2006-01-02"),
		Tags:        req.Tags,
		Description: req.Description,
		FileName:    req.FileName,
		UploadedBy:  user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if doc.Type == "" {
		doc.Type = "PDF"
	}
	if doc.Size == "" {
		doc.Size = utils.FormatBytes(doc.SizeBytes)
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.FileName == "" {
		doc.FileName = strings.ToLower(strings.ReplaceAll(doc.Title, " ", "-")) + ".pdf"
	}
	if err := doc.Validate(); err != nil {
		return errValidation(c, "Données invalides")
	}

	if err := repos.Document.Create(doc); err != nil {
		return errInternal(c)
	}

	recordActivity(user.ID, "Document importé", doc.Title, models.TARGET_TYPE_DOCUMENT)
	notify(user.ID, "Document importé", fmt.Sprintf("Le document \"%s\" a été importé avec succès.", doc.Title))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": doc})
}

// HandleGetDocument returns one document by id.
func HandleGetDocument(c *fiber.Ctx) error {
	doc, err := repository.GetGlobalRepositories().Document.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Document introuvable")
		}
		return errInternal(c)
	}
	return c.JSON(fiber.Map{"document": doc})
}

// HandleUpdateDocument applies a partial update.
func HandleUpdateDocument(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	var update models.DocumentUpdate
	if err := c.BodyParser(&update); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if update.Status != nil {
		switch *update.Status {
		case models.DOCUMENT_STATUS_DRAFT, models.DOCUMENT_STATUS_PROCESSING, models.DOCUMENT_STATUS_ARCHIVED:
		default:
			return errValidation(c, "Statut invalide")
		}
	}

	doc, err := repository.GetGlobalRepositories().Document.Update(c.Params("id"), update)
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Document introuvable")
		}
		return errInternal(c)
	}

	action := "Document modifié"
	if update.Status != nil && *update.Status == models.DOCUMENT_STATUS_ARCHIVED {
		action = "Document archivé"
	}
	recordActivity(user.ID, action, doc.Title, models.TARGET_TYPE_DOCUMENT)

	return c.JSON(fiber.Map{"document": doc})
}

// HandleDeleteDocument removes a document permanently.
func HandleDeleteDocument(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return errUnauthorized(c)
	}

	repos := repository.GetGlobalRepositories()
	doc, err := repos.Document.GetByID(c.Params("id"))
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Document introuvable")
		}
		return errInternal(c)
	}

	if err := repos.Document.Delete(doc.ID); err != nil {
		return errInternal(c)
	}

	recordActivity(user.ID, "Document supprimé", doc.Title, models.TARGET_TYPE_DOCUMENT)
	notify(user.ID, "Document supprimé", fmt.Sprintf("Le document \"%s\" a été supprimé.", doc.Title))

	return c.JSON(fiber.Map{"success": true})
}
