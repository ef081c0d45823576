package controllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/app/repository"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/ai"
)

type chatRequest struct {
	Messages []ai.Message `json:"messages"`
}

type summarizeRequest struct {
	DocumentID string `json:"documentId"`
}

type categorizeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FileName    string `json:"fileName"`
}

type extractTagsRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// HandleAssistantChat answers a conversation. The assistant always responds;
// without a provider key the answer comes from demo mode.
func HandleAssistantChat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if len(req.Messages) == 0 {
		return errValidation(c, "Messages requis")
	}

	client := ai.NewClient()
	result := client.Chat(c.Context(), req.Messages)
	return c.JSON(fiber.Map{
		"message":    result.Content,
		"model":      result.Model,
		"usage":      result.Usage,
		"configured": client.IsConfigured(),
	})
}

// HandleSummarizeDocument produces a summary of a stored document.
func HandleSummarizeDocument(c *fiber.Ctx) error {
	var req summarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.DocumentID == "" {
		return errValidation(c, "ID du document requis")
	}

	doc, err := repository.GetGlobalRepositories().Document.GetByID(req.DocumentID)
	if err != nil {
		if isNotFound(err) {
			return errNotFound(c, "Document non trouvé")
		}
		return errInternal(c)
	}

	client := ai.NewClient()
	result := client.SummarizeDocument(c.Context(), doc.Title, doc.Description, doc.Category, doc.Tags)
	return c.JSON(fiber.Map{
		"summary":    result.Content,
		"model":      result.Model,
		"configured": client.IsConfigured(),
	})
}

// HandleCategorizeDocument suggests a category among the existing ones. When
// the model's JSON cannot be parsed, the first category wins with low
// confidence.
func HandleCategorizeDocument(c *fiber.Ctx) error {
	var req categorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Title == "" {
		return errValidation(c, "Titre requis")
	}

	cats, err := repository.GetGlobalRepositories().Category.List()
	if err != nil {
		return errInternal(c)
	}
	names := make([]string, 0, len(cats))
	for _, cat := range cats {
		names = append(names, cat.Name)
	}

	client := ai.NewClient()
	result := client.CategorizeDocument(c.Context(), req.Title, req.Description, req.FileName, names)

	var parsed struct {
		Category     string   `json:"category"`
		Confidence   float64  `json:"confidence"`
		Alternatives []string `json:"alternatives"`
	}
	if err := json.Unmarshal([]byte(result.Content), &parsed); err != nil || parsed.Category == "" {
		parsed.Confidence = 0.5
		parsed.Alternatives = []string{}
		if len(names) > 0 {
			parsed.Category = names[0]
		}
	}
	if parsed.Alternatives == nil {
		parsed.Alternatives = []string{}
	}

	return c.JSON(fiber.Map{
		"category":     parsed.Category,
		"confidence":   parsed.Confidence,
		"alternatives": parsed.Alternatives,
		"model":        result.Model,
		"configured":   client.IsConfigured(),
	})
}

// HandleExtractTags extracts keywords for a document.
func HandleExtractTags(c *fiber.Ctx) error {
	var req extractTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return errValidation(c, "Requête invalide")
	}
	if req.Title == "" {
		return errValidation(c, "Titre requis")
	}

	client := ai.NewClient()
	result := client.ExtractTags(c.Context(), req.Title, req.Description, req.Category)

	var parsed struct {
		Tags       []string `json:"tags"`
		Confidence float64  `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(result.Content), &parsed); err != nil || parsed.Tags == nil {
		parsed.Tags = []string{}
		parsed.Confidence = 0.5
	}

	return c.JSON(fiber.Map{
		"tags":       parsed.Tags,
		"confidence": parsed.Confidence,
		"model":      result.Model,
		"configured": client.IsConfigured(),
	})
}
