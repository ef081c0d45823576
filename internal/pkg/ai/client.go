package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/env"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel    = "gpt-4o-mini"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage mirrors the provider's token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the answer to one completion call. Model is "demo-mode" when
// the answer was synthesized locally.
type Response struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   *Usage `json:"usage,omitempty"`
}

const systemPrompt = `Tu es l'assistant IA d'Archivist, une plateforme d'archivage documentaire professionnelle.
Tu aides les utilisateurs à gérer, rechercher, résumer et organiser leurs documents.
Tu réponds toujours en français, de manière concise et professionnelle.
Tu peux résumer des documents, suggérer des catégories, extraire des mots-clés, et répondre aux questions sur l'organisation documentaire.
Si on te demande quelque chose hors de ce contexte, redirige poliment vers les fonctionnalités de la plateforme.`

// Client talks to an OpenAI-compatible chat completion endpoint. Without an
// API key, or when the provider fails, it falls back to deterministic demo
// answers so the assistant always responds.
type Client struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

// NewClient builds a client from the environment.
func NewClient() *Client {
	return &Client{
		apiKey:   env.GetEnv("OPENAI_API_KEY", ""),
		endpoint: env.GetEnv("OPENAI_API_URL", defaultEndpoint),
		model:    env.GetEnv("OPENAI_MODEL", defaultModel),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWith builds a client with explicit settings, for tests.
func NewClientWith(apiKey, endpoint string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    defaultModel,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured reports whether a provider API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Chat answers a conversation, prepending the platform system prompt.
func (c *Client) Chat(ctx context.Context, userMessages []Message) *Response {
	messages := append([]Message{{Role: "system", Content: systemPrompt}}, userMessages...)
	return c.complete(ctx, messages, 1024)
}

// SummarizeDocument produces a structured markdown summary of a document.
func (c *Client) SummarizeDocument(ctx context.Context, title, description, category string, tags []string) *Response {
	messages := []Message{
		{
			Role:    "system",
			Content: "Tu es un assistant de résumé documentaire. Génère un résumé structuré et concis du document suivant. Utilise du markdown avec des titres, listes et points clés.",
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Résume ce document :\n\nTitre : %s\nCatégorie : %s\nTags : %s\nDescription : %s", title, category, strings.Join(tags, ", "), description),
		},
	}
	return c.complete(ctx, messages, 512)
}

// CategorizeDocument suggests the best category for a document among the
// existing ones. The answer is a JSON object.
func (c *Client) CategorizeDocument(ctx context.Context, title, description, fileName string, existingCategories []string) *Response {
	messages := []Message{
		{
			Role:    "system",
			Content: fmt.Sprintf(`Tu es un assistant de catégorisation. Analyse le document et suggère la catégorie la plus appropriée parmi : %s. Réponds UNIQUEMENT en JSON : {"category": "...", "confidence": 0.0-1.0, "alternatives": ["..."]}`, strings.Join(existingCategories, ", ")),
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Catégorise ce document :\nTitre : %s\nFichier : %s\nDescription : %s", title, fileName, description),
		},
	}
	return c.complete(ctx, messages, 128)
}

// ExtractTags extracts keywords from a document. The answer is a JSON object.
func (c *Client) ExtractTags(ctx context.Context, title, description, category string) *Response {
	messages := []Message{
		{
			Role:    "system",
			Content: `Tu es un assistant d'extraction de mots-clés. Extrais les tags les plus pertinents du document. Réponds UNIQUEMENT en JSON : {"tags": ["..."], "confidence": 0.0-1.0}`,
		},
		{
			Role:    "user",
			Content: fmt.Sprintf("Extrais les tags :\nTitre : %s\nCatégorie : %s\nDescription : %s", title, category, description),
		},
	}
	return c.complete(ctx, messages, 128)
}

func (c *Client) complete(ctx context.Context, messages []Message, maxTokens int) *Response {
	if !c.IsConfigured() {
		return simulateResponse(messages)
	}

	resp, err := c.callProvider(ctx, messages, maxTokens)
	if err != nil {
		log.Printf("[AI] provider call failed, falling back to demo mode: %v", err)
		return simulateResponse(messages)
	}
	return resp
}

func (c *Client) callProvider(ctx context.Context, messages []Message, maxTokens int) (*Response, error) {
	payload, err := json.Marshal(map[string]any{
		"model":       c.model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": 0.3,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	var parsed struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage *Usage `json:"usage"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("provider returned no choices")
	}

	return &Response{
		Content: parsed.Choices[0].Message.Content,
		Model:   parsed.Model,
		Usage:   parsed.Usage,
	}, nil
}
