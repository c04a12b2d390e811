package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tutorium/backend/config"
)

// Degraded responses returned to the user when the completion service cannot
// be reached. These are answers, not errors: the route layer forwards them
// verbatim.
const (
	MissingAPIKeyMessage = "Missing GROQ_API_KEY in .env"
	UnavailableMessage   = "AI service unavailable. Try again."
)

const systemPrompt = "You are an educational AI tutor. " +
	"For math and factual queries, give only the final answer, e.g., 'Answer: 4'. " +
	"Avoid detailed breakdown unless the question requires explanation."

type AIClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewAIClient(cfg *config.Config) *AIClient {
	return &AIClient{
		httpClient: &http.Client{Timeout: cfg.AITimeout},
		apiKey:     cfg.GroqAPIKey,
		baseURL:    cfg.GroqBaseURL,
		model:      cfg.GroqModel,
	}
}

// Ask sends a chat completion request and always returns a displayable
// string. Missing credentials, non-success statuses and transport failures
// all degrade to fixed or formatted messages rather than errors.
func (c *AIClient) Ask(ctx context.Context, prompt string) string {
	if c.apiKey == "" {
		return MissingAPIKeyMessage
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
		MaxTokens:   200,
		TopP:        0.8,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Sprintf("Error calling AI: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return fmt.Sprintf("Error calling AI: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error calling AI: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UnavailableMessage
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return fmt.Sprintf("Error calling AI: %v", err)
	}
	if len(completion.Choices) == 0 {
		return UnavailableMessage
	}

	return completion.Choices[0].Message.Content
}
