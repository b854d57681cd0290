package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"prd-builder-api/internal/config"
	apperrors "prd-builder-api/pkg/errors"
	"prd-builder-api/pkg/logger"
)

// OpenAIClient calls the chat completions endpoint directly.
type OpenAIClient struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
}

// NewOpenAIClient creates an OpenAI adapter.
func NewOpenAIClient(cfg *config.ProviderConfig, httpClient *http.Client) *OpenAIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIClient{cfg: cfg, httpClient: httpClient}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.OpenAIClient.Complete")
	defer span.End()

	if err := checkAPIKey(ProviderOpenAI, c.cfg.APIKey); err != nil {
		return "", err
	}

	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}

	body, err := json.Marshal(openAIRequest{
		Model: c.cfg.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return "", apperrors.NewProvider("OpenAI request failed").WithError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewProvider("failed to read OpenAI response").WithError(err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", apperrors.NewProvider("failed to decode OpenAI response").WithError(err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("OpenAI API error: status %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = "OpenAI API error: " + parsed.Error.Message
		}
		logger.Warn(ctx, "openai call failed", "status", resp.StatusCode, "model", c.cfg.Model)
		return "", apperrors.NewProvider(msg)
	}

	if len(parsed.Choices) == 0 {
		return "", apperrors.NewProvider("OpenAI returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
