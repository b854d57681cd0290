package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"prd-builder-api/internal/config"
	apperrors "prd-builder-api/pkg/errors"
)

// ClaudeClient calls the Anthropic Messages API through the official
// SDK.
type ClaudeClient struct {
	cfg        *config.ProviderConfig
	httpClient *http.Client
}

// NewClaudeClient creates a Claude adapter. The SDK client itself is
// built per call so that credential checks stay ahead of any transport
// setup.
func NewClaudeClient(cfg *config.ProviderConfig, httpClient *http.Client) *ClaudeClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ClaudeClient{cfg: cfg, httpClient: httpClient}
}

// Complete sends one message and concatenates the text blocks of the
// reply.
func (c *ClaudeClient) Complete(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.ClaudeClient.Complete")
	defer span.End()

	if err := checkAPIKey(ProviderClaude, c.cfg.APIKey); err != nil {
		return "", err
	}

	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if maxTokens <= 0 {
		maxTokens = c.cfg.MaxTokens
	}

	opts := []option.RequestOption{
		option.WithAPIKey(c.cfg.APIKey),
		option.WithHTTPClient(c.httpClient),
	}
	if c.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.Model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		span.RecordError(err)
		return "", apperrors.NewProvider("Claude request failed").WithError(err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return "", apperrors.NewProvider("Claude returned no text content")
	}

	return sb.String(), nil
}
