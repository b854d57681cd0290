// Package llm provides the model provider adapters and routing between
// them.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"

	"prd-builder-api/internal/config"
	apperrors "prd-builder-api/pkg/errors"
)

var tracer = otel.Tracer("llm")

// DefaultSystemPrompt is used when a template does not override it.
const DefaultSystemPrompt = "You are a helpful product management assistant specializing in creating PRDs and product documentation."

// Providers known to the router.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

// Placeholder keys shipped in env templates. A key equal to one of
// these is treated the same as a missing key: the call fails before any
// network traffic.
var placeholderKeys = map[string]string{
	ProviderOpenAI: "your_openai_api_key_here",
	ProviderClaude: "your_claude_api_key_here",
}

// Client is one model provider.
type Client interface {
	// Complete sends one prompt and returns the raw text of the reply.
	// maxTokens caps the completion length; zero means the provider's
	// configured default.
	Complete(ctx context.Context, prompt, systemPrompt string, maxTokens int) (string, error)
}

// checkAPIKey rejects missing and placeholder credentials.
func checkAPIKey(provider, key string) error {
	if strings.TrimSpace(key) == "" || key == placeholderKeys[provider] {
		return apperrors.NewConfiguration(
			fmt.Sprintf("%s API key not configured", provider),
		)
	}
	return nil
}

// Router selects the adapter for a provider name.
type Router struct {
	clients  map[string]Client
	models   map[string]string
	keys     map[string]string
	fallback string
}

// NewRouter builds adapters for every configured provider. httpClient
// is shared by all adapters; pass nil for http.DefaultClient.
func NewRouter(cfg *config.LLMConfig, httpClient *http.Client) *Router {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clients := make(map[string]Client)
	models := make(map[string]string)
	keys := make(map[string]string)
	if pc, ok := cfg.Providers[ProviderOpenAI]; ok {
		clients[ProviderOpenAI] = NewOpenAIClient(&pc, httpClient)
		models[ProviderOpenAI] = pc.Model
		keys[ProviderOpenAI] = pc.APIKey
	}
	if pc, ok := cfg.Providers[ProviderClaude]; ok {
		clients[ProviderClaude] = NewClaudeClient(&pc, httpClient)
		models[ProviderClaude] = pc.Model
		keys[ProviderClaude] = pc.APIKey
	}

	fallback := cfg.DefaultProvider
	if fallback == "" {
		fallback = ProviderOpenAI
	}

	return &Router{clients: clients, models: models, keys: keys, fallback: fallback}
}

// ModelFor returns the configured model name for a provider, for
// logging and metric labels.
func (r *Router) ModelFor(provider string) string {
	return r.models[provider]
}

// Configured reports whether the named provider (default when empty)
// has a usable API key.
func (r *Router) Configured(provider string) bool {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		name = r.fallback
	}
	key, ok := r.keys[name]
	if !ok {
		return false
	}
	return checkAPIKey(name, key) == nil
}

// DefaultProvider returns the provider used when a request names none.
func (r *Router) DefaultProvider() string {
	return r.fallback
}

// For returns the adapter for provider, falling back to the default
// when provider is empty.
func (r *Router) For(provider string) (Client, string, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		name = r.fallback
	}
	client, ok := r.clients[name]
	if !ok {
		return nil, name, apperrors.NewConfiguration(
			fmt.Sprintf("unknown AI provider %q", name),
		)
	}
	return client, name, nil
}
