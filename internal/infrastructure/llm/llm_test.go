package llm

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prd-builder-api/internal/config"
	apperrors "prd-builder-api/pkg/errors"
)

// countingTransport fails every request and counts attempts, so tests
// can prove nothing hit the network.
type countingTransport struct {
	calls int
}

func (t *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls++
	return nil, http.ErrHandlerTimeout
}

func testLLMConfig(openaiKey, claudeKey string) *config.LLMConfig {
	return &config.LLMConfig{
		DefaultProvider: "openai",
		Providers: map[string]config.ProviderConfig{
			"openai": {
				APIKey:    openaiKey,
				BaseURL:   "https://api.openai.com/v1",
				Model:     "gpt-4o-mini",
				MaxTokens: 2000,
			},
			"claude": {
				APIKey:    claudeKey,
				Model:     "claude-3-haiku-20240307",
				MaxTokens: 2000,
			},
		},
	}
}

func TestRouterSelectsDefaultProvider(t *testing.T) {
	router := NewRouter(testLLMConfig("sk-test", "sk-ant-test"), nil)

	_, name, err := router.For("")
	require.NoError(t, err)
	assert.Equal(t, "openai", name)

	_, name, err = router.For("claude")
	require.NoError(t, err)
	assert.Equal(t, "claude", name)
}

func TestRouterNormalizesProviderName(t *testing.T) {
	router := NewRouter(testLLMConfig("sk-test", "sk-ant-test"), nil)

	_, name, err := router.For("  Claude ")
	require.NoError(t, err)
	assert.Equal(t, "claude", name)
}

func TestRouterRejectsUnknownProvider(t *testing.T) {
	router := NewRouter(testLLMConfig("sk-test", "sk-ant-test"), nil)

	_, _, err := router.For("gemini")
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestMissingKeyFailsBeforeNetwork(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
	}{
		{"openai empty", "openai", ""},
		{"openai placeholder", "openai", "your_openai_api_key_here"},
		{"claude empty", "claude", ""},
		{"claude placeholder", "claude", "your_claude_api_key_here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &countingTransport{}
			cfg := testLLMConfig(tt.key, tt.key)
			router := NewRouter(cfg, &http.Client{Transport: transport})

			client, _, err := router.For(tt.provider)
			require.NoError(t, err)

			_, err = client.Complete(context.Background(), "hello", "", 100)
			require.Error(t, err)
			assert.True(t, apperrors.IsConfiguration(err))
			assert.Equal(t, 0, transport.calls, "no network call expected")
		})
	}
}

func TestOpenAIProviderErrorClass(t *testing.T) {
	transport := &countingTransport{}
	client := NewOpenAIClient(&config.ProviderConfig{
		APIKey:    "sk-test",
		BaseURL:   "https://api.openai.com/v1",
		Model:     "gpt-4o-mini",
		MaxTokens: 2000,
	}, &http.Client{Transport: transport})

	_, err := client.Complete(context.Background(), "hello", "", 100)
	require.Error(t, err)
	assert.True(t, apperrors.IsProvider(err))
	assert.Equal(t, 1, transport.calls)
}
