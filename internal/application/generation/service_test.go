package generation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prd-builder-api/internal/config"
	"prd-builder-api/internal/infrastructure/llm"
	"prd-builder-api/internal/workflow/prompt"
	apperrors "prd-builder-api/pkg/errors"
)

// stubTransport serves a canned chat-completions reply for every
// request, keeping generation tests off the network.
type stubTransport struct {
	content string
	status  int
	calls   int
}

func (t *stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	t.calls++
	status := t.status
	if status == 0 {
		status = http.StatusOK
	}
	body, _ := json.Marshal(map[string]any{
		"choices": []any{
			map[string]any{"message": map[string]any{"content": t.content}},
		},
	})
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(string(body))),
	}, nil
}

func newTestService(transport http.RoundTripper) *Service {
	cfg := &config.LLMConfig{
		DefaultProvider: "openai",
		Providers: map[string]config.ProviderConfig{
			"openai": {
				APIKey:    "sk-test",
				BaseURL:   "https://api.openai.com/v1",
				Model:     "gpt-4o-mini",
				MaxTokens: 2000,
			},
		},
	}
	router := llm.NewRouter(cfg, &http.Client{Transport: transport})
	return NewService(prompt.NewRegistry(), router, nil)
}

func TestGenerateMVPFeaturesFromFencedBlock(t *testing.T) {
	transport := &stubTransport{
		content: "Here you go:\n```json\n{\"mustHave\":[\"login\",\"tasks\"],\"shouldHave\":[\"search\"],\"couldHave\":[],\"wontHave\":[\"offline mode\"]}\n```",
	}
	svc := newTestService(transport)

	result, err := svc.Generate(context.Background(), "generate-mvp-features", "", prompt.Inputs{
		"appName": "TaskFlow",
		"appIdea": "a task manager",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, transport.calls)

	assert.Equal(t, []any{"login", "tasks"}, result["mustHave"])
	assert.Equal(t, []any{"offline mode"}, result["wontHave"])
}

func TestGenerateDropsMismatchedShapes(t *testing.T) {
	transport := &stubTransport{
		content: `{"mustHave":"login","shouldHave":["search"]}`,
	}
	svc := newTestService(transport)

	result, err := svc.Generate(context.Background(), "generate-mvp-features", "", prompt.Inputs{})
	require.NoError(t, err)

	// mustHave came back as a string instead of an array and is dropped.
	assert.NotContains(t, result, "mustHave")
	assert.Equal(t, []any{"search"}, result["shouldHave"])
}

func TestGenerateExtractionFailure(t *testing.T) {
	transport := &stubTransport{content: "I could not produce the document, sorry."}
	svc := newTestService(transport)

	_, err := svc.Generate(context.Background(), "generate-mvp-features", "", prompt.Inputs{})
	require.Error(t, err)
	assert.True(t, apperrors.IsExtraction(err))
}

func TestGenerateUnknownTemplate(t *testing.T) {
	transport := &stubTransport{content: "{}"}
	svc := newTestService(transport)

	_, err := svc.Generate(context.Background(), "generate-nonsense", "", prompt.Inputs{})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeTemplateNotFound, apperrors.AsAppError(err).Code)
	assert.Equal(t, 0, transport.calls)
}

func TestCompletenessSummary(t *testing.T) {
	formData := map[string]any{
		"appName":  "TaskFlow",
		"appIdea":  "a task manager",
		"platform": []any{"web"},
		"featurePriority": map[string]any{
			"mustHave": []any{"login"},
		},
		"budgetPlanning": map[string]any{
			"costs": map[string]any{"developmentCosts": "$50k"},
		},
	}

	summary, completeness := CompletenessSummary(formData)
	assert.Equal(t, true, summary["hasAppName"])
	assert.Equal(t, true, summary["hasFeatures"])
	assert.Equal(t, true, summary["hasBudget"])
	assert.Equal(t, false, summary["hasTechStack"])
	assert.Equal(t, false, summary["hasDeployment"])

	// 5 of 12 checks filled.
	assert.Equal(t, 42, completeness)
}

func TestCompletenessSummaryEmptyForm(t *testing.T) {
	summary, completeness := CompletenessSummary(map[string]any{})
	assert.Equal(t, 0, completeness)
	for key, v := range summary {
		assert.Equal(t, false, v, key)
	}
}

func TestGenerateIdenticalRequestsEachReachProvider(t *testing.T) {
	transport := &stubTransport{
		content: `{"mustHave":["login"],"shouldHave":[],"couldHave":[],"wontHave":[]}`,
	}
	svc := newTestService(transport)

	inputs := prompt.Inputs{"appName": "TaskFlow", "appIdea": "a task manager"}

	_, err := svc.Generate(context.Background(), "generate-mvp-features", "", inputs)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), "generate-mvp-features", "", inputs)
	require.NoError(t, err)

	// Re-triggering a generation always produces a fresh provider call;
	// nothing is served from a cache unless one is configured.
	assert.Equal(t, 2, transport.calls)
}
