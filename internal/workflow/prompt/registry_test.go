package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "prd-builder-api/pkg/errors"
)

func TestRegistryHasAllTemplates(t *testing.T) {
	reg := NewRegistry()
	assert.Len(t, reg.IDs(), 23)

	for _, id := range reg.IDs() {
		tmpl, err := reg.Get(id)
		require.NoError(t, err)
		assert.NotEmpty(t, tmpl.SystemPrompt, id)
		assert.GreaterOrEqual(t, tmpl.MaxTokens, 1500, id)
		assert.LessOrEqual(t, tmpl.MaxTokens, 4000, id)
		assert.NotNil(t, tmpl.Build, id)
	}
}

func TestRegistryUnknownTemplate(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get("generate-unicorns")
	require.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeTemplateNotFound, appErr.Code)
}

func TestBuildInterpolatesInputs(t *testing.T) {
	reg := NewRegistry()
	tmpl, err := reg.Get("generate-mvp-features")
	require.NoError(t, err)

	prompt := tmpl.Build(Inputs{
		"appName":  "TaskFlow",
		"appIdea":  "a task manager",
		"platform": []any{"web", "ios"},
		"audience": []any{"freelancers"},
	})

	assert.Contains(t, prompt, `"TaskFlow" (a task manager)`)
	assert.Contains(t, prompt, "Platform: web, ios")
	assert.Contains(t, prompt, "Audience: freelancers")
	assert.Contains(t, prompt, `{"mustHave":`)
}

func TestBuildHandlesAbsentInputs(t *testing.T) {
	reg := NewRegistry()

	tmpl, err := reg.Get("generate-success-metrics")
	require.NoError(t, err)
	prompt := tmpl.Build(Inputs{"appName": "TaskFlow"})
	assert.Contains(t, prompt, "Target users: not specified")

	tmpl, err = reg.Get("generate-nav-architecture")
	require.NoError(t, err)
	prompt = tmpl.Build(Inputs{})
	assert.Contains(t, prompt, "App structure: {}")
}

func TestValidateDependenciesCarriesCompleteness(t *testing.T) {
	reg := NewRegistry()
	tmpl, err := reg.Get("validate-dependencies")
	require.NoError(t, err)

	prompt := tmpl.Build(Inputs{
		"summary":      map[string]any{"hasAppName": true},
		"completeness": 75,
	})

	assert.Contains(t, prompt, "Completeness: 75%.")
	assert.Contains(t, prompt, `"completeness":75`)
}

func TestBindingsPointIntoKnownSections(t *testing.T) {
	reg := NewRegistry()
	for _, id := range reg.IDs() {
		tmpl, err := reg.Get(id)
		require.NoError(t, err)

		if strings.HasPrefix(id, "validate-") {
			assert.Empty(t, tmpl.Bindings, id)
			continue
		}
		assert.NotEmpty(t, tmpl.Bindings, id)
		for _, b := range tmpl.Bindings {
			assert.NotEmpty(t, b.ResultKey, id)
			assert.NotEmpty(t, b.SectionPath, id)
			assert.Contains(t, []Kind{KindObject, KindArray, KindString, KindBool}, b.Kind, id)
			assert.Contains(t, []Mode{ModeReplace, ModeAppend}, b.Mode, id)
		}
	}
}

func TestKindMatches(t *testing.T) {
	assert.True(t, KindObject.Matches(map[string]any{}))
	assert.True(t, KindArray.Matches([]any{1}))
	assert.True(t, KindString.Matches("x"))
	assert.True(t, KindBool.Matches(true))

	assert.False(t, KindArray.Matches(map[string]any{}))
	assert.False(t, KindString.Matches(42))
	assert.False(t, KindObject.Matches(nil))
}
