package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/workflow/prompt"
)

func mvpTemplate(t *testing.T) *prompt.Template {
	t.Helper()
	tmpl, err := prompt.NewRegistry().Get("generate-mvp-features")
	require.NoError(t, err)
	return tmpl
}

func TestMergeResultPatchesSections(t *testing.T) {
	form := entity.FormData{
		"appName": "TaskFlow",
		"featurePriority": map[string]any{
			"mustHave": []any{"old feature"},
		},
	}

	result := map[string]any{
		"mustHave":   []any{"login", "tasks"},
		"shouldHave": []any{"search"},
	}

	out, merged := MergeResult(form, mvpTemplate(t), result)
	assert.Equal(t, 2, merged)

	fp := out["featurePriority"].(map[string]any)
	assert.Equal(t, []any{"login", "tasks"}, fp["mustHave"])
	assert.Equal(t, []any{"search"}, fp["shouldHave"])
	assert.Equal(t, "TaskFlow", out["appName"])

	// Source form untouched.
	assert.Equal(t, []any{"old feature"},
		form["featurePriority"].(map[string]any)["mustHave"])
}

func TestMergeResultEmptyIsNoOp(t *testing.T) {
	form := entity.FormData{
		"appName": "TaskFlow",
		"featurePriority": map[string]any{
			"mustHave": []any{"a"},
		},
	}

	out, merged := MergeResult(form, mvpTemplate(t), map[string]any{})
	assert.Equal(t, 0, merged)
	assert.Equal(t, form, out)
}

func TestMergeResultSkipsUnboundAndMismatched(t *testing.T) {
	form := entity.FormData{}

	result := map[string]any{
		"mustHave":  "not an array",            // kind mismatch
		"narrative": []any{"unbound key here"}, // not in the binding table
	}

	out, merged := MergeResult(form, mvpTemplate(t), result)
	assert.Equal(t, 0, merged)
	assert.NotContains(t, out, "featurePriority")
	assert.NotContains(t, out, "narrative")
}

func TestMergeResultCreatesNestedPath(t *testing.T) {
	tmpl, err := prompt.NewRegistry().Get("generate-user-journey")
	require.NoError(t, err)

	out, merged := MergeResult(entity.FormData{}, tmpl, map[string]any{
		"coreUsageFlow": "open app, add task, done",
	})
	assert.Equal(t, 1, merged)

	journey := out["userJourney"].(map[string]any)
	assert.Equal(t, "open app, add task, done", journey["coreUsageFlow"])
}

func TestMergeResultNilTemplate(t *testing.T) {
	form := entity.FormData{"a": "b"}
	out, merged := MergeResult(form, nil, map[string]any{"x": "y"})
	assert.Equal(t, 0, merged)
	assert.Equal(t, form, out)
}
