package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "prd-builder-api/pkg/errors"
)

func TestExtractJSONDirect(t *testing.T) {
	obj, err := ExtractJSON(`{"features": ["login", "search"]}`)
	require.NoError(t, err)
	assert.Len(t, obj["features"], 2)
}

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Here is the result you asked for:\n```json\n{\"summary\": \"a PRD\"}\n```\nLet me know if you need changes."
	obj, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "a PRD", obj["summary"])
}

func TestExtractJSONFencedBlockWithoutLanguage(t *testing.T) {
	raw := "```\n{\"ok\": true}\n```"
	obj, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, true, obj["ok"])
}

func TestExtractJSONEmbeddedSpan(t *testing.T) {
	raw := `Sure! The object {"name": "mvp", "done": false} covers it.`
	obj, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "mvp", obj["name"])
}

func TestExtractJSONPrefersDirectOverSpan(t *testing.T) {
	// The whole output is valid JSON; the span heuristic must not trim it.
	raw := `{"outer": {"inner": 1}}`
	obj, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.Contains(t, obj, "outer")
}

func TestExtractJSONRejectsNonObject(t *testing.T) {
	// A bare array parses but is not an object; with no object anywhere
	// in the output extraction fails.
	_, err := ExtractJSON(`[1, 2, 3]`)
	require.Error(t, err)
	assert.True(t, apperrors.IsExtraction(err))
}

func TestExtractJSONFailure(t *testing.T) {
	for _, raw := range []string{"", "   ", "no json here", "{broken", "```json\nnope\n```"} {
		_, err := ExtractJSON(raw)
		require.Error(t, err, "input %q", raw)
		assert.True(t, apperrors.IsExtraction(err))
		assert.Contains(t, err.Error(), "failed to parse AI response as JSON")
	}
}
