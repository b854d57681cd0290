package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFormData(t *testing.T) {
	form, err := decodeFormData([]byte(`{"appName":"TaskFlow","platform":["web"]}`))
	require.NoError(t, err)
	assert.Equal(t, "TaskFlow", form["appName"])
	assert.Equal(t, []any{"web"}, form["platform"])
}

func TestDecodeFormDataEmptyColumn(t *testing.T) {
	for _, raw := range [][]byte{nil, {}} {
		form, err := decodeFormData(raw)
		require.NoError(t, err)
		require.NotNil(t, form)
		assert.Empty(t, form)
	}

	// JSON null also yields a usable empty form.
	form, err := decodeFormData([]byte(`null`))
	require.NoError(t, err)
	require.NotNil(t, form)
}

func TestDecodeFormDataCorruptColumn(t *testing.T) {
	// A row that cannot be decoded is an error, not an empty document.
	_, err := decodeFormData([]byte(`{"appName":`))
	require.Error(t, err)
}
