package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// No config file is present in the package directory, so Load
	// yields pure defaults.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prd-builder-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "openai", cfg.LLM.DefaultProvider)
	assert.Equal(t, 5*time.Second, cfg.Autosave.Debounce)

	// Generation is stateless out of the box: caching identical
	// requests is opt-in.
	assert.Equal(t, time.Duration(0), cfg.LLM.ResultCacheTTL)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("EXPAND_TEST_SET", "from-env")

	assert.Equal(t, "from-env", expandEnv("${EXPAND_TEST_SET:fallback}"))
	assert.Equal(t, "fallback", expandEnv("${EXPAND_TEST_UNSET:fallback}"))
	assert.Equal(t, "", expandEnv("${EXPAND_TEST_UNSET:}"))
	// No default and unset: the placeholder stays literal.
	assert.Equal(t, "${EXPAND_TEST_UNSET}", expandEnv("${EXPAND_TEST_UNSET}"))
}
