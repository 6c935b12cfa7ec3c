package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// WHEN
	cfg, err := Load()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LogTextFormat, cfg.Log.Format)
	assert.Equal(t, 0, cfg.Concurrency)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, uint64(1024), cfg.Cache.Capacity)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	// GIVEN
	t.Setenv("CODEGEN_LOG_LEVEL", "debug")
	t.Setenv("CODEGEN_LOG_FORMAT", "json")
	t.Setenv("CODEGEN_CONCURRENCY", "4")
	t.Setenv("CODEGEN_CACHE_TTL", "30s")
	t.Setenv("CODEGEN_CACHE_CAPACITY", "16")

	// WHEN
	cfg, err := Load()

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogJSONFormat, cfg.Log.Format)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, uint64(16), cfg.Cache.Capacity)
}

func TestLoadIgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("LOG_LEVEL", "trace")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	for uc, tc := range map[string]struct {
		key   string
		value string
	}{
		"unknown level":        {key: "CODEGEN_LOG_LEVEL", value: "loud"},
		"unknown format":       {key: "CODEGEN_LOG_FORMAT", value: "xml"},
		"negative concurrency": {key: "CODEGEN_CONCURRENCY", value: "-1"},
		"malformed ttl":        {key: "CODEGEN_CACHE_TTL", value: "soon"},
	} {
		t.Run(uc, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()

			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParsedLevel(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want zerolog.Level
	}{
		{in: "", want: zerolog.InfoLevel},
		{in: "debug", want: zerolog.DebugLevel},
		{in: "WARN", want: zerolog.WarnLevel},
		{in: "disabled", want: zerolog.Disabled},
	} {
		level, err := LoggingConfig{Level: tc.in}.ParsedLevel()

		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, level, tc.in)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{Log: LoggingConfig{Level: "info", Format: LogJSONFormat}}
	require.NoError(t, valid.Validate())

	negativeTTL := valid
	negativeTTL.Cache.TTL = -time.Second
	require.ErrorIs(t, negativeTTL.Validate(), ErrInvalidConfig)

	emptyFormat := valid
	emptyFormat.Log.Format = ""
	require.ErrorIs(t, emptyFormat.Validate(), ErrInvalidConfig)
}
