package feeders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envLevel string

type envTestConfig struct {
	Format  string   `env:"LOG_FORMAT"`
	Level   envLevel `env:"LOG_LEVEL"`
	Workers int      `env:"WORKERS"`
	Debug   bool     `env:"DEBUG"`
	Ratio   *float64 `env:"RATIO"`
	Proxies []string `env:"PROXIES"`
	Nested  struct {
		Name string `env:"NESTED_NAME"`
	}
	Untagged string
}

func TestEnvFeeder_Feed(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORKERS", "4")
	t.Setenv("DEBUG", "true")
	t.Setenv("RATIO", "0.5")
	t.Setenv("PROXIES", "counter,history")
	t.Setenv("NESTED_NAME", "inner")

	var cfg envTestConfig
	require.NoError(t, NewEnvFeeder().Feed(&cfg))

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, envLevel("debug"), cfg.Level)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Debug)
	require.NotNil(t, cfg.Ratio)
	assert.InDelta(t, 0.5, *cfg.Ratio, 1e-9)
	assert.Equal(t, []string{"counter", "history"}, cfg.Proxies)
	assert.Equal(t, "inner", cfg.Nested.Name)
	assert.Empty(t, cfg.Untagged)
}

func TestEnvFeeder_UnsetVariablesKeepValues(t *testing.T) {
	cfg := envTestConfig{Format: "text", Workers: 2}
	require.NoError(t, NewEnvFeeder().Feed(&cfg))

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
}

func TestEnvFeeder_ConversionError(t *testing.T) {
	t.Setenv("WORKERS", "many")

	var cfg envTestConfig
	err := NewEnvFeeder().Feed(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnvConversion)
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestEnvFeeder_RejectsNonStruct(t *testing.T) {
	var notStruct string
	assert.ErrorIs(t, NewEnvFeeder().Feed(&notStruct), ErrNotAPointerToStruct)
	assert.ErrorIs(t, NewEnvFeeder().Feed(envTestConfig{}), ErrNotAPointerToStruct)
}

func TestAffixedEnvFeeder_Feed(t *testing.T) {
	t.Setenv("PROD_LOG_FORMAT_ENV", "json")
	t.Setenv("LOG_FORMAT", "text")

	var cfg envTestConfig
	require.NoError(t, NewAffixedEnvFeeder("prod_", "_env").Feed(&cfg))

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "PROD_LOG_FORMAT_ENV", EnvVarName("prod_", "LOG_FORMAT", "_env"))
}

func TestCoreAffixedEnvFeeder(t *testing.T) {
	t.Setenv("SHELL_PROXIES", "counter")
	t.Setenv("EDITOR_PROXIES", "buffer,history")

	feeder := NewCoreAffixedEnvFeeder(
		func(key string) string { return key + "_" },
		nil,
	).WithPriority(5)
	assert.Equal(t, 5, feeder.Priority())

	t.Run("Feed without key is a no-op", func(t *testing.T) {
		var cfg envTestConfig
		require.NoError(t, feeder.Feed(&cfg))
		assert.Empty(t, cfg.Proxies)
	})

	t.Run("FeedKey uses per-core affixes", func(t *testing.T) {
		var shell, editor envTestConfig
		require.NoError(t, feeder.FeedKey("shell", &shell))
		require.NoError(t, feeder.FeedKey("editor", &editor))

		assert.Equal(t, []string{"counter"}, shell.Proxies)
		assert.Equal(t, []string{"buffer", "history"}, editor.Proxies)
	})

	t.Run("verbose debug", func(t *testing.T) {
		logger := &mockLogger{}
		feeder.SetVerboseDebug(true, logger)
		defer feeder.SetVerboseDebug(false, nil)

		var cfg envTestConfig
		require.NoError(t, feeder.FeedKey("shell", &cfg))
		assert.NotEmpty(t, logger.messages)
	})
}
