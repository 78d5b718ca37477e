package multicore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CrisisTextLine/multicore/feeders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCoresYAML = `
logging:
  format: json
  level: warn
cores:
  - key: shell
    proxies: [counter]
    mediators: [report]
    commands:
      - notification: increment
        command: increment
  - key: editor
`

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_FeedYamlThenEnv(t *testing.T) {
	path := writeConfigFile(t, "cores.yaml", testCoresYAML)
	t.Setenv("MULTICORE_LOG_LEVEL", "debug")

	var cfg RegistryConfig
	err := NewConfig().
		AddFeeder(feeders.NewEnvFeeder().WithPriority(100)).
		AddFeeder(feeders.NewYamlFeeder(path)).
		AddStructKey("", &cfg).
		Feed()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level, "the higher priority env feeder runs last and wins")
	require.Len(t, cfg.Cores, 2)
	assert.Equal(t, []string{"counter"}, cfg.Cores[0].Proxies)
	assert.Equal(t, []CommandBinding{{Notification: "increment", Command: "increment"}}, cfg.Cores[0].Commands)
	require.NotNil(t, cfg.Core("editor"))
	assert.Nil(t, cfg.Core("missing"))
}

func TestConfig_EqualPrioritiesKeepInsertionOrder(t *testing.T) {
	first := writeConfigFile(t, "first.yaml", "logging:\n  level: info\n")
	second := writeConfigFile(t, "second.yaml", "logging:\n  level: error\n")

	var cfg RegistryConfig
	require.NoError(t, NewConfig().
		AddFeeder(feeders.NewYamlFeeder(first)).
		AddFeeder(feeders.NewYamlFeeder(second)).
		AddStructKey("", &cfg).
		Feed())
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestConfig_KeyedTargetsUseFeedKey(t *testing.T) {
	path := writeConfigFile(t, "cores.yaml", testCoresYAML)
	t.Setenv("SHELL_MEDIATORS", "report,history")

	var logging LoggingConfig
	shell := CoreConfig{Key: "shell"}
	require.NoError(t, NewConfig().
		AddFeeder(feeders.NewYamlFeeder(path)).
		AddFeeder(feeders.NewCoreAffixedEnvFeeder(func(key string) string { return key + "_" }, nil)).
		AddStructKey("logging", &logging).
		AddStructKey("shell", &shell).
		Feed())

	assert.Equal(t, "json", logging.Format)
	assert.Equal(t, []string{"report", "history"}, shell.Mediators)
}

type plainFeeder struct {
	calls int
}

func (f *plainFeeder) Feed(any) error {
	f.calls++
	return nil
}

func TestConfig_PlainFeedersSkipKeyedTargets(t *testing.T) {
	f := &plainFeeder{}
	var a, b LoggingConfig
	require.NoError(t, NewConfig().AddFeeder(f).AddStructKey("", &a).AddStructKey("section", &b).Feed())
	assert.Equal(t, 1, f.calls)
}

type failingFeeder struct{}

func (failingFeeder) Feed(any) error { return errors.New("source unavailable") }

func TestConfig_FeederErrorIsWrapped(t *testing.T) {
	var cfg RegistryConfig
	err := NewConfig().AddFeeder(failingFeeder{}).AddStructKey("", &cfg).Feed()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigFeederError)
	assert.Contains(t, err.Error(), "source unavailable")
}

func TestConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  RegistryConfig
		ok   bool
	}{
		{"empty", RegistryConfig{}, true},
		{"valid", RegistryConfig{Cores: []CoreConfig{{Key: "a"}, {Key: "b"}}}, true},
		{"missing key", RegistryConfig{Cores: []CoreConfig{{}}}, false},
		{"duplicate key", RegistryConfig{Cores: []CoreConfig{{Key: "a"}, {Key: "a"}}}, false},
		{"incomplete binding", RegistryConfig{Cores: []CoreConfig{{Key: "a", Commands: []CommandBinding{{Notification: "n"}}}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidCoreConfig)
		})
	}
}

func TestConfig_FeedRunsValidation(t *testing.T) {
	path := writeConfigFile(t, "dup.yaml", "cores:\n  - key: a\n  - key: a\n")

	var cfg RegistryConfig
	err := NewConfig().AddFeeder(feeders.NewYamlFeeder(path)).AddStructKey("", &cfg).Feed()
	assert.ErrorIs(t, err, ErrInvalidCoreConfig)
}

func TestConfig_VerboseDebug(t *testing.T) {
	path := writeConfigFile(t, "cores.yaml", testCoresYAML)
	mockLogger := &MockLogger{}
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return()

	var cfg RegistryConfig
	yamlFeeder := feeders.NewYamlFeeder(path)
	require.NoError(t, NewConfig().
		SetVerboseDebug(true, mockLogger).
		AddFeeder(yamlFeeder).
		AddStructKey("", &cfg).
		Feed())

	mockLogger.AssertCalled(t, "Debug", "Config feed process completed successfully", mock.Anything)
	mockLogger.AssertCalled(t, "Debug", "YamlFeeder: Feed completed successfully", mock.Anything)
}
