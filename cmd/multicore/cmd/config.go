package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/CrisisTextLine/multicore"
	"github.com/CrisisTextLine/multicore/feeders"
)

// Define static errors
var (
	ErrUnsupportedConfigFormat = errors.New("unsupported config file format")
	ErrNoConfig                = errors.New("no config file given")
)

// CoreEnvPrefix returns the environment prefix for per-core overrides:
// MULTICORE_SHELL_PROXIES overrides the proxies of core "shell".
func CoreEnvPrefix(key string) string {
	return "MULTICORE_" + key + "_"
}

// fileFeeder picks a feeder by file extension.
func fileFeeder(path string) (multicore.Feeder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return feeders.NewYamlFeeder(path), nil
	case ".toml":
		return feeders.NewTomlFeeder(path), nil
	case ".json":
		return feeders.NewJSONFeeder(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFormat, path)
	}
}

// loadConfig reads the file at path, applies MULTICORE_LOG_* environment
// overrides, then per-core overrides.
func loadConfig(path string, verbose bool, logger multicore.Logger) (*multicore.RegistryConfig, error) {
	if path == "" {
		return nil, ErrNoConfig
	}
	file, err := fileFeeder(path)
	if err != nil {
		return nil, err
	}

	cfg := &multicore.RegistryConfig{}
	if err := multicore.NewConfig().
		SetVerboseDebug(verbose, logger).
		AddFeeder(file).
		AddFeeder(feeders.NewEnvFeeder().WithPriority(100)).
		AddStructKey("", cfg).
		Feed(); err != nil {
		return nil, err
	}

	perCore := multicore.NewConfig().
		SetVerboseDebug(verbose, logger).
		AddFeeder(feeders.NewCoreAffixedEnvFeeder(CoreEnvPrefix, nil))
	for i := range cfg.Cores {
		perCore.AddStructKey(cfg.Cores[i].Key, &cfg.Cores[i])
	}
	if err := perCore.Feed(); err != nil {
		return nil, err
	}
	return cfg, nil
}
