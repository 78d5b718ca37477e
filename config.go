package multicore

import (
	"fmt"
	"reflect"
	"slices"
)

// Feeder populates a configuration structure from some source.
type Feeder interface {
	// Feed gets a struct and feeds it using configuration data.
	Feed(structure any) error
}

// ComplexFeeder can also feed a structure from one named section of its
// source, or with a key-derived context such as a per-core env prefix.
type ComplexFeeder interface {
	Feeder
	FeedKey(key string, structure any) error
}

// PrioritizedFeeder extends Feeder with priority control. Feeders with
// higher priority values are applied later and override values set by lower
// priority feeders. Feeders with the same priority are applied in the order
// they were added. The default priority is 0.
//
//	feeders.NewYamlFeeder("cores.yaml").WithPriority(10)
//	feeders.NewEnvFeeder().WithPriority(100) // env wins
type PrioritizedFeeder interface {
	Feeder
	Priority() int
}

// VerboseAwareFeeder provides functionality for verbose debug logging during
// configuration feeding.
type VerboseAwareFeeder interface {
	SetVerboseDebug(enabled bool, logger interface{ Debug(msg string, args ...any) })
}

// ConfigValidator is implemented by configuration structs that check
// themselves after feeding.
type ConfigValidator interface {
	Validate() error
}

// Config combines feeders and target structures.
//
//	var cfg multicore.RegistryConfig
//	err := multicore.NewConfig().
//		AddFeeder(feeders.NewYamlFeeder("cores.yaml")).
//		AddFeeder(feeders.NewEnvFeeder()).
//		AddStructKey("", &cfg).
//		Feed()
type Config struct {
	// Feeders contains all the registered configuration feeders
	Feeders []Feeder
	// StructKeys maps section keys to their target structures. The empty key
	// is the whole source.
	StructKeys map[string]any
	// VerboseDebug enables detailed logging during configuration processing
	VerboseDebug bool
	// Logger is used for verbose debug logging
	Logger Logger
}

// NewConfig creates an empty configuration builder.
func NewConfig() *Config {
	return &Config{
		Feeders:    make([]Feeder, 0),
		StructKeys: make(map[string]any),
	}
}

// SetVerboseDebug enables or disables verbose debug logging on the builder
// and every verbose-aware feeder.
func (c *Config) SetVerboseDebug(enabled bool, logger Logger) *Config {
	c.VerboseDebug = enabled
	c.Logger = logger

	for _, feeder := range c.Feeders {
		if verboseFeeder, ok := feeder.(VerboseAwareFeeder); ok {
			verboseFeeder.SetVerboseDebug(enabled, logger)
		}
	}
	return c
}

// AddFeeder adds a configuration feeder.
func (c *Config) AddFeeder(feeder Feeder) *Config {
	c.Feeders = append(c.Feeders, feeder)

	if c.VerboseDebug && c.Logger != nil {
		if verboseFeeder, ok := feeder.(VerboseAwareFeeder); ok {
			verboseFeeder.SetVerboseDebug(true, c.Logger)
		}
	}
	return c
}

// AddStructKey adds a target structure for the section named key.
func (c *Config) AddStructKey(key string, target any) *Config {
	c.StructKeys[key] = target
	return c
}

// Feed applies every feeder, in priority order, to every target structure.
// An empty key is fed with Feed; any other key is fed with FeedKey by
// complex feeders and skipped by plain ones. Targets implementing
// ConfigValidator are validated afterwards.
func (c *Config) Feed() error {
	c.debug("Starting config feed process", "structKeysCount", len(c.StructKeys), "feedersCount", len(c.Feeders))

	ordered := c.orderedFeeders()

	keys := make([]string, 0, len(c.StructKeys))
	for key := range c.StructKeys {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		target := c.StructKeys[key]
		c.debug("Processing struct key", "key", key, "targetType", reflect.TypeOf(target))

		for i, f := range ordered {
			c.debug("Applying feeder to struct", "key", key, "feederIndex", i, "feederType", fmt.Sprintf("%T", f))

			if err := feedOne(f, key, target); err != nil {
				c.debug("Feeder failed", "key", key, "feederType", fmt.Sprintf("%T", f), "error", err)
				return fmt.Errorf("config feeder error: %w: %w", ErrConfigFeederError, err)
			}
		}

		if validator, ok := target.(ConfigValidator); ok {
			if err := validator.Validate(); err != nil {
				c.debug("Config validation failed", "key", key, "error", err)
				return fmt.Errorf("config validation error for %q: %w", key, err)
			}
		}
	}

	c.debug("Config feed process completed successfully")
	return nil
}

func feedOne(f Feeder, key string, target any) error {
	if key == "" {
		return f.Feed(target)
	}
	if cf, ok := f.(ComplexFeeder); ok {
		return cf.FeedKey(key, target)
	}
	return nil
}

// orderedFeeders returns the feeders sorted by ascending priority, keeping
// insertion order for equal priorities.
func (c *Config) orderedFeeders() []Feeder {
	ordered := slices.Clone(c.Feeders)
	slices.SortStableFunc(ordered, func(a, b Feeder) int {
		return feederPriority(a) - feederPriority(b)
	})
	return ordered
}

func feederPriority(f Feeder) int {
	if pf, ok := f.(PrioritizedFeeder); ok {
		return pf.Priority()
	}
	return 0
}

func (c *Config) debug(msg string, args ...any) {
	if c.VerboseDebug && c.Logger != nil {
		c.Logger.Debug(msg, args...)
	}
}

// RegistryConfig describes the cores to bootstrap and how to log.
type RegistryConfig struct {
	Logging LoggingConfig `yaml:"logging" toml:"logging" json:"logging"`
	Cores   []CoreConfig  `yaml:"cores" toml:"cores" json:"cores"`
}

// LoggingConfig selects the slog handler and level.
type LoggingConfig struct {
	Format string `yaml:"format" toml:"format" json:"format" env:"MULTICORE_LOG_FORMAT"`
	Level  string `yaml:"level" toml:"level" json:"level" env:"MULTICORE_LOG_LEVEL"`
}

// CoreConfig lists the participants to register in one core, by catalog
// name.
type CoreConfig struct {
	Key       string           `yaml:"key" toml:"key" json:"key"`
	Proxies   []string         `yaml:"proxies,omitempty" toml:"proxies,omitempty" json:"proxies,omitempty" env:"PROXIES"`
	Mediators []string         `yaml:"mediators,omitempty" toml:"mediators,omitempty" json:"mediators,omitempty" env:"MEDIATORS"`
	Commands  []CommandBinding `yaml:"commands,omitempty" toml:"commands,omitempty" json:"commands,omitempty"`
}

// CommandBinding maps a notification name to a catalog command name.
type CommandBinding struct {
	Notification string `yaml:"notification" toml:"notification" json:"notification"`
	Command      string `yaml:"command" toml:"command" json:"command"`
}

// Validate implements ConfigValidator.
func (c *RegistryConfig) Validate() error {
	seen := make(map[string]bool, len(c.Cores))
	for i, core := range c.Cores {
		if core.Key == "" {
			return fmt.Errorf("%w: core %d has no key", ErrInvalidCoreConfig, i)
		}
		if seen[core.Key] {
			return fmt.Errorf("%w: duplicate core key %q", ErrInvalidCoreConfig, core.Key)
		}
		seen[core.Key] = true
		for _, binding := range core.Commands {
			if binding.Notification == "" || binding.Command == "" {
				return fmt.Errorf("%w: core %q has an incomplete command binding", ErrInvalidCoreConfig, core.Key)
			}
		}
	}
	return nil
}

// Core returns the configuration for key, or nil.
func (c *RegistryConfig) Core(key string) *CoreConfig {
	for i := range c.Cores {
		if c.Cores[i].Key == key {
			return &c.Cores[i]
		}
	}
	return nil
}
