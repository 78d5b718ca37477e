// Package cmd implements the multicore command line: it assembles cores of
// the demo counter application from a config file and drives them with
// notifications.
package cmd

import (
	"io"

	"github.com/CrisisTextLine/multicore"
	"github.com/CrisisTextLine/multicore/internal/demo"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the multicore root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "multicore",
		Short: "Assemble and drive multicore MVC cores",
		Long: `multicore builds isolated MVC cores from a YAML, TOML or JSON file and
sends notifications through them.

Environment overrides:
  MULTICORE_LOG_FORMAT, MULTICORE_LOG_LEVEL   logging
  MULTICORE_<KEY>_PROXIES, MULTICORE_<KEY>_MEDIATORS   per-core participants`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewInspectCommand())
	return rootCmd
}

// bootstrap loads the config at path and assembles its cores in a fresh
// registry. Demo reports and lifecycle events are written to out.
func bootstrap(path string, verbose, events bool, out, errOut io.Writer) (*multicore.Registry, []*multicore.Facade, error) {
	level := "info"
	if verbose {
		level = "debug"
	}
	cfg, err := loadConfig(path, verbose, multicore.NewLogger("text", level, errOut))
	if err != nil {
		return nil, nil, err
	}

	opts := []multicore.RegistryOption{
		multicore.WithLogger(multicore.NewLogger(cfg.Logging.Format, cfg.Logging.Level, errOut)),
	}
	if events {
		opts = append(opts, multicore.WithLifecycleObserver(newEventPrinter(out)))
	}
	r := multicore.NewRegistry(opts...)

	facades, err := demo.Catalog(out).Bootstrap(r, cfg)
	if err != nil {
		return nil, nil, err
	}
	return r, facades, nil
}
