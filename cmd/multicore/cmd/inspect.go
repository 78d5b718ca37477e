package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	var (
		configFile string
		verbose    bool
	)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the cores a config file produces",
		Long: `Bootstrap every core listed in the config file and print each core's
proxies, mediators, commands and observer counts as YAML.

Examples:
  multicore inspect --config cores.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, configFile, verbose)
		},
	}

	inspectCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (.yaml, .toml or .json)")
	inspectCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose config loading")
	_ = inspectCmd.MarkFlagRequired("config")

	return inspectCmd
}

func runInspect(cmd *cobra.Command, configFile string, verbose bool) error {
	r, _, err := bootstrap(configFile, verbose, false, io.Discard, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out, err := yaml.Marshal(map[string]any{"cores": r.Describe()})
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
