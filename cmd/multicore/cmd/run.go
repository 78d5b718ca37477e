package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/CrisisTextLine/multicore"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/spf13/cobra"
)

var ErrUnknownCore = errors.New("unknown core")

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	// Local flag variables to avoid global state issues in tests
	var (
		configFile string
		sends      []string
		body       string
		core       string
		events     bool
		verbose    bool
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Bootstrap cores and send notifications through them",
		Long: `Bootstrap every core listed in the config file, then send each --send
notification, in order, to every core (or only --core).

Examples:
  multicore run --config cores.yaml --send increment
  multicore run --config cores.yaml --send increment --body 5 --core shell
  multicore run --config cores.toml --send increment --send reset --events`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, configFile, sends, body, core, events, verbose)
		},
	}

	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (.yaml, .toml or .json)")
	runCmd.Flags().StringArrayVarP(&sends, "send", "s", nil, "Notification name to send (repeatable)")
	runCmd.Flags().StringVarP(&body, "body", "b", "", "Notification body")
	runCmd.Flags().StringVar(&core, "core", "", "Only send to this core")
	runCmd.Flags().BoolVar(&events, "events", false, "Print lifecycle events")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose config loading")
	_ = runCmd.MarkFlagRequired("config")

	return runCmd
}

func runRun(cmd *cobra.Command, configFile string, sends []string, body, core string, events, verbose bool) error {
	out := cmd.OutOrStdout()
	r, facades, err := bootstrap(configFile, verbose, events, out, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	targets := facades
	if core != "" {
		if !r.HasCore(core) {
			return fmt.Errorf("%w: %s", ErrUnknownCore, core)
		}
		facade, err := r.GetFacade(core, nil)
		if err != nil {
			return err
		}
		targets = []*multicore.Facade{facade}
	}

	var noteBody any
	if body != "" {
		noteBody = body
	}
	for _, name := range sends {
		for _, facade := range targets {
			if err := facade.SendNotification(name, noteBody, ""); err != nil {
				return fmt.Errorf("sending %q to core %q: %w", name, facade.Key(), err)
			}
		}
	}
	return nil
}

// eventPrinter writes one line per lifecycle event.
type eventPrinter struct {
	w io.Writer
}

func newEventPrinter(w io.Writer) *eventPrinter {
	return &eventPrinter{w: w}
}

func (p *eventPrinter) OnLifecycleEvent(_ context.Context, event cloudevents.Event) error {
	_, err := fmt.Fprintf(p.w, "event: %s %s\n", event.Type(), event.Source())
	return err
}

func (p *eventPrinter) ObserverID() string {
	return "cli-event-printer"
}
