// Package demo is a small counter application assembled from multicore
// participants. The CLI bootstraps it from configuration.
package demo

import (
	"errors"
	"fmt"
	"io"

	"github.com/CrisisTextLine/multicore"
	"github.com/golobby/cast"
)

// Notification names
const (
	Increment      = "increment"
	Reset          = "reset"
	CounterChanged = "counter_changed"
	CounterReset   = "counter_reset"
)

// Participant names
const (
	CounterProxyName   = "counter"
	ReportMediatorName = "report"
)

var ErrNoCounter = errors.New("counter proxy not registered")

// CounterProxy holds an integer and announces every change.
type CounterProxy struct {
	*multicore.BaseProxy
}

// NewCounterProxy creates a counter starting at zero.
func NewCounterProxy() *CounterProxy {
	return &CounterProxy{BaseProxy: multicore.NewProxy(CounterProxyName, 0)}
}

// Value returns the current count.
func (p *CounterProxy) Value() int {
	v, _ := p.Data().(int)
	return v
}

// Add adds delta and sends CounterChanged with the new value.
func (p *CounterProxy) Add(delta int) error {
	p.SetData(p.Value() + delta)
	return p.SendNotification(CounterChanged, p.Value(), "")
}

// Clear sets the count back to zero without notifying.
func (p *CounterProxy) Clear() {
	p.SetData(0)
}

func counterFrom(n multicore.Notifier) (*CounterProxy, error) {
	facade, err := n.Facade()
	if err != nil {
		return nil, err
	}
	counter, ok := facade.RetrieveProxy(CounterProxyName).(*CounterProxy)
	if !ok {
		return nil, fmt.Errorf("%w in core %q", ErrNoCounter, n.MultitonKey())
	}
	return counter, nil
}

// IncrementCommand adds the notification body to the counter. The body may
// be an int or a numeric string; a nil body counts as one.
type IncrementCommand struct {
	multicore.SimpleCommand
}

// Execute implements multicore.Command.
func (c *IncrementCommand) Execute(n *multicore.Notification) error {
	delta, err := toDelta(n.Body())
	if err != nil {
		return err
	}
	counter, err := counterFrom(c)
	if err != nil {
		return err
	}
	return counter.Add(delta)
}

func toDelta(body any) (int, error) {
	switch v := body.(type) {
	case nil:
		return 1, nil
	case int:
		return v, nil
	case string:
		if v == "" {
			return 1, nil
		}
		parsed, err := cast.FromString(v, "int")
		if err != nil {
			return 0, fmt.Errorf("increment body %q: %w", v, err)
		}
		return parsed.(int), nil
	default:
		return 0, fmt.Errorf("increment body of type %T is not a number", body)
	}
}

// NewResetCommand builds the macro run for Reset: clear the counter, then
// announce CounterReset.
func NewResetCommand() multicore.Command {
	return multicore.NewMacroCommand(func(m *multicore.MacroCommand) {
		m.AddSubCommand(func() multicore.Command { return &clearCounterCommand{} })
		m.AddSubCommand(func() multicore.Command { return &announceResetCommand{} })
	})
}

type clearCounterCommand struct {
	multicore.SimpleCommand
}

func (c *clearCounterCommand) Execute(*multicore.Notification) error {
	counter, err := counterFrom(c)
	if err != nil {
		return err
	}
	counter.Clear()
	return nil
}

type announceResetCommand struct {
	multicore.SimpleCommand
}

func (c *announceResetCommand) Execute(*multicore.Notification) error {
	return c.SendNotification(CounterReset, 0, "")
}

// ReportMediator writes counter changes to its view component, an
// io.Writer.
type ReportMediator struct {
	*multicore.BaseMediator
}

// NewReportMediator creates a mediator reporting to w.
func NewReportMediator(w io.Writer) *ReportMediator {
	return &ReportMediator{BaseMediator: multicore.NewMediator(ReportMediatorName, w)}
}

// ListNotificationInterests implements multicore.Mediator.
func (m *ReportMediator) ListNotificationInterests() []string {
	return []string{CounterChanged, CounterReset}
}

// HandleNotification implements multicore.Mediator.
func (m *ReportMediator) HandleNotification(n *multicore.Notification) error {
	w, ok := m.ViewComponent().(io.Writer)
	if !ok {
		return nil
	}
	switch n.Name() {
	case CounterChanged:
		_, err := fmt.Fprintf(w, "[%s] counter = %v\n", m.MultitonKey(), n.Body())
		return err
	case CounterReset:
		_, err := fmt.Fprintf(w, "[%s] counter reset\n", m.MultitonKey())
		return err
	}
	return nil
}

// Catalog returns the demo participants by name, with reports written to w.
func Catalog(w io.Writer) *multicore.Catalog {
	return multicore.NewCatalog().
		AddProxy(CounterProxyName, func() multicore.Proxy { return NewCounterProxy() }).
		AddMediator(ReportMediatorName, func() multicore.Mediator { return NewReportMediator(w) }).
		AddCommand(Increment, func() multicore.Command { return &IncrementCommand{} }).
		AddCommand(Reset, NewResetCommand)
}
