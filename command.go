package multicore

import "fmt"

// Command is business logic run in response to a notification. The
// Controller builds a fresh Command for every notification it handles.
type Command interface {
	Notifier
	Execute(notification *Notification) error
}

// CommandFactory builds a fresh Command instance.
type CommandFactory func() Command

// SimpleCommand is the base for single-step commands. Embed it and define
// Execute:
//
//	type StartupCommand struct{ multicore.SimpleCommand }
//
//	func (c *StartupCommand) Execute(n *multicore.Notification) error {
//		facade, err := c.Facade()
//		...
//	}
type SimpleCommand struct {
	BaseNotifier
}

// Execute does nothing.
func (c *SimpleCommand) Execute(*Notification) error {
	return nil
}

// MacroCommand runs a queue of sub-commands in the order they were added.
// Each sub-command is built fresh, bound to the macro's core and executed
// with the same notification. The queue is consumed by Execute, so a second
// Execute does nothing.
type MacroCommand struct {
	BaseNotifier
	subCommands []CommandFactory
}

// NewMacroCommand creates a macro command and runs init once to populate
// its sub-commands. init may be nil.
func NewMacroCommand(init func(m *MacroCommand)) *MacroCommand {
	m := &MacroCommand{}
	if init != nil {
		init(m)
	}
	return m
}

// AddSubCommand appends factory to the queue. Nil factories are ignored.
func (m *MacroCommand) AddSubCommand(factory CommandFactory) {
	if factory == nil {
		return
	}
	m.subCommands = append(m.subCommands, factory)
}

// Len returns the number of sub-commands still queued.
func (m *MacroCommand) Len() int {
	return len(m.subCommands)
}

// Execute drains the queue front to back. The first sub-command error stops
// execution and is returned; sub-commands after it stay queued.
func (m *MacroCommand) Execute(notification *Notification) error {
	for len(m.subCommands) > 0 {
		factory := m.subCommands[0]
		m.subCommands = m.subCommands[1:]

		command := factory()
		if command == nil {
			return fmt.Errorf("macro sub-command: %w", ErrNilFactory)
		}
		if m.initialized {
			command.InitializeNotifier(m.registry, m.key)
		}
		if err := command.Execute(notification); err != nil {
			return err
		}
	}
	return nil
}
