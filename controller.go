package multicore

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Controller maps notification names to CommandFactories. When a mapped
// notification is dispatched through the View, the Controller builds a
// fresh Command and executes it.
type Controller struct {
	registry *Registry
	key      string
	view     *View

	mu       sync.RWMutex
	commands map[string]CommandFactory
}

// NewController creates the Controller for key and stores it in r. The
// core's View is obtained (or created) through r. It fails with a
// DuplicateCoreError if r already has a Controller for key; use
// Registry.GetController to get-or-create.
func NewController(r *Registry, key string) (*Controller, error) {
	if _, ok := lookup(r, r.controllers, key); ok {
		return nil, &DuplicateCoreError{Kind: KindController, Key: key}
	}

	view, err := r.GetView(key, nil)
	if err != nil {
		return nil, err
	}

	c := &Controller{
		registry: r,
		key:      key,
		view:     view,
		commands: make(map[string]CommandFactory),
	}
	if err := store(r, r.controllers, KindController, key, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Key returns the multiton key of the Controller's core.
func (c *Controller) Key() string {
	return c.key
}

// View returns the View the Controller subscribes through.
func (c *Controller) View() *View {
	return c.view
}

// RegisterCommand maps notificationName to factory. The Controller
// subscribes to the name only the first time it is mapped; mapping it again
// replaces the factory without adding a second subscription. A nil factory
// is ignored.
func (c *Controller) RegisterCommand(notificationName string, factory CommandFactory) {
	if factory == nil {
		return
	}

	c.mu.Lock()
	if _, exists := c.commands[notificationName]; !exists {
		c.view.RegisterObserver(notificationName, NewObserver(c.ExecuteCommand, c))
	}
	c.commands[notificationName] = factory
	c.mu.Unlock()

	c.registry.logger.Debug("Command registered", "core", c.key, "notification", notificationName)
	c.registry.emit(context.Background(), EventTypeCommandRegistered, c.key, map[string]any{
		"notificationName": notificationName,
	})
}

// ExecuteCommand runs a fresh instance of the Command mapped to the
// notification's name. Unmapped names are ignored.
func (c *Controller) ExecuteCommand(notification *Notification) error {
	c.mu.RLock()
	factory, ok := c.commands[notification.Name()]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	command := factory()
	if command == nil {
		return fmt.Errorf("command for %q in core %q: %w", notification.Name(), c.key, ErrNilFactory)
	}
	command.InitializeNotifier(c.registry, c.key)
	return command.Execute(notification)
}

// HasCommand reports whether notificationName is mapped to a Command.
func (c *Controller) HasCommand(notificationName string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.commands[notificationName]
	return ok
}

// RemoveCommand unmaps notificationName and drops the Controller's
// subscription to it. Unmapped names are ignored.
func (c *Controller) RemoveCommand(notificationName string) {
	c.mu.Lock()
	if _, exists := c.commands[notificationName]; !exists {
		c.mu.Unlock()
		return
	}
	c.view.RemoveObserver(notificationName, c)
	delete(c.commands, notificationName)
	c.mu.Unlock()

	c.registry.logger.Debug("Command removed", "core", c.key, "notification", notificationName)
	c.registry.emit(context.Background(), EventTypeCommandRemoved, c.key, map[string]any{
		"notificationName": notificationName,
	})
}

// CommandNames returns the sorted notification names mapped to Commands.
func (c *Controller) CommandNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
