package multicore

// Notifier is implemented by every participant that can reach its core's
// Facade: Proxies, Mediators and Commands.
//
// The multiton key is assigned by the framework, not by the participant:
// the Model assigns it when a Proxy is registered, the View when a Mediator
// is registered and the Controller right before a Command executes. Until
// then the participant cannot reach a Facade.
type Notifier interface {
	// InitializeNotifier binds the participant to the core identified by key
	// in registry.
	InitializeNotifier(registry *Registry, key string)

	// MultitonKey returns the bound key, or "" before initialization.
	MultitonKey() string

	// Facade looks up the Facade of the bound core. It never creates one.
	Facade() (*Facade, error)

	// SendNotification sends a notification through the bound core's
	// Facade. It does nothing when the Facade is unavailable.
	SendNotification(name string, body any, noteType string) error
}

// BaseNotifier implements Notifier. Embed it in Proxy, Mediator and Command
// implementations.
type BaseNotifier struct {
	registry    *Registry
	key         string
	initialized bool
}

// InitializeNotifier implements Notifier. A nil registry selects Default().
func (n *BaseNotifier) InitializeNotifier(registry *Registry, key string) {
	if registry == nil {
		registry = Default()
	}
	n.registry = registry
	n.key = key
	n.initialized = true
}

// MultitonKey implements Notifier.
func (n *BaseNotifier) MultitonKey() string {
	return n.key
}

// Registry returns the registry the notifier was bound to, or nil.
func (n *BaseNotifier) Registry() *Registry {
	return n.registry
}

// Facade implements Notifier. It fails with UninitializedNotifierError when
// InitializeNotifier was never called and with CoreNotFoundError when the
// core has been removed.
func (n *BaseNotifier) Facade() (*Facade, error) {
	if !n.initialized {
		return nil, &UninitializedNotifierError{}
	}
	facade, ok := n.registry.lookupFacade(n.key)
	if !ok {
		return nil, &CoreNotFoundError{Key: n.key}
	}
	return facade, nil
}

// SendNotification implements Notifier. Errors returned by handlers during
// dispatch are passed back to the caller.
func (n *BaseNotifier) SendNotification(name string, body any, noteType string) error {
	facade, err := n.Facade()
	if err != nil {
		return nil
	}
	return facade.SendNotification(name, body, noteType)
}
