package multicore

// Facade is the single entry point to a core. It owns no state of its own
// beyond references to the core's Model, View and Controller, and forwards
// every operation to the appropriate one.
//
// To plug in custom components, obtain them through Registry.GetModel,
// GetView or GetController with a factory before the Facade is created; the
// Facade picks up whatever the registry already holds for its key.
type Facade struct {
	registry   *Registry
	key        string
	model      *Model
	controller *Controller
	view       *View
}

// NewFacade creates the Facade for key and stores it in r. The Model,
// Controller and View are obtained (or created) through r, in that order.
// It fails with a DuplicateCoreError if r already has a Facade for key; use
// Registry.GetFacade to get-or-create.
func NewFacade(r *Registry, key string) (*Facade, error) {
	if _, ok := r.lookupFacade(key); ok {
		return nil, &DuplicateCoreError{Kind: KindFacade, Key: key}
	}

	f := &Facade{
		registry: r,
		key:      key,
	}
	if err := f.initializeFacade(); err != nil {
		return nil, err
	}
	if err := store(r, r.facades, KindFacade, key, f); err != nil {
		return nil, err
	}
	r.coreCreated(key)
	return f, nil
}

func (f *Facade) initializeFacade() error {
	var err error
	if f.model, err = f.registry.GetModel(f.key, nil); err != nil {
		return err
	}
	if f.controller, err = f.registry.GetController(f.key, nil); err != nil {
		return err
	}
	if f.view, err = f.registry.GetView(f.key, nil); err != nil {
		return err
	}
	return nil
}

// Key returns the multiton key of the core.
func (f *Facade) Key() string {
	return f.key
}

// Registry returns the registry the core belongs to.
func (f *Facade) Registry() *Registry {
	return f.registry
}

// Model returns the core's Model.
func (f *Facade) Model() *Model {
	return f.model
}

// View returns the core's View.
func (f *Facade) View() *View {
	return f.view
}

// Controller returns the core's Controller.
func (f *Facade) Controller() *Controller {
	return f.controller
}

// RegisterCommand maps notificationName to factory in the Controller.
func (f *Facade) RegisterCommand(notificationName string, factory CommandFactory) {
	f.controller.RegisterCommand(notificationName, factory)
}

// RemoveCommand unmaps notificationName in the Controller.
func (f *Facade) RemoveCommand(notificationName string) {
	f.controller.RemoveCommand(notificationName)
}

// HasCommand reports whether notificationName is mapped to a Command.
func (f *Facade) HasCommand(notificationName string) bool {
	return f.controller.HasCommand(notificationName)
}

// RegisterProxy registers proxy with the Model.
func (f *Facade) RegisterProxy(proxy Proxy) {
	f.model.RegisterProxy(proxy)
}

// RetrieveProxy returns the proxy registered under name, or nil.
func (f *Facade) RetrieveProxy(name string) Proxy {
	return f.model.RetrieveProxy(name)
}

// RemoveProxy removes the proxy registered under name and returns it, or nil.
func (f *Facade) RemoveProxy(name string) Proxy {
	return f.model.RemoveProxy(name)
}

// HasProxy reports whether a proxy is registered under name.
func (f *Facade) HasProxy(name string) bool {
	return f.model.HasProxy(name)
}

// RegisterMediator registers mediator with the View.
func (f *Facade) RegisterMediator(mediator Mediator) {
	f.view.RegisterMediator(mediator)
}

// RetrieveMediator returns the mediator registered under name, or nil.
func (f *Facade) RetrieveMediator(name string) Mediator {
	return f.view.RetrieveMediator(name)
}

// RemoveMediator removes the mediator registered under name and returns it,
// or nil.
func (f *Facade) RemoveMediator(name string) Mediator {
	return f.view.RemoveMediator(name)
}

// HasMediator reports whether a mediator is registered under name.
func (f *Facade) HasMediator(name string) bool {
	return f.view.HasMediator(name)
}

// SendNotification builds a notification and dispatches it through the
// View. Handler errors are returned to the caller.
func (f *Facade) SendNotification(name string, body any, noteType string) error {
	return f.NotifyObservers(NewNotification(name, body, noteType))
}

// NotifyObservers dispatches notification through the View.
func (f *Facade) NotifyObservers(notification *Notification) error {
	return f.view.NotifyObservers(notification)
}
