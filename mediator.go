package multicore

// DefaultMediatorName is used when a mediator is created without a name.
const DefaultMediatorName = "Mediator"

// Mediator connects a view component to the rest of a core. It declares the
// notification names it is interested in and handles them as they arrive.
type Mediator interface {
	Notifier
	MediatorName() string
	ListNotificationInterests() []string
	HandleNotification(notification *Notification) error
	OnRegister()
	OnRemove()
	ViewComponent() any
	SetViewComponent(viewComponent any)
}

// MediatorFactory builds a Mediator.
type MediatorFactory func() Mediator

// BaseMediator implements Mediator with no interests and no-op hooks.
// Embed it in concrete mediators.
type BaseMediator struct {
	BaseNotifier
	name          string
	viewComponent any
}

// NewMediator creates a mediator named name (DefaultMediatorName when
// empty) for viewComponent.
func NewMediator(name string, viewComponent any) *BaseMediator {
	if name == "" {
		name = DefaultMediatorName
	}
	return &BaseMediator{name: name, viewComponent: viewComponent}
}

// MediatorName implements Mediator.
func (m *BaseMediator) MediatorName() string {
	return m.name
}

// ListNotificationInterests implements Mediator. It is read once, when the
// mediator is registered, and again when it is removed.
func (m *BaseMediator) ListNotificationInterests() []string {
	return nil
}

// HandleNotification implements Mediator.
func (m *BaseMediator) HandleNotification(*Notification) error {
	return nil
}

// OnRegister is called by the View after the mediator is registered.
func (m *BaseMediator) OnRegister() {}

// OnRemove is called by the View after the mediator is removed.
func (m *BaseMediator) OnRemove() {}

// ViewComponent implements Mediator.
func (m *BaseMediator) ViewComponent() any {
	return m.viewComponent
}

// SetViewComponent implements Mediator.
func (m *BaseMediator) SetViewComponent(viewComponent any) {
	m.viewComponent = viewComponent
}
