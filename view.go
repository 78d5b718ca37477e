package multicore

import (
	"context"
	"slices"
	"sync"
)

// View routes notifications to Observers and keeps the core's Mediators.
//
// Observers for a name are notified in registration order. The list is
// copied before dispatch, so handlers may register or remove observers and
// mediators (including themselves) without affecting the dispatch in progress.
type View struct {
	registry *Registry
	key      string

	mu        sync.RWMutex
	mediators map[string]Mediator
	observers map[string][]*Observer
}

// NewView creates the View for key and stores it in r. It fails with a
// DuplicateCoreError if r already has a View for key; use Registry.GetView
// to get-or-create.
func NewView(r *Registry, key string) (*View, error) {
	v := &View{
		registry:  r,
		key:       key,
		mediators: make(map[string]Mediator),
		observers: make(map[string][]*Observer),
	}
	if err := store(r, r.views, KindView, key, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Key returns the multiton key of the View's core.
func (v *View) Key() string {
	return v.key
}

// RegisterObserver appends observer to the list for notificationName.
func (v *View) RegisterObserver(notificationName string, observer *Observer) {
	if observer == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.observers[notificationName] = append(v.observers[notificationName], observer)
}

// NotifyObservers delivers notification to every Observer registered for its
// name at the moment of the call. The first error stops delivery and is
// returned.
func (v *View) NotifyObservers(notification *Notification) error {
	v.mu.RLock()
	snapshot := slices.Clone(v.observers[notification.Name()])
	v.mu.RUnlock()

	for _, observer := range snapshot {
		if err := observer.NotifyObserver(notification); err != nil {
			return err
		}
	}
	return nil
}

// RemoveObserver removes the first Observer for notificationName whose
// context matches notifyContext. The list entry is dropped once empty.
func (v *View) RemoveObserver(notificationName string, notifyContext any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.removeObserverLocked(notificationName, notifyContext)
}

func (v *View) removeObserverLocked(notificationName string, notifyContext any) {
	observers, ok := v.observers[notificationName]
	if !ok {
		return
	}
	for i, observer := range observers {
		if observer.CompareNotifyContext(notifyContext) {
			observers = slices.Delete(observers, i, i+1)
			break
		}
	}
	if len(observers) == 0 {
		delete(v.observers, notificationName)
		return
	}
	v.observers[notificationName] = observers
}

// ObserverCount returns how many Observers are registered for
// notificationName.
func (v *View) ObserverCount(notificationName string) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.observers[notificationName])
}

// NotificationNames returns the sorted names that have at least one Observer.
func (v *View) NotificationNames() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	names := make([]string, 0, len(v.observers))
	for name := range v.observers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RegisterMediator adds mediator to the View. Registering a name that is
// already taken does nothing. Otherwise the mediator is bound to this core,
// subscribed to each of its interests with a single shared Observer, and
// then its OnRegister hook runs.
func (v *View) RegisterMediator(mediator Mediator) {
	if mediator == nil {
		return
	}
	name := mediator.MediatorName()
	if v.HasMediator(name) {
		return
	}

	interests := mediator.ListNotificationInterests()
	observer := NewObserver(mediator.HandleNotification, mediator)

	v.mu.Lock()
	if _, exists := v.mediators[name]; exists {
		v.mu.Unlock()
		return
	}
	v.mediators[name] = mediator
	mediator.InitializeNotifier(v.registry, v.key)
	for _, interest := range interests {
		v.observers[interest] = append(v.observers[interest], observer)
	}
	v.mu.Unlock()

	mediator.OnRegister()

	v.registry.logger.Debug("Mediator registered", "core", v.key, "mediator", name, "interests", interests)
	v.registry.emit(context.Background(), EventTypeMediatorRegistered, v.key, map[string]any{
		"mediatorName": name,
		"interests":    interests,
	})
}

// RetrieveMediator returns the mediator registered under name, or nil.
func (v *View) RetrieveMediator(name string) Mediator {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.mediators[name]
}

// HasMediator reports whether a mediator is registered under name.
func (v *View) HasMediator(name string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.mediators[name]
	return ok
}

// MediatorNames returns the sorted names of the registered mediators.
func (v *View) MediatorNames() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	names := make([]string, 0, len(v.mediators))
	for name := range v.mediators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// RemoveMediator unsubscribes the mediator registered under name from all
// its interests, removes it and runs its OnRemove hook. It returns the
// removed mediator, or nil when none was registered.
func (v *View) RemoveMediator(name string) Mediator {
	mediator := v.RetrieveMediator(name)
	if mediator == nil {
		return nil
	}
	interests := mediator.ListNotificationInterests()

	v.mu.Lock()
	if current, ok := v.mediators[name]; !ok || !sameContext(current, mediator) {
		v.mu.Unlock()
		return nil
	}
	for _, interest := range interests {
		v.removeObserverLocked(interest, mediator)
	}
	delete(v.mediators, name)
	v.mu.Unlock()

	mediator.OnRemove()

	v.registry.logger.Debug("Mediator removed", "core", v.key, "mediator", name)
	v.registry.emit(context.Background(), EventTypeMediatorRemoved, v.key, map[string]any{
		"mediatorName": name,
	})
	return mediator
}
