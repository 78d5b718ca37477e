package multicore

import (
	"context"
	"slices"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// LifecycleObserver receives CloudEvents describing changes to a registry:
// cores being created and removed, and participants being registered and
// removed. It is unrelated to notification Observers, which live inside a
// core's View.
type LifecycleObserver interface {
	// OnLifecycleEvent is called synchronously after the change has been
	// applied. A returned error is logged and otherwise ignored.
	OnLifecycleEvent(ctx context.Context, event cloudevents.Event) error

	// ObserverID returns a unique identifier for this observer.
	ObserverID() string
}

// ObserverInfo describes a registered lifecycle observer.
type ObserverInfo struct {
	// ID is the unique identifier of the observer
	ID string `json:"id" yaml:"id"`

	// EventTypes are the event types this observer is subscribed to.
	// Empty slice means all events.
	EventTypes []string `json:"eventTypes" yaml:"eventTypes"`

	// RegisteredAt indicates when the observer was registered
	RegisteredAt time.Time `json:"registeredAt" yaml:"registeredAt"`
}

// FunctionalLifecycleObserver adapts a function to LifecycleObserver.
type FunctionalLifecycleObserver struct {
	id      string
	handler func(ctx context.Context, event cloudevents.Event) error
}

// NewFunctionalLifecycleObserver creates an observer that calls handler for
// every event it is subscribed to.
func NewFunctionalLifecycleObserver(id string, handler func(ctx context.Context, event cloudevents.Event) error) LifecycleObserver {
	return &FunctionalLifecycleObserver{
		id:      id,
		handler: handler,
	}
}

// OnLifecycleEvent implements LifecycleObserver.
func (f *FunctionalLifecycleObserver) OnLifecycleEvent(ctx context.Context, event cloudevents.Event) error {
	if f.handler == nil {
		return nil
	}
	return f.handler(ctx, event)
}

// ObserverID implements LifecycleObserver.
func (f *FunctionalLifecycleObserver) ObserverID() string {
	return f.id
}

// lifecycleRegistration holds information about a registered observer
type lifecycleRegistration struct {
	observer     LifecycleObserver
	eventTypes   map[string]bool // empty means every event type
	registeredAt time.Time
	seq          uint64
}

// RegisterLifecycleObserver subscribes observer to the given event types, or
// to every event when none are given. Registering an ID again replaces the
// previous registration. A nil observer is ignored.
func (r *Registry) RegisterLifecycleObserver(observer LifecycleObserver, eventTypes ...string) {
	if observer == nil {
		return
	}
	r.addLifecycleObserver(observer, eventTypes)
	r.logger.Info("Lifecycle observer registered", "observerID", observer.ObserverID(), "eventTypes", eventTypes)
}

// UnregisterLifecycleObserver removes observer. Unknown and nil observers are
// ignored.
func (r *Registry) UnregisterLifecycleObserver(observer LifecycleObserver) {
	if observer == nil {
		return
	}
	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	if _, exists := r.lifecycle[observer.ObserverID()]; exists {
		delete(r.lifecycle, observer.ObserverID())
		r.logger.Info("Lifecycle observer unregistered", "observerID", observer.ObserverID())
	}
}

// LifecycleObservers returns the registered lifecycle observers in
// registration order.
func (r *Registry) LifecycleObservers() []ObserverInfo {
	regs := r.lifecycleSnapshot()

	info := make([]ObserverInfo, 0, len(regs))
	for _, reg := range regs {
		eventTypes := make([]string, 0, len(reg.eventTypes))
		for eventType := range reg.eventTypes {
			eventTypes = append(eventTypes, eventType)
		}
		slices.Sort(eventTypes)

		info = append(info, ObserverInfo{
			ID:           reg.observer.ObserverID(),
			EventTypes:   eventTypes,
			RegisteredAt: reg.registeredAt,
		})
	}
	return info
}

func (r *Registry) addLifecycleObserver(observer LifecycleObserver, eventTypes []string) {
	if observer == nil {
		return
	}
	eventTypeMap := make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		eventTypeMap[eventType] = true
	}

	r.lifecycleMu.Lock()
	defer r.lifecycleMu.Unlock()

	r.lifecycleSeq++
	r.lifecycle[observer.ObserverID()] = &lifecycleRegistration{
		observer:     observer,
		eventTypes:   eventTypeMap,
		registeredAt: time.Now(),
		seq:          r.lifecycleSeq,
	}
}

func (r *Registry) lifecycleSnapshot() []*lifecycleRegistration {
	r.lifecycleMu.RLock()
	regs := make([]*lifecycleRegistration, 0, len(r.lifecycle))
	for _, reg := range r.lifecycle {
		regs = append(regs, reg)
	}
	r.lifecycleMu.RUnlock()

	slices.SortFunc(regs, func(a, b *lifecycleRegistration) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})
	return regs
}

// emit delivers a lifecycle event to every interested observer. It must be
// called without holding any registry or component lock.
func (r *Registry) emit(ctx context.Context, eventType, key string, data map[string]any) {
	regs := r.lifecycleSnapshot()
	if len(regs) == 0 {
		return
	}

	event := NewLifecycleEvent(eventType, key, data)
	if err := ValidateCloudEvent(event); err != nil {
		r.logger.Error("Invalid CloudEvent", "eventType", eventType, "error", err)
		return
	}

	for _, reg := range regs {
		if len(reg.eventTypes) > 0 && !reg.eventTypes[eventType] {
			continue
		}
		if err := reg.observer.OnLifecycleEvent(ctx, event); err != nil {
			r.logger.Error("Lifecycle observer error", "observerID", reg.observer.ObserverID(), "event", eventType, "error", err)
		}
	}
}
