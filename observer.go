// Package multicore provides a multi-instance implementation of the
// Model-View-Controller / Observer pattern. Each core is a Model, View,
// Controller and Facade sharing one string key; participants in a core
// (Proxies, Mediators and Commands) communicate only through synchronous
// notifications and never hold references to one another.
package multicore

import "reflect"

// NotifyFunc is the callback an Observer invokes for each notification.
type NotifyFunc func(notification *Notification) error

// Observer pairs a callback with the object ("context") it belongs to.
// Two observers are considered the same registration when their contexts
// are identical, regardless of the callback.
type Observer struct {
	notify  NotifyFunc
	context any
}

// NewObserver creates an observer that calls notify on behalf of context.
// context should be a pointer or another comparable value; it is what
// View.RemoveObserver matches against.
func NewObserver(notify NotifyFunc, context any) *Observer {
	return &Observer{
		notify:  notify,
		context: context,
	}
}

// NotifyObserver invokes the callback with the notification.
func (o *Observer) NotifyObserver(notification *Notification) error {
	if o.notify == nil {
		return nil
	}
	return o.notify(notification)
}

// CompareNotifyContext reports whether context is the same object this
// observer was registered for.
func (o *Observer) CompareNotifyContext(context any) bool {
	return sameContext(o.context, context)
}

// NotifyMethod returns the callback.
func (o *Observer) NotifyMethod() NotifyFunc {
	return o.notify
}

// SetNotifyMethod replaces the callback.
func (o *Observer) SetNotifyMethod(notify NotifyFunc) {
	o.notify = notify
}

// NotifyContext returns the context object.
func (o *Observer) NotifyContext() any {
	return o.context
}

// SetNotifyContext replaces the context object.
func (o *Observer) SetNotifyContext(context any) {
	o.context = context
}

// sameContext is identity comparison that never panics: values whose
// dynamic type is not comparable are never equal.
func sameContext(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
