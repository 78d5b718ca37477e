package multicore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// ModelFactory, ViewFactory, ControllerFactory and FacadeFactory build a
// component for a key. A factory may store the instance itself (the stock
// New* constructors do) or return an unstored one; either way the registry
// keeps whichever instance was stored first.
type (
	ModelFactory      func(r *Registry, key string) (*Model, error)
	ViewFactory       func(r *Registry, key string) (*View, error)
	ControllerFactory func(r *Registry, key string) (*Controller, error)
	FacadeFactory     func(r *Registry, key string) (*Facade, error)
)

// Registry holds the Model, View, Controller and Facade of every core,
// keyed by multiton key. The zero value is not usable; use NewRegistry.
type Registry struct {
	mu          sync.Mutex
	models      map[string]*Model
	views       map[string]*View
	controllers map[string]*Controller
	facades     map[string]*Facade

	logger Logger

	lifecycleMu  sync.RWMutex
	lifecycle    map[string]*lifecycleRegistration
	lifecycleSeq uint64
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registry diagnostics.
func WithLogger(logger Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLifecycleObserver registers a lifecycle observer at construction.
func WithLifecycleObserver(observer LifecycleObserver, eventTypes ...string) RegistryOption {
	return func(r *Registry) {
		r.addLifecycleObserver(observer, eventTypes)
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		models:      make(map[string]*Model),
		views:       make(map[string]*View),
		controllers: make(map[string]*Controller),
		facades:     make(map[string]*Facade),
		logger:      discardLogger(),
		lifecycle:   make(map[string]*lifecycleRegistration),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRegistry atomic.Pointer[Registry]

func init() {
	defaultRegistry.Store(NewRegistry())
}

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry {
	return defaultRegistry.Load()
}

// SetDefault replaces the process-wide registry. Cores in the previous
// registry are left untouched. A nil registry is ignored.
func SetDefault(r *Registry) {
	if r == nil {
		return
	}
	defaultRegistry.Store(r)
}

// GetFacade returns the Facade for key in the default registry, creating the
// core on first use.
func GetFacade(key string) (*Facade, error) {
	return Default().GetFacade(key, nil)
}

// HasCore reports whether the default registry has a core for key.
func HasCore(key string) bool {
	return Default().HasCore(key)
}

// RemoveCore removes the core for key from the default registry.
func RemoveCore(key string) {
	Default().RemoveCore(key)
}

// GetModel returns the Model for key, building it with factory (NewModel
// when nil) if none exists yet.
func (r *Registry) GetModel(key string, factory ModelFactory) (*Model, error) {
	if factory == nil {
		factory = NewModel
	}
	return getOrCreate(r, r.models, KindModel, key, factory)
}

// GetView returns the View for key, building it with factory (NewView when
// nil) if none exists yet.
func (r *Registry) GetView(key string, factory ViewFactory) (*View, error) {
	if factory == nil {
		factory = NewView
	}
	return getOrCreate(r, r.views, KindView, key, factory)
}

// GetController returns the Controller for key, building it with factory
// (NewController when nil) if none exists yet.
func (r *Registry) GetController(key string, factory ControllerFactory) (*Controller, error) {
	if factory == nil {
		factory = NewController
	}
	return getOrCreate(r, r.controllers, KindController, key, factory)
}

// GetFacade returns the Facade for key, building it with factory (NewFacade
// when nil) if none exists yet.
func (r *Registry) GetFacade(key string, factory FacadeFactory) (*Facade, error) {
	if factory == nil {
		factory = NewFacade
	}
	return getOrCreate(r, r.facades, KindFacade, key, factory)
}

// HasCore reports whether a Facade is registered for key.
func (r *Registry) HasCore(key string) bool {
	_, ok := r.lookupFacade(key)
	return ok
}

// RemoveCore drops the Model, View, Controller and Facade for key. Removing
// an unknown key does nothing. Participants still holding the key can no
// longer reach a Facade through their Notifier.
func (r *Registry) RemoveCore(key string) {
	r.mu.Lock()
	_, hasModel := r.models[key]
	_, hasView := r.views[key]
	_, hasController := r.controllers[key]
	_, hasFacade := r.facades[key]
	if !hasModel && !hasView && !hasController && !hasFacade {
		r.mu.Unlock()
		return
	}
	delete(r.models, key)
	delete(r.views, key)
	delete(r.controllers, key)
	delete(r.facades, key)
	r.mu.Unlock()

	r.logger.Debug("Core removed", "core", key)
	r.emit(context.Background(), EventTypeCoreRemoved, key, nil)
}

// Keys returns the sorted keys of every core with at least one component.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	for k := range r.models {
		seen[k] = struct{}{}
	}
	for k := range r.views {
		seen[k] = struct{}{}
	}
	for k := range r.controllers {
		seen[k] = struct{}{}
	}
	for k := range r.facades {
		seen[k] = struct{}{}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (r *Registry) lookupFacade(key string) (*Facade, bool) {
	return lookup(r, r.facades, key)
}

func lookup[T any](r *Registry, instances map[string]*T, key string) (*T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := instances[key]
	return inst, ok
}

// store records inst for key unless the key is taken, in which case it
// returns a DuplicateCoreError.
func store[T any](r *Registry, instances map[string]*T, kind ComponentKind, key string, inst *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := instances[key]; exists {
		return &DuplicateCoreError{Kind: kind, Key: key}
	}
	instances[key] = inst
	return nil
}

// getOrCreate runs factory without holding the registry lock so factories
// may themselves call back into the registry.
func getOrCreate[T any](r *Registry, instances map[string]*T, kind ComponentKind, key string, factory func(*Registry, string) (*T, error)) (*T, error) {
	if inst, ok := lookup(r, instances, key); ok {
		return inst, nil
	}

	inst, err := factory(r, key)
	if err != nil {
		if IsDuplicateCore(err) {
			if existing, ok := lookup(r, instances, key); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("creating %s for core %q: %w", kind, key, err)
	}
	if inst == nil {
		return nil, fmt.Errorf("creating %s for core %q: %w", kind, key, ErrNilFactory)
	}

	r.mu.Lock()
	if existing, ok := instances[key]; ok {
		r.mu.Unlock()
		return existing, nil
	}
	instances[key] = inst
	r.mu.Unlock()

	if kind == KindFacade {
		r.coreCreated(key)
	}
	return inst, nil
}

func (r *Registry) coreCreated(key string) {
	r.logger.Debug("Core created", "core", key)
	r.emit(context.Background(), EventTypeCoreCreated, key, nil)
}
