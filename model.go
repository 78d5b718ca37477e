package multicore

import (
	"context"
	"slices"
	"sync"
)

// Model holds the Proxies of a core, keyed by proxy name.
type Model struct {
	registry *Registry
	key      string

	mu      sync.RWMutex
	proxies map[string]Proxy
}

// NewModel creates the Model for key and stores it in r. It fails with a
// DuplicateCoreError if r already has a Model for key; use Registry.GetModel
// to get-or-create.
func NewModel(r *Registry, key string) (*Model, error) {
	m := &Model{
		registry: r,
		key:      key,
		proxies:  make(map[string]Proxy),
	}
	if err := store(r, r.models, KindModel, key, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Key returns the multiton key of the Model's core.
func (m *Model) Key() string {
	return m.key
}

// RegisterProxy binds proxy to this core, stores it under its name
// (replacing any proxy of the same name) and runs its OnRegister hook.
func (m *Model) RegisterProxy(proxy Proxy) {
	if proxy == nil {
		return
	}
	proxy.InitializeNotifier(m.registry, m.key)
	name := proxy.ProxyName()

	m.mu.Lock()
	m.proxies[name] = proxy
	m.mu.Unlock()

	proxy.OnRegister()

	m.registry.logger.Debug("Proxy registered", "core", m.key, "proxy", name)
	m.registry.emit(context.Background(), EventTypeProxyRegistered, m.key, map[string]any{
		"proxyName": name,
	})
}

// RetrieveProxy returns the proxy registered under name, or nil.
func (m *Model) RetrieveProxy(name string) Proxy {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.proxies[name]
}

// HasProxy reports whether a proxy is registered under name.
func (m *Model) HasProxy(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.proxies[name]
	return ok
}

// RemoveProxy removes the proxy registered under name and runs its
// OnRemove hook. It returns the removed proxy, or nil.
func (m *Model) RemoveProxy(name string) Proxy {
	m.mu.Lock()
	proxy, ok := m.proxies[name]
	if ok {
		delete(m.proxies, name)
	}
	m.mu.Unlock()

	if !ok {
		return nil
	}
	proxy.OnRemove()

	m.registry.logger.Debug("Proxy removed", "core", m.key, "proxy", name)
	m.registry.emit(context.Background(), EventTypeProxyRemoved, m.key, map[string]any{
		"proxyName": name,
	})
	return proxy
}

// ProxyNames returns the sorted names of the registered proxies.
func (m *Model) ProxyNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.proxies))
	for name := range m.proxies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
