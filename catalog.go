package multicore

import (
	"fmt"
	"slices"
	"sync"
)

// Catalog names the participant factories an application provides so that
// cores can be assembled from configuration.
type Catalog struct {
	mu        sync.RWMutex
	proxies   map[string]ProxyFactory
	mediators map[string]MediatorFactory
	commands  map[string]CommandFactory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		proxies:   make(map[string]ProxyFactory),
		mediators: make(map[string]MediatorFactory),
		commands:  make(map[string]CommandFactory),
	}
}

// AddProxy names a proxy factory. A later call with the same name wins.
func (c *Catalog) AddProxy(name string, factory ProxyFactory) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.proxies[name] = factory
	return c
}

// AddMediator names a mediator factory. A later call with the same name wins.
func (c *Catalog) AddMediator(name string, factory MediatorFactory) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mediators[name] = factory
	return c
}

// AddCommand names a command factory. A later call with the same name wins.
func (c *Catalog) AddCommand(name string, factory CommandFactory) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands[name] = factory
	return c
}

// Proxy returns the factory named name.
func (c *Catalog) Proxy(name string) (ProxyFactory, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if f, ok := c.proxies[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProxy, name)
}

// Mediator returns the factory named name.
func (c *Catalog) Mediator(name string) (MediatorFactory, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if f, ok := c.mediators[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMediator, name)
}

// Command returns the factory named name.
func (c *Catalog) Command(name string) (CommandFactory, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if f, ok := c.commands[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// Names returns the sorted proxy, mediator and command names.
func (c *Catalog) Names() (proxies, mediators, commands []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.proxies), sortedKeys(c.mediators), sortedKeys(c.commands)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Bootstrap creates (or reuses) a core for every entry in cfg.Cores and
// registers its participants: proxies first, then commands, then
// mediators, so a mediator's OnRegister can already reach the proxies.
// Every name is resolved before a core is touched, so an unknown name
// leaves that core unchanged.
func (c *Catalog) Bootstrap(r *Registry, cfg *RegistryConfig) ([]*Facade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	facades := make([]*Facade, 0, len(cfg.Cores))
	for _, core := range cfg.Cores {
		facade, err := c.bootstrapCore(r, core)
		if err != nil {
			return facades, fmt.Errorf("bootstrapping core %q: %w", core.Key, err)
		}
		facades = append(facades, facade)
	}
	return facades, nil
}

func (c *Catalog) bootstrapCore(r *Registry, core CoreConfig) (*Facade, error) {
	proxies := make([]ProxyFactory, 0, len(core.Proxies))
	for _, name := range core.Proxies {
		f, err := c.Proxy(name)
		if err != nil {
			return nil, err
		}
		proxies = append(proxies, f)
	}

	commands := make([]CommandFactory, 0, len(core.Commands))
	for _, binding := range core.Commands {
		f, err := c.Command(binding.Command)
		if err != nil {
			return nil, err
		}
		commands = append(commands, f)
	}

	mediators := make([]MediatorFactory, 0, len(core.Mediators))
	for _, name := range core.Mediators {
		f, err := c.Mediator(name)
		if err != nil {
			return nil, err
		}
		mediators = append(mediators, f)
	}

	facade, err := r.GetFacade(core.Key, nil)
	if err != nil {
		return nil, err
	}

	for i, f := range proxies {
		proxy := f()
		if proxy == nil {
			return nil, fmt.Errorf("proxy %q: %w", core.Proxies[i], ErrNilFactory)
		}
		facade.RegisterProxy(proxy)
	}
	for i, f := range commands {
		facade.RegisterCommand(core.Commands[i].Notification, f)
	}
	for i, f := range mediators {
		mediator := f()
		if mediator == nil {
			return nil, fmt.Errorf("mediator %q: %w", core.Mediators[i], ErrNilFactory)
		}
		facade.RegisterMediator(mediator)
	}
	return facade, nil
}
