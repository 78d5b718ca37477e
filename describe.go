package multicore

// CoreDescription summarizes the contents of one core.
type CoreDescription struct {
	Key       string         `yaml:"key" json:"key"`
	Proxies   []string       `yaml:"proxies" json:"proxies"`
	Mediators []string       `yaml:"mediators" json:"mediators"`
	Commands  []string       `yaml:"commands" json:"commands"`
	Observers map[string]int `yaml:"observers" json:"observers"`
}

// Describe summarizes every core in the registry, sorted by key. Components
// a core has not created yet are reported as empty.
func (r *Registry) Describe() []CoreDescription {
	keys := r.Keys()
	out := make([]CoreDescription, 0, len(keys))
	for _, key := range keys {
		d := CoreDescription{
			Key:       key,
			Proxies:   []string{},
			Mediators: []string{},
			Commands:  []string{},
			Observers: map[string]int{},
		}
		if m, ok := lookup(r, r.models, key); ok {
			d.Proxies = m.ProxyNames()
		}
		if v, ok := lookup(r, r.views, key); ok {
			d.Mediators = v.MediatorNames()
			for _, name := range v.NotificationNames() {
				d.Observers[name] = v.ObserverCount(name)
			}
		}
		if c, ok := lookup(r, r.controllers, key); ok {
			d.Commands = c.CommandNames()
		}
		out = append(out, d)
	}
	return out
}
