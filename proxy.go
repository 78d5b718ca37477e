package multicore

// DefaultProxyName is used when a proxy is created without a name.
const DefaultProxyName = "Proxy"

// Proxy manages a piece of a core's data model and announces changes to it
// by sending notifications.
type Proxy interface {
	Notifier
	ProxyName() string
	Data() any
	SetData(data any)
	OnRegister()
	OnRemove()
}

// ProxyFactory builds a Proxy.
type ProxyFactory func() Proxy

// BaseProxy implements Proxy with no-op hooks. Embed it in concrete proxies
// and override OnRegister or OnRemove as needed.
type BaseProxy struct {
	BaseNotifier
	name string
	data any
}

// NewProxy creates a proxy named name (DefaultProxyName when empty)
// holding data.
func NewProxy(name string, data any) *BaseProxy {
	if name == "" {
		name = DefaultProxyName
	}
	return &BaseProxy{name: name, data: data}
}

// ProxyName implements Proxy.
func (p *BaseProxy) ProxyName() string {
	return p.name
}

// Data implements Proxy.
func (p *BaseProxy) Data() any {
	return p.data
}

// SetData implements Proxy.
func (p *BaseProxy) SetData(data any) {
	p.data = data
}

// OnRegister is called by the Model after the proxy is registered.
func (p *BaseProxy) OnRegister() {}

// OnRemove is called by the Model after the proxy is removed.
func (p *BaseProxy) OnRemove() {}
