package multicore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a testify mock implementing Logger.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Warn(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *MockLogger) Debug(msg string, args ...any) {
	m.Called(msg, args)
}

// logger adapts testing.T to Logger so diagnostics show up with -v.
type logger struct {
	t *testing.T
}

func (l *logger) Info(msg string, args ...any)  { l.t.Log(append([]any{"INFO", msg}, args...)...) }
func (l *logger) Error(msg string, args ...any) { l.t.Log(append([]any{"ERROR", msg}, args...)...) }
func (l *logger) Warn(msg string, args ...any)  { l.t.Log(append([]any{"WARN", msg}, args...)...) }
func (l *logger) Debug(msg string, args ...any) { l.t.Log(append([]any{"DEBUG", msg}, args...)...) }

// newTestRegistry returns an isolated registry logging to t.
func newTestRegistry(t *testing.T, opts ...RegistryOption) *Registry {
	t.Helper()
	return NewRegistry(append([]RegistryOption{WithLogger(&logger{t})}, opts...)...)
}

// eventRecorder collects lifecycle events.
type eventRecorder struct {
	mu     sync.Mutex
	events []cloudevents.Event
}

func (r *eventRecorder) OnLifecycleEvent(_ context.Context, event cloudevents.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) ObserverID() string {
	return "event-recorder"
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type()
	}
	return types
}

// testVO is the value object passed through command tests.
type testVO struct {
	Input   int
	Result  int
	Result1 int
	Result2 int
}

// doubleCommand sets Result to twice Input.
type doubleCommand struct {
	SimpleCommand
}

func (c *doubleCommand) Execute(n *Notification) error {
	vo := n.Body().(*testVO)
	vo.Result = 2 * vo.Input
	return nil
}

// accumulateCommand adds twice Input to Result.
type accumulateCommand struct {
	SimpleCommand
}

func (c *accumulateCommand) Execute(n *Notification) error {
	vo := n.Body().(*testVO)
	vo.Result += 2 * vo.Input
	return nil
}

// failingCommand always fails.
type failingCommand struct {
	SimpleCommand
	err error
}

func (c *failingCommand) Execute(*Notification) error {
	return c.err
}

// hookProxy records its hooks in its data, like a stock proxy would.
type hookProxy struct {
	*BaseProxy
}

func newHookProxy(name string) *hookProxy {
	return &hookProxy{BaseProxy: NewProxy(name, nil)}
}

func (p *hookProxy) OnRegister() {
	p.SetData("onRegister Called")
}

func (p *hookProxy) OnRemove() {
	p.SetData("onRemove Called")
}

// recordingMediator records handled notifications and hook calls.
type recordingMediator struct {
	*BaseMediator
	interests  []string
	handle     func(m *recordingMediator, n *Notification) error
	mu         sync.Mutex
	handled    []string
	registered int
	removed    int
}

func newRecordingMediator(name string, interests ...string) *recordingMediator {
	return &recordingMediator{
		BaseMediator: NewMediator(name, nil),
		interests:    interests,
	}
}

func (m *recordingMediator) ListNotificationInterests() []string {
	return m.interests
}

func (m *recordingMediator) HandleNotification(n *Notification) error {
	m.mu.Lock()
	m.handled = append(m.handled, n.Name())
	m.mu.Unlock()
	if m.handle != nil {
		return m.handle(m, n)
	}
	return nil
}

func (m *recordingMediator) OnRegister() {
	m.registered++
}

func (m *recordingMediator) OnRemove() {
	m.removed++
}

func (m *recordingMediator) handledNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.handled...)
}

// uniqueKey returns a key unique to the running test.
func uniqueKey(t *testing.T, suffix string) string {
	return fmt.Sprintf("%s/%s", t.Name(), suffix)
}
