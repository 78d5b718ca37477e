package multicore

import (
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// CloudEvent types emitted by a Registry. They follow the reverse-DNS naming
// convention of the CloudEvents specification.
const (
	// Core lifecycle
	EventTypeCoreCreated = "com.multicore.core.created"
	EventTypeCoreRemoved = "com.multicore.core.removed"

	// Participant registration
	EventTypeProxyRegistered    = "com.multicore.proxy.registered"
	EventTypeProxyRemoved       = "com.multicore.proxy.removed"
	EventTypeMediatorRegistered = "com.multicore.mediator.registered"
	EventTypeMediatorRemoved    = "com.multicore.mediator.removed"
	EventTypeCommandRegistered  = "com.multicore.command.registered"
	EventTypeCommandRemoved     = "com.multicore.command.removed"
)

// EventSourcePrefix prefixes the key in the source attribute of every
// lifecycle event.
const EventSourcePrefix = "multicore/"

// EventSource returns the CloudEvent source for a core.
func EventSource(key string) string {
	return EventSourcePrefix + key
}

// NewLifecycleEvent builds a CloudEvent for the core identified by key.
// data is encoded as JSON when non-nil.
func NewLifecycleEvent(eventType, key string, data map[string]any) cloudevents.Event {
	event := cloudevents.NewEvent()
	event.SetID(generateEventID())
	event.SetSource(EventSource(key))
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	event.SetExtension("multitonkey", key)

	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

// generateEventID returns a time-ordered UUIDv7, falling back to v4.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// ValidateCloudEvent checks event against the CloudEvents specification.
func ValidateCloudEvent(event cloudevents.Event) error {
	return event.Validate()
}
