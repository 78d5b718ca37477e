package multicore

import (
	"fmt"
	"reflect"
	"strings"
)

// Notification is the message passed through a core's View. The name is
// fixed at construction; body and type may be changed by the sender before
// dispatch.
//
// Notifications are ephemeral: the framework does not keep them once
// NotifyObservers returns, though a handler may hold on to the body.
type Notification struct {
	name     string
	body     any
	noteType string
}

// NewNotification creates a notification. body and noteType are optional;
// pass nil and "" when unused.
func NewNotification(name string, body any, noteType string) *Notification {
	return &Notification{
		name:     name,
		body:     body,
		noteType: noteType,
	}
}

// Name returns the notification name.
func (n *Notification) Name() string {
	return n.name
}

// Body returns the notification body.
func (n *Notification) Body() any {
	return n.body
}

// SetBody replaces the notification body.
func (n *Notification) SetBody(body any) {
	n.body = body
}

// Type returns the notification type.
func (n *Notification) Type() string {
	return n.noteType
}

// SetType replaces the notification type.
func (n *Notification) SetType(noteType string) {
	n.noteType = noteType
}

// String renders the notification for debugging:
//
//	Notification Name: TestNote
//	Body:1,3,5
//	Type:TestType
func (n *Notification) String() string {
	var sb strings.Builder
	sb.WriteString("Notification Name: ")
	sb.WriteString(n.name)
	sb.WriteString("\nBody:")
	sb.WriteString(renderBody(n.body))
	sb.WriteString("\nType:")
	if n.noteType == "" {
		sb.WriteString("null")
	} else {
		sb.WriteString(n.noteType)
	}
	return sb.String()
}

// renderBody prints nil as "null" and sequences as comma-joined elements.
func renderBody(body any) string {
	if body == nil {
		return "null"
	}
	if s, ok := body.(fmt.Stringer); ok {
		return s.String()
	}

	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return "null"
		}
		parts := make([]string, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts[i] = renderBody(v.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(body)
	}
}
