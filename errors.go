package multicore

import (
	"errors"
	"fmt"
)

// Static errors. Typed errors below match these through errors.Is so callers
// can test the kind without caring about the details.
var (
	ErrDuplicateCore         = errors.New("multiton instance already constructed for key")
	ErrUninitializedNotifier = errors.New("multiton key for this notifier not yet initialized")
	ErrCoreNotFound          = errors.New("core not found")

	// Catalog lookups
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnknownMediator = errors.New("unknown mediator")
	ErrUnknownProxy    = errors.New("unknown proxy")

	// Configuration
	ErrConfigFeederError = errors.New("config feeder error")
	ErrInvalidCoreConfig = errors.New("invalid core configuration")
	ErrNilFactory        = errors.New("factory returned nil instance")
)

// ComponentKind names one of the four per-core component kinds.
type ComponentKind string

const (
	KindModel      ComponentKind = "Model"
	KindView       ComponentKind = "View"
	KindController ComponentKind = "Controller"
	KindFacade     ComponentKind = "Facade"
)

// DuplicateCoreError is returned when a Model, View, Controller or Facade is
// constructed directly for a key that already has an instance of that kind.
// Use the registry's Get* accessors instead of the New* constructors to avoid it.
type DuplicateCoreError struct {
	Kind ComponentKind
	Key  string
}

func (e *DuplicateCoreError) Error() string {
	return fmt.Sprintf("%s instance for multiton key %q already constructed", e.Kind, e.Key)
}

func (e *DuplicateCoreError) Is(target error) bool {
	return target == ErrDuplicateCore
}

// UninitializedNotifierError is returned when a Notifier is asked for its
// Facade before InitializeNotifier has been called on it.
type UninitializedNotifierError struct{}

func (e *UninitializedNotifierError) Error() string {
	return ErrUninitializedNotifier.Error()
}

func (e *UninitializedNotifierError) Is(target error) bool {
	return target == ErrUninitializedNotifier
}

// CoreNotFoundError is returned when a key has no Facade in the registry,
// typically because the core was removed.
type CoreNotFoundError struct {
	Key string
}

func (e *CoreNotFoundError) Error() string {
	return fmt.Sprintf("core %q not found", e.Key)
}

func (e *CoreNotFoundError) Is(target error) bool {
	return target == ErrCoreNotFound
}

// IsDuplicateCore reports whether err is (or wraps) a duplicate-construction error.
func IsDuplicateCore(err error) bool {
	return errors.Is(err, ErrDuplicateCore)
}
