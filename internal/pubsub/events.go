// Package pubsub provides a generic publish/subscribe event broker.
// Watch mode publishes one event per processing run; subscribers render
// status lines without coupling the watch loop to any output format.
package pubsub

import (
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	RunSucceededEvent EventType = "run_succeeded"
	RunFailedEvent    EventType = "run_failed"
)

// Event carries a typed payload together with its classification and
// publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// RunEvent describes a single processing run of a watched document.
// Err is nil when the run succeeded.
type RunEvent struct {
	Path     string
	Err      error
	Duration time.Duration
}
