package catalog

import (
	"errors"

	"github.com/s0up4200/cinerate/tmdb"
)

// Status is the tag of a State
type Status int

const (
	// StatusLoading means a fetch cycle is in progress
	StatusLoading Status = iota
	// StatusReady means the payload is available
	StatusReady
	// StatusEmpty means the fetch succeeded but there is nothing to show
	StatusEmpty
	// StatusFailed means the fetch failed
	StatusFailed
)

// String returns the string representation of a Status
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends a fetch cycle
func (s Status) Terminal() bool {
	return s != StatusLoading
}

// State is the tagged result of a fetch cycle. Exactly one variant holds; the
// payload is only set when Ready and the error only when Failed.
type State[T any] struct {
	status  Status
	payload T
	err     error
}

// Loading returns the initial state of a cycle
func Loading[T any]() State[T] {
	return State[T]{status: StatusLoading}
}

// Ready returns a state carrying payload
func Ready[T any](payload T) State[T] {
	return State[T]{status: StatusReady, payload: payload}
}

// Empty returns a successful state with nothing to show
func Empty[T any]() State[T] {
	return State[T]{status: StatusEmpty}
}

// Failed returns a failed state. A nil error is replaced so that a reason is
// always available.
func Failed[T any](err error) State[T] {
	if err == nil {
		err = errors.New("unknown error")
	}
	return State[T]{status: StatusFailed, err: err}
}

// Status returns the variant tag
func (s State[T]) Status() Status {
	return s.status
}

// Payload returns the payload and whether the state is Ready
func (s State[T]) Payload() (T, bool) {
	return s.payload, s.status == StatusReady
}

// Err returns the failure, or nil unless the state is Failed
func (s State[T]) Err() error {
	return s.err
}

// Reason returns a human readable failure reason, empty unless Failed
func (s State[T]) Reason() string {
	if s.err == nil {
		return ""
	}
	return s.err.Error()
}

// ErrorKind classifies the failure of a Failed state
func (s State[T]) ErrorKind() (tmdb.Kind, bool) {
	if s.status != StatusFailed {
		return 0, false
	}
	return tmdb.KindOf(s.err), true
}
