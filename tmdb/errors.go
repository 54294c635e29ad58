package tmdb

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure
type Kind int

const (
	// KindNetwork is a transport or connectivity failure, including timeouts
	KindNetwork Kind = iota
	// KindNotFound means the request was valid but no such entity exists
	KindNotFound
	// KindMalformedResponse means the payload does not match the data model
	KindMalformedResponse
	// KindConfiguration means the client is missing or has an invalid credential
	KindConfiguration
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkError"
	case KindNotFound:
		return "NotFound"
	case KindMalformedResponse:
		return "MalformedResponse"
	case KindConfiguration:
		return "ConfigurationError"
	default:
		return "UnknownError"
	}
}

// Sentinel errors for use with errors.Is
var (
	// ErrNetwork indicates a transport failure
	ErrNetwork = errors.New("network error")
	// ErrNotFound indicates the entity does not exist
	ErrNotFound = errors.New("movie not found")
	// ErrMalformedResponse indicates an unparseable or invalid payload
	ErrMalformedResponse = errors.New("malformed response")
	// ErrConfiguration indicates a missing or invalid credential
	ErrConfiguration = errors.New("configuration error")
)

// FetchError is returned by every failing client call
type FetchError struct {
	Kind       Kind
	Op         string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *FetchError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindConfiguration:
		return ErrConfiguration
	default:
		return ErrNetwork
	}
}

// KindOf classifies any error. Errors that did not come from this package are
// treated as network failures.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindNetwork
}

func newError(kind Kind, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Op: op, Err: err}
}
