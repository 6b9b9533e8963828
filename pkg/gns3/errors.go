package gns3

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped) by the library. Use errors.Is to test
// for them.
var (
	// ErrInvalidArgument indicates the caller supplied no identifying key or
	// an unsupported combination of keys.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a name or ID did not resolve to a resource where
	// the operation requires one to exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a create was requested for a name that
	// already resolves within its uniqueness scope.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrAlreadyConnected indicates a link endpoint is already occupied.
	ErrAlreadyConnected = errors.New("port already connected")

	// ErrTransport indicates the remote call failed (network or non-2xx).
	ErrTransport = errors.New("transport failure")
)

// Error describes a failed library operation.
type Error struct {
	// Op is the operation that failed, e.g. "CreateNode".
	Op string

	// Err is the underlying error, usually one of the sentinels above.
	Err error

	// Msg is optional detail.
	Msg string
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error, format string, args ...any) *Error {
	return &Error{Op: op, Err: err, Msg: fmt.Sprintf(format, args...)}
}

// requireConnector rejects entities built as struct literals. Only values
// returned by a Connector or a facade function can reach the server.
func requireConnector(op string, c *Connector) error {
	if c == nil {
		return newError(op, ErrInvalidArgument, "not bound to a connector")
	}
	return nil
}

// AlreadyConnectedError is returned by CreateLink when one of the requested
// ports is used by an existing link.
type AlreadyConnectedError struct {
	LinkID string
}

func (e *AlreadyConnectedError) Error() string {
	return fmt.Sprintf("at least one port is used, link ID: %s", e.LinkID)
}

// Is reports whether target is ErrAlreadyConnected.
func (e *AlreadyConnectedError) Is(target error) bool {
	return target == ErrAlreadyConnected
}

// TransportError is returned when an HTTP call fails, either before a
// response was received (Err is set) or with a non-2xx status.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: API returned status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// IsStatus reports whether err is a TransportError carrying the given HTTP
// status code.
func IsStatus(err error, code int) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode == code
	}
	return false
}
