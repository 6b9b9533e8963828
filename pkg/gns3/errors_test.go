package gns3

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "error with message",
			err: &Error{
				Op:  "CreateNode",
				Err: ErrAlreadyExists,
				Msg: "node with same name already exists: R1",
			},
			expected: "CreateNode: node with same name already exists: R1: resource already exists",
		},
		{
			name: "error without message",
			err: &Error{
				Op:  "SearchNode",
				Err: ErrInvalidArgument,
			},
			expected: "SearchNode: invalid argument",
		},
		{
			name: "already connected",
			err: &Error{
				Op:  "CreateLink",
				Err: &AlreadyConnectedError{LinkID: "l-1"},
			},
			expected: "CreateLink: at least one port is used, link ID: l-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{
			name:   "wrapped sentinel",
			err:    newError("DeleteNode", ErrNotFound, "node %s", ByName("R1")),
			target: ErrNotFound,
			want:   true,
		},
		{
			name:   "different sentinel",
			err:    newError("DeleteNode", ErrNotFound, "node"),
			target: ErrAlreadyExists,
			want:   false,
		},
		{
			name:   "already connected through Error",
			err:    &Error{Op: "CreateLink", Err: &AlreadyConnectedError{LinkID: "x"}},
			target: ErrAlreadyConnected,
			want:   true,
		},
		{
			name:   "transport error",
			err:    fmt.Errorf("listing: %w", &TransportError{Method: "GET", URL: "/v2/projects", StatusCode: 500}),
			target: ErrTransport,
			want:   true,
		},
		{
			name:   "transport error is not not-found",
			err:    &TransportError{Method: "GET", URL: "/v2/projects/x", StatusCode: 404},
			target: ErrNotFound,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	withStatus := &TransportError{Method: "POST", URL: "http://h/v2/projects", StatusCode: 409, Body: "exists"}
	if got, want := withStatus.Error(), "POST http://h/v2/projects: API returned status 409: exists"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("connection refused")
	withCause := &TransportError{Method: "GET", URL: "http://h/v2/version", Err: cause}
	if !errors.Is(withCause, cause) {
		t.Error("expected TransportError to unwrap to its cause")
	}
}

func TestIsStatus(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &TransportError{StatusCode: http.StatusConflict})
	if !IsStatus(err, http.StatusConflict) {
		t.Error("expected IsStatus to match 409")
	}
	if IsStatus(err, http.StatusNotFound) {
		t.Error("expected IsStatus not to match 404")
	}
	if IsStatus(ErrNotFound, http.StatusNotFound) {
		t.Error("expected IsStatus to ignore non-transport errors")
	}
}
