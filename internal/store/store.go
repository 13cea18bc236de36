// Package store talks to the remote email template store.
//
// Callers depend on the Client interface. Two implementations exist:
// SES, backed by the AWS SES API, and Memory, an in-process store used by
// dry runs and tests.
//
// # Errors
//
// Client methods return one of two error shapes:
//
//	errors.Is(err, store.ErrConflict)   // create hit an existing template
//	errors.As(err, &remoteErr)          // any other failure (*RemoteError)
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/carpoolnu/sestmpl/internal/catalog"
)

// ErrConflict is returned by CreateTemplate when a template with the same
// name already exists remotely.
var ErrConflict = errors.New("template already exists")

// ErrNotFound is returned when a named template does not exist remotely.
var ErrNotFound = errors.New("template does not exist")

// Client is the capability the synchronizer needs from a template store.
type Client interface {
	CreateTemplate(ctx context.Context, tmpl catalog.Template) error
	UpdateTemplate(ctx context.Context, tmpl catalog.Template) error
}

// RemoteError is any non-conflict failure reported by the store.
type RemoteError struct {
	Op      string // "create", "update" or "render"
	Name    string
	Code    string // service error code, empty for transport failures
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Name, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Name, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RemoteError) Unwrap() error {
	return e.Err
}
