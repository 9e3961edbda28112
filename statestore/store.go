// Package statestore defines the key-value collaborator that holds CSRF
// state between issuing an authorization URL and processing its callback.
// A web application will typically back this with its HTTP session; the
// in-memory implementation here suits single-process use and tests.
package statestore

import "errors"

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("state not found")

// Store is the external session store the CSRF state manager writes to.
// Implementations must be safe for concurrent use when the same store
// backs multiple sessions.
type Store interface {
	// Put stores value under key, overwriting any prior value.
	Put(key, value string) error

	// Get retrieves the value under key, or ErrNotFound.
	Get(key string) (string, error)

	// Delete removes the value under key. Deleting an absent key is not
	// an error.
	Delete(key string) error
}
