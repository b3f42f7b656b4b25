// Package storage provides the file hosting collaborator used by the
// document portal. Uploads happen before any database mutation; deletes are
// best-effort compensating actions and never part of a transaction.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when a delete or fetch references an object
// the provider does not hold.
var ErrObjectNotFound = errors.New("storage: object not found")

// FileRef identifies an uploaded file: the URL clients fetch it from, and
// the provider-specific object ID needed to delete it later.
type FileRef struct {
	URL      string `json:"url"`
	ObjectID string `json:"objectId"`
}

// Provider is a file hosting backend.
type Provider interface {
	// Upload stores the content under a provider-chosen key and returns
	// a reference to it. The name is advisory (used for extensions and
	// display), not a key.
	Upload(ctx context.Context, name string, content io.Reader) (FileRef, error)

	// Delete removes a previously uploaded object. Returns
	// ErrObjectNotFound if the object does not exist.
	Delete(ctx context.Context, objectID string) error

	// ProviderType identifies the backend ("local", "s3").
	ProviderType() string
}
