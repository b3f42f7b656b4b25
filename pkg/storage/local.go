package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// LocalProvider stores files on the local filesystem. Used in simplified
// (zero-config) mode; files are served by the web server from BaseURL.
type LocalProvider struct {
	dir     string
	baseURL string
	logger  hclog.Logger
}

// NewLocalProvider creates a local filesystem provider rooted at dir.
func NewLocalProvider(dir, baseURL string, logger hclog.Logger) (*LocalProvider, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating storage directory: %w", err)
	}
	return &LocalProvider{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.Named("local-storage"),
	}, nil
}

// Upload writes the content to a UUID-keyed file under the storage
// directory.
func (p *LocalProvider) Upload(ctx context.Context, name string, content io.Reader) (FileRef, error) {
	objectID := uuid.New().String() + filepath.Ext(name)
	path := filepath.Join(p.dir, objectID)

	f, err := os.Create(path)
	if err != nil {
		return FileRef{}, fmt.Errorf("error creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return FileRef{}, fmt.Errorf("error writing file: %w", err)
	}

	p.logger.Debug("stored file", "object_id", objectID, "name", name)

	return FileRef{
		URL:      fmt.Sprintf("%s/%s", p.baseURL, objectID),
		ObjectID: objectID,
	}, nil
}

// Delete removes the object's file.
func (p *LocalProvider) Delete(ctx context.Context, objectID string) error {
	// Reject path traversal in stored object IDs.
	if objectID != filepath.Base(objectID) {
		return fmt.Errorf("invalid object ID: %q", objectID)
	}

	err := os.Remove(filepath.Join(p.dir, objectID))
	if os.IsNotExist(err) {
		return ErrObjectNotFound
	}
	return err
}

// ProviderType identifies the backend.
func (p *LocalProvider) ProviderType() string {
	return "local"
}
