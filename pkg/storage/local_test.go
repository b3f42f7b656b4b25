package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider(t *testing.T) {
	dir := t.TempDir()
	p, err := NewLocalProvider(dir, "http://localhost:8000/files/", nil)
	require.NoError(t, err)

	t.Run("upload stores the content and keeps the extension", func(t *testing.T) {
		ref, err := p.Upload(context.Background(), "guideline.pdf",
			strings.NewReader("%PDF-1.7 test"))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(ref.ObjectID, ".pdf"))
		assert.Equal(t, "http://localhost:8000/files/"+ref.ObjectID, ref.URL)

		content, err := os.ReadFile(filepath.Join(dir, ref.ObjectID))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 test", string(content))
	})

	t.Run("delete removes the object", func(t *testing.T) {
		ref, err := p.Upload(context.Background(), "tmp.pdf", strings.NewReader("x"))
		require.NoError(t, err)

		require.NoError(t, p.Delete(context.Background(), ref.ObjectID))
		_, err = os.Stat(filepath.Join(dir, ref.ObjectID))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete of a missing object reports not found", func(t *testing.T) {
		err := p.Delete(context.Background(), "nonexistent.pdf")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("delete rejects path traversal", func(t *testing.T) {
		err := p.Delete(context.Background(), "../escape.pdf")
		assert.Error(t, err)
	})
}
