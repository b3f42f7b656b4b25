package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(ModelsToAutoMigrate()...))
	return db
}

func TestDocumentCreate(t *testing.T) {
	db := newTestDB(t)

	t.Run("defaults the version label to 1", func(t *testing.T) {
		doc := &Document{
			Title:          "Tatalaksana Apendisitis",
			StaffGroupID:   1,
			DocumentTypeID: 1,
			FileURL:        "https://files.test/a.pdf",
		}
		require.NoError(t, doc.Create(db))
		assert.Equal(t, "1", doc.Version)
	})

	t.Run("rejects a document without a title", func(t *testing.T) {
		doc := &Document{
			StaffGroupID:   1,
			DocumentTypeID: 1,
			FileURL:        "https://files.test/a.pdf",
		}
		require.Error(t, doc.Create(db))
	})

	t.Run("rejects a document without a file", func(t *testing.T) {
		doc := &Document{
			Title:          "No file",
			StaffGroupID:   1,
			DocumentTypeID: 1,
		}
		require.Error(t, doc.Create(db))
	})
}

func TestActivityLogCreate(t *testing.T) {
	db := newTestDB(t)

	t.Run("rejects an unknown action", func(t *testing.T) {
		log := &ActivityLog{DocumentID: 1, Action: "REWIND"}
		require.Error(t, log.Create(db))
	})

	t.Run("accepts all defined actions", func(t *testing.T) {
		for _, action := range []string{
			ActivityActionCreate,
			ActivityActionUpdate,
			ActivityActionUpdateVersion,
			ActivityActionRestore,
			ActivityActionDeleteVersion,
		} {
			log := &ActivityLog{DocumentID: 1, Action: action}
			assert.NoError(t, log.Create(db), action)
		}
	})
}

func TestListDocuments(t *testing.T) {
	db := newTestDB(t)

	mk := func(title string, group, docType uint, active bool) {
		doc := &Document{
			Title:          title,
			StaffGroupID:   group,
			DocumentTypeID: docType,
			FileURL:        "https://files.test/x.pdf",
			Active:         active,
		}
		require.NoError(t, doc.Create(db))
	}
	mk("surgery ppk", 1, 1, true)
	mk("surgery pathway", 1, 2, true)
	mk("pediatric ppk", 2, 1, false)

	t.Run("filters by staff group", func(t *testing.T) {
		docs, err := ListDocuments(db, DocumentFilter{StaffGroupID: 1})
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("filters by type and active flag", func(t *testing.T) {
		docs, err := ListDocuments(db, DocumentFilter{DocumentTypeID: 1, ActiveOnly: true})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "surgery ppk", docs[0].Title)
	})
}
