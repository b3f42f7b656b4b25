package versioning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
)

func TestGetHistory(t *testing.T) {
	t.Run("merges live and archived versions in numeric order", func(t *testing.T) {
		db := newTestDB(t)
		actorID := seedFixtures(t, db)
		e := NewEngine(db, nil, nil)
		doc := createTestDocument(t, e, actorID)

		// Live row at "3"; archive spans single- and double-digit
		// labels, plus a stray duplicate of the live label.
		require.NoError(t, db.Model(&models.Document{}).
			Where("id = ?", doc.ID).Update("version", "3").Error)
		for _, label := range []string{"1", "2", "3", "9", "10"} {
			v := &models.DocumentVersion{
				DocumentID: doc.ID,
				Version:    label,
				Title:      "archived " + label,
				FileURL:    "https://files.test/" + label + ".pdf",
				ArchivedAt: time.Now(),
			}
			require.NoError(t, v.Create(db))
		}

		history, err := e.GetHistory(context.Background(), doc.ID)
		require.NoError(t, err)

		var labels []string
		for _, entry := range history.Versions {
			labels = append(labels, entry.Version)
		}
		// "10" before "9": numeric descending, never lexical. The
		// archived "3" is filtered; the active entry wins the tie.
		assert.Equal(t, []string{"10", "9", "3", "2", "1"}, labels)

		active := history.Versions[2]
		assert.Equal(t, HistoryStatusActive, active.Status)
		assert.Nil(t, active.VersionID)
		for i, entry := range history.Versions {
			if i == 2 {
				continue
			}
			assert.Equal(t, HistoryStatusArchived, entry.Status)
			assert.NotNil(t, entry.VersionID)
		}
	})

	t.Run("never returns a duplicate label pair", func(t *testing.T) {
		db := newTestDB(t)
		actorID := seedFixtures(t, db)
		e := NewEngine(db, nil, nil)
		doc := createTestDocument(t, e, actorID)

		_, err := e.PublishNewVersion(context.Background(), doc.ID, actorID,
			PublishInput{Title: "rev 2"})
		require.NoError(t, err)

		history, err := e.GetHistory(context.Background(), doc.ID)
		require.NoError(t, err)

		seen := map[string]bool{}
		for _, entry := range history.Versions {
			assert.False(t, seen[entry.Version],
				"duplicate version label %q in history", entry.Version)
			seen[entry.Version] = true
		}
	})

	t.Run("includes the activity trail newest first", func(t *testing.T) {
		db := newTestDB(t)
		actorID := seedFixtures(t, db)
		e := NewEngine(db, nil, nil)
		doc := createTestDocument(t, e, actorID)

		_, err := e.PublishNewVersion(context.Background(), doc.ID, actorID,
			PublishInput{Title: "rev 2", Note: "first revision"})
		require.NoError(t, err)

		history, err := e.GetHistory(context.Background(), doc.ID)
		require.NoError(t, err)

		require.Len(t, history.Logs, 2)
		assert.Equal(t, models.ActivityActionUpdateVersion, history.Logs[0].Action)
		assert.Equal(t, models.ActivityActionCreate, history.Logs[1].Action)
	})

	t.Run("missing document surfaces not found", func(t *testing.T) {
		db := newTestDB(t)
		seedFixtures(t, db)
		e := NewEngine(db, nil, nil)

		_, err := e.GetHistory(context.Background(), 999)
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
