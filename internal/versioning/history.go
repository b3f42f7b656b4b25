package versioning

import (
	"context"
	"sort"
	"time"

	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/version"
)

// History entry status values.
const (
	HistoryStatusActive   = "active"
	HistoryStatusArchived = "archived"
)

// HistoryEntry is one row of the merged version view: either the live
// document or an archived snapshot.
type HistoryEntry struct {
	// VersionID is the archive row ID, or nil for the active entry.
	VersionID *uint `json:"versionId,omitempty"`

	Version     string     `json:"version"`
	Status      string     `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	FileURL     string     `json:"fileUrl"`
	ValidatedAt *time.Time `json:"validatedAt,omitempty"`

	// Timestamp is the live row's update time for the active entry and
	// the archive time for archived entries.
	Timestamp time.Time `json:"timestamp"`
}

// History is the read-side view of a document's past: the merged version
// sequence and the activity trail. The two reads are independent; this is a
// display projection, not a correctness-bearing path.
type History struct {
	Versions []HistoryEntry       `json:"versions"`
	Logs     []models.ActivityLog `json:"logs"`
}

// GetHistory assembles the document's history: the live document tagged
// active plus all archived versions, sorted by numeric version descending.
// Any archived entry whose label equals the live label is filtered out —
// the active entry wins a tie. Restore absorbs the promoted row so a tie
// should not exist at rest, but the projection defends against one anyway.
func (e *Engine) GetHistory(ctx context.Context, documentID uint) (*History, error) {
	db := e.db.WithContext(ctx)

	var doc models.Document
	if err := doc.Get(db, documentID); err != nil {
		return nil, err
	}

	archived, err := models.GetVersionsByDocumentID(db, documentID)
	if err != nil {
		return nil, err
	}

	logs, err := models.GetActivityLogsByDocumentID(db, documentID)
	if err != nil {
		return nil, err
	}

	entries := []HistoryEntry{{
		Version:     doc.Version,
		Status:      HistoryStatusActive,
		Title:       doc.Title,
		Description: doc.Description,
		FileURL:     doc.FileURL,
		ValidatedAt: doc.ValidatedAt,
		Timestamp:   doc.UpdatedAt,
	}}
	for _, v := range archived {
		if version.Compare(v.Version, doc.Version) == 0 {
			continue
		}
		v := v
		entries = append(entries, HistoryEntry{
			VersionID:   &v.ID,
			Version:     v.Version,
			Status:      HistoryStatusArchived,
			Title:       v.Title,
			Description: v.Description,
			FileURL:     v.FileURL,
			ValidatedAt: v.ValidatedAt,
			Timestamp:   v.ArchivedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return version.Compare(entries[i].Version, entries[j].Version) > 0
	})

	return &History{
		Versions: entries,
		Logs:     logs,
	}, nil
}
