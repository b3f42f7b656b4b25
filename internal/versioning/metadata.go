package versioning

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/storage"
)

// MetadataUpdate enumerates exactly the document fields an in-place edit may
// change. Nil pointers leave the field alone. The version label and the
// archive are deliberately unreachable from here: editing metadata is not a
// versioning operation.
type MetadataUpdate struct {
	Title          *string
	Description    *string
	StaffGroupID   *uint
	DocumentTypeID *uint
	Active         *bool
	ValidatedAt    *time.Time

	// ClearValidatedAt clears the validation date. ValidatedAt being nil
	// means "unchanged", so clearing needs its own flag.
	ClearValidatedAt bool

	// File replaces the hosted file reference, if a replacement was
	// uploaded.
	File *storage.FileRef
}

// UpdateMetadata updates a document's descriptive fields in place. No
// archive row is created and the version label does not change.
func (e *Engine) UpdateMetadata(ctx context.Context, documentID, actorID uint, in MetadataUpdate) (*models.Document, error) {
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.StaffGroupID != nil {
		updates["staff_group_id"] = *in.StaffGroupID
	}
	if in.DocumentTypeID != nil {
		updates["document_type_id"] = *in.DocumentTypeID
	}
	if in.Active != nil {
		updates["active"] = *in.Active
	}
	if in.ValidatedAt != nil {
		updates["validated_at"] = *in.ValidatedAt
	} else if in.ClearValidatedAt {
		updates["validated_at"] = nil
	}
	if in.File != nil {
		updates["file_url"] = in.File.URL
		updates["file_object_id"] = in.File.ObjectID
	}

	var doc models.Document
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, documentID).Error; err != nil {
			return err
		}

		if len(updates) == 0 {
			return nil
		}
		updates["updated_at"] = time.Now()

		if err := tx.Model(&models.Document{}).
			Where("id = ?", doc.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("error updating document: %w", err)
		}

		log := &models.ActivityLog{
			DocumentID:  doc.ID,
			Action:      models.ActivityActionUpdate,
			Description: fmt.Sprintf("edited document metadata at version %s", doc.Version),
			ActorID:     actorID,
		}
		if err := log.Create(tx); err != nil {
			return err
		}

		return tx.First(&doc, documentID).Error
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
