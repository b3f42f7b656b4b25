// Package versioning implements the document version ledger: publishing new
// versions, restoring archived ones, and the merged history view.
//
// The live row in the documents table always holds what is currently
// published; every transition snapshots the displaced content into
// document_versions before overwriting the live row, inside one database
// transaction. The live row's primary key never changes.
package versioning

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"

	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/storage"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/version"
)

// ErrVersionConflict is returned when a transition lost a race: the live
// row's version changed between the read and the guarded write. The
// transaction is rolled back; nothing was archived or logged.
var ErrVersionConflict = errors.New("document was modified concurrently")

// Engine executes document state transitions against the version ledger.
type Engine struct {
	db      *gorm.DB
	storage storage.Provider
	logger  hclog.Logger
}

// NewEngine creates a versioning engine. The storage provider is only used
// for best-effort file cleanup on whole-document deletion and may be nil in
// contexts that never delete documents (tests, read paths).
func NewEngine(db *gorm.DB, sp storage.Provider, logger hclog.Logger) *Engine {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Engine{
		db:      db,
		storage: sp,
		logger:  logger.Named("versioning"),
	}
}

// CreateInput holds the fields for creating a document. The file must
// already be uploaded; the engine never talks to the file host on the write
// path.
type CreateInput struct {
	Title          string
	Description    string
	StaffGroupID   uint
	DocumentTypeID uint
	File           storage.FileRef
	ValidatedAt    *time.Time
}

// CreateDocument creates a document at version "1" and logs the creation.
func (e *Engine) CreateDocument(ctx context.Context, actorID uint, in CreateInput) (*models.Document, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.StaffGroupID, validation.Required),
		validation.Field(&in.DocumentTypeID, validation.Required),
	); err != nil {
		return nil, err
	}
	if in.File.URL == "" {
		return nil, validation.Errors{"file": errors.New("cannot be blank")}
	}

	doc := &models.Document{
		Title:          in.Title,
		Description:    in.Description,
		StaffGroupID:   in.StaffGroupID,
		DocumentTypeID: in.DocumentTypeID,
		FileURL:        in.File.URL,
		FileObjectID:   in.File.ObjectID,
		Version:        "1",
		Active:         true,
		ValidatedAt:    in.ValidatedAt,
		UploadedByID:   actorID,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := doc.Create(tx); err != nil {
			return err
		}
		log := &models.ActivityLog{
			DocumentID:  doc.ID,
			Action:      models.ActivityActionCreate,
			Description: fmt.Sprintf("created document %q at version 1", doc.Title),
			ActorID:     actorID,
		}
		return log.Create(tx)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("document created", "document_id", doc.ID, "actor_id", actorID)
	return doc, nil
}

// PublishInput holds the fields for publishing a new version of a document.
type PublishInput struct {
	Title       string
	Description string

	// File is the replacement file reference, or nil to keep the
	// current file.
	File *storage.FileRef

	ValidatedAt *time.Time

	// Note is the human-readable change-log note recorded in the
	// activity trail.
	Note string
}

// PublishNewVersion archives the document's current content and promotes
// the given content as the new current version. The archive insert, the
// live-row update, and the log append all happen in one transaction; on any
// failure the document and its history are exactly as before.
func (e *Engine) PublishNewVersion(ctx context.Context, documentID, actorID uint, in PublishInput) (*models.Document, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
	); err != nil {
		return nil, err
	}

	var doc models.Document
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, documentID).Error; err != nil {
			return err
		}
		return e.publishFrom(tx, &doc, actorID, in)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("published new version",
		"document_id", doc.ID,
		"version", doc.Version,
		"actor_id", actorID,
	)
	return &doc, nil
}

// publishFrom runs the publish steps against an already-loaded document.
// The live-row update is guarded on the version read into doc; if another
// transition got there first the update matches zero rows and the whole
// transaction rolls back with ErrVersionConflict.
func (e *Engine) publishFrom(tx *gorm.DB, doc *models.Document, actorID uint, in PublishInput) error {
	labels, err := models.GetVersionLabelsByDocumentID(tx, doc.ID)
	if err != nil {
		return fmt.Errorf("error reading archived version labels: %w", err)
	}
	next := version.NextLabel(doc.Version, labels)
	now := time.Now()

	snapshot := snapshotOf(doc, actorID, now)
	if err := snapshot.Create(tx); err != nil {
		return fmt.Errorf("error archiving current version: %w", err)
	}

	updates := map[string]interface{}{
		"title":        in.Title,
		"description":  in.Description,
		"version":      next,
		"validated_at": in.ValidatedAt,
		"updated_at":   now,
	}
	if in.File != nil {
		updates["file_url"] = in.File.URL
		updates["file_object_id"] = in.File.ObjectID
	}

	res := tx.Model(&models.Document{}).
		Where("id = ? AND version = ?", doc.ID, doc.Version).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("error updating document: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}

	note := in.Note
	if note == "" {
		note = "no change note provided"
	}
	log := &models.ActivityLog{
		DocumentID: doc.ID,
		Action:     models.ActivityActionUpdateVersion,
		Description: fmt.Sprintf("updated version %s to %s: %s",
			doc.Version, next, note),
		ActorID: actorID,
	}
	if err := log.Create(tx); err != nil {
		return err
	}

	// Reflect the committed state on the caller's copy.
	doc.Title = in.Title
	doc.Description = in.Description
	doc.Version = next
	doc.ValidatedAt = in.ValidatedAt
	doc.UpdatedAt = now
	if in.File != nil {
		doc.FileURL = in.File.URL
		doc.FileObjectID = in.File.ObjectID
	}

	return nil
}

// RestoreVersion archives the document's current content, promotes the
// target archived version's content into the live row under its original
// label, and absorbs the target row. Absorbing the row keeps the at-rest
// invariant that the live label never equals an archived label.
func (e *Engine) RestoreVersion(ctx context.Context, documentID, versionID, actorID uint) (*models.Document, error) {
	var doc models.Document
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, documentID).Error; err != nil {
			return err
		}

		var target models.DocumentVersion
		if err := tx.
			Where("id = ? AND document_id = ?", versionID, documentID).
			First(&target).Error; err != nil {
			return err
		}

		now := time.Now()
		displaced := doc.Version

		snapshot := snapshotOf(&doc, actorID, now)
		if err := snapshot.Create(tx); err != nil {
			return fmt.Errorf("error archiving current version: %w", err)
		}

		res := tx.Model(&models.Document{}).
			Where("id = ? AND version = ?", doc.ID, doc.Version).
			Updates(map[string]interface{}{
				"title":          target.Title,
				"description":    target.Description,
				"file_url":       target.FileURL,
				"file_object_id": target.FileObjectID,
				"version":        target.Version,
				"validated_at":   target.ValidatedAt,
				"updated_at":     now,
			})
		if res.Error != nil {
			return fmt.Errorf("error updating document: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		if err := tx.Delete(&models.DocumentVersion{}, target.ID).Error; err != nil {
			return fmt.Errorf("error absorbing restored version: %w", err)
		}

		log := &models.ActivityLog{
			DocumentID: doc.ID,
			Action:     models.ActivityActionRestore,
			Description: fmt.Sprintf("restored version %s, displacing version %s",
				target.Version, displaced),
			ActorID: actorID,
		}
		if err := log.Create(tx); err != nil {
			return err
		}

		doc.Title = target.Title
		doc.Description = target.Description
		doc.FileURL = target.FileURL
		doc.FileObjectID = target.FileObjectID
		doc.Version = target.Version
		doc.ValidatedAt = target.ValidatedAt
		doc.UpdatedAt = now

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("restored version",
		"document_id", doc.ID,
		"version", doc.Version,
		"actor_id", actorID,
	)
	return &doc, nil
}

// DeleteArchivedVersion removes exactly one archived version row. The live
// document is structurally out of reach here: it is not a document_versions
// row. The removed snapshot is returned so callers can log the deletion.
func (e *Engine) DeleteArchivedVersion(ctx context.Context, versionID uint) (*models.DocumentVersion, error) {
	var target models.DocumentVersion
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&target, versionID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DocumentVersion{}, target.ID).Error
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("deleted archived version",
		"document_id", target.DocumentID,
		"version", target.Version,
	)
	return &target, nil
}

// DeleteDocument removes the document, its archived versions, and its
// activity trail in one transaction, then best-effort deletes the hosted
// files. File cleanup is a compensating action outside the consistency
// boundary: its failure is logged, never surfaced, and never rolls back the
// database deletion.
func (e *Engine) DeleteDocument(ctx context.Context, documentID uint) error {
	var objectIDs []string

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Document
		if err := tx.First(&doc, documentID).Error; err != nil {
			return err
		}
		if doc.FileObjectID != "" {
			objectIDs = append(objectIDs, doc.FileObjectID)
		}

		versions, err := models.GetVersionsByDocumentID(tx, documentID)
		if err != nil {
			return err
		}
		for _, v := range versions {
			if v.FileObjectID != "" {
				objectIDs = append(objectIDs, v.FileObjectID)
			}
		}

		if err := tx.Where("document_id = ?", documentID).
			Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", documentID).
			Delete(&models.DocumentVersion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Document{}, documentID).Error
	})
	if err != nil {
		return err
	}

	if e.storage != nil {
		var result *multierror.Error
		for _, id := range objectIDs {
			if err := e.storage.Delete(ctx, id); err != nil &&
				!errors.Is(err, storage.ErrObjectNotFound) {
				result = multierror.Append(result, err)
			}
		}
		if result.ErrorOrNil() != nil {
			e.logger.Warn("failed to delete hosted files after document deletion",
				"document_id", documentID,
				"error", result,
			)
		}
	}

	e.logger.Info("deleted document", "document_id", documentID)
	return nil
}

// snapshotOf freezes the document's current content into an archive row.
func snapshotOf(doc *models.Document, actorID uint, now time.Time) *models.DocumentVersion {
	return &models.DocumentVersion{
		DocumentID:   doc.ID,
		Version:      doc.Version,
		Title:        doc.Title,
		Description:  doc.Description,
		FileURL:      doc.FileURL,
		FileObjectID: doc.FileObjectID,
		ValidatedAt:  doc.ValidatedAt,
		ArchivedAt:   now,
		ArchivedByID: actorID,
	}
}
