package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentVersion is a frozen snapshot of a Document at the moment it was
// superseded. Rows are immutable once created; they are only ever removed,
// either individually or when their document is deleted.
type DocumentVersion struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// DocumentID references the live document this snapshot belongs to.
	DocumentID uint `gorm:"not null;index:idx_document_versions_document" json:"documentId"`

	// Version is the label this content carried while it was live.
	Version string `gorm:"type:varchar(20);not null" json:"version"`

	Title        string     `gorm:"type:varchar(500);not null" json:"title"`
	Description  string     `json:"description,omitempty"`
	FileURL      string     `gorm:"type:varchar(1000);not null" json:"fileUrl"`
	FileObjectID string     `gorm:"type:varchar(500)" json:"fileObjectId,omitempty"`
	ValidatedAt  *time.Time `json:"validatedAt,omitempty"`

	// ArchivedAt is when this content was displaced from the live row.
	ArchivedAt time.Time `gorm:"not null;index:idx_document_versions_archived_at" json:"archivedAt"`

	// ArchivedByID references the user whose action displaced it.
	ArchivedByID uint `json:"archivedById"`
	ArchivedBy   User `json:"archivedBy,omitempty"`
}

// TableName specifies the table name.
func (DocumentVersion) TableName() string {
	return "document_versions"
}

// Create creates the archived version.
func (v *DocumentVersion) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(v,
		validation.Field(&v.DocumentID, validation.Required),
		validation.Field(&v.Version, validation.Required),
		validation.Field(&v.Title, validation.Required),
		validation.Field(&v.FileURL, validation.Required),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if v.ArchivedAt.IsZero() {
		v.ArchivedAt = time.Now()
	}

	return db.
		Omit(clause.Associations).
		Create(&v).
		Error
}

// Get retrieves an archived version by ID.
func (v *DocumentVersion) Get(db *gorm.DB, id uint) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}

	return db.First(&v, id).Error
}

// GetVersionsByDocumentID retrieves all archived versions of a document,
// most recently archived first.
func GetVersionsByDocumentID(db *gorm.DB, documentID uint) ([]DocumentVersion, error) {
	var versions []DocumentVersion
	err := db.Where("document_id = ?", documentID).
		Order("archived_at DESC").
		Find(&versions).Error
	return versions, err
}

// GetVersionLabelsByDocumentID retrieves only the labels of all archived
// versions of a document, for version allocation.
func GetVersionLabelsByDocumentID(db *gorm.DB, documentID uint) ([]string, error) {
	var labels []string
	err := db.Model(&DocumentVersion{}).
		Where("document_id = ?", documentID).
		Pluck("version", &labels).Error
	return labels, err
}
