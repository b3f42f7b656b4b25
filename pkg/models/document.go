package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is the live record of a clinical practice guideline. Exactly one
// row exists per logical document; it always holds whatever is currently
// published. Superseded content moves into DocumentVersion rows, never out
// of this table's identity — the primary key is stable across all
// versioning operations.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Title is the display title of the guideline document.
	Title string `gorm:"type:varchar(500);not null" json:"title"`

	// Description is an optional free-text summary.
	Description string `json:"description,omitempty"`

	// StaffGroupID references the owning medical staff group (KSM).
	StaffGroupID uint       `gorm:"not null;index:idx_documents_staff_group" json:"staffGroupId"`
	StaffGroup   StaffGroup `json:"staffGroup,omitempty"`

	// DocumentTypeID references the document type.
	DocumentTypeID uint         `gorm:"not null;index:idx_documents_type" json:"documentTypeId"`
	DocumentType   DocumentType `json:"documentType,omitempty"`

	// FileURL is the public URL of the hosted PDF.
	FileURL string `gorm:"type:varchar(1000);not null" json:"fileUrl"`

	// FileObjectID is the storage provider's identifier for the hosted
	// file, needed to delete it later.
	FileObjectID string `gorm:"type:varchar(500)" json:"fileObjectId,omitempty"`

	// Version is the current version label, a decimal string with no
	// leading zeros. Compare numerically, never lexically.
	Version string `gorm:"type:varchar(20);not null;default:'1'" json:"version"`

	// Active marks whether the document is shown to staff.
	Active bool `gorm:"not null;default:true" json:"active"`

	// ValidatedAt is the clinical validation date, if validated.
	ValidatedAt *time.Time `json:"validatedAt,omitempty"`

	// UploadedByID references the user who created the document.
	UploadedByID uint `gorm:"index:idx_documents_uploaded_by" json:"uploadedById"`
	UploadedBy   User `json:"uploadedBy,omitempty"`
}

// TableName specifies the table name.
func (Document) TableName() string {
	return "documents"
}

// Create creates the document.
func (d *Document) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(d,
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.StaffGroupID, validation.Required),
		validation.Field(&d.DocumentTypeID, validation.Required),
		validation.Field(&d.FileURL, validation.Required),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if d.Version == "" {
		d.Version = "1"
	}

	return db.
		Omit(clause.Associations).
		Create(&d).
		Error
}

// Get retrieves a document by ID, preloading its associations.
func (d *Document) Get(db *gorm.DB, id uint) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}

	return db.
		Preload("StaffGroup").
		Preload("DocumentType").
		Preload("UploadedBy").
		First(&d, id).
		Error
}

// DocumentFilter narrows document list queries.
type DocumentFilter struct {
	StaffGroupID   uint
	DocumentTypeID uint
	ActiveOnly     bool
}

// ListDocuments retrieves documents matching the filter, newest first.
func ListDocuments(db *gorm.DB, f DocumentFilter) ([]Document, error) {
	q := db.
		Preload("StaffGroup").
		Preload("DocumentType").
		Order("updated_at DESC")

	if f.StaffGroupID != 0 {
		q = q.Where("staff_group_id = ?", f.StaffGroupID)
	}
	if f.DocumentTypeID != 0 {
		q = q.Where("document_type_id = ?", f.DocumentTypeID)
	}
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	var docs []Document
	err := q.Find(&docs).Error
	return docs, err
}
