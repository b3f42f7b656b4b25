package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// DocumentType categorizes documents, e.g. "PPK" or "Clinical Pathway".
type DocumentType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Name is the unique type name.
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name.
func (DocumentType) TableName() string {
	return "document_types"
}

// Create creates the document type.
func (t *DocumentType) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return db.Create(&t).Error
}

// Get retrieves a document type by ID.
func (t *DocumentType) Get(db *gorm.DB, id uint) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}
	return db.First(&t, id).Error
}

// ListDocumentTypes retrieves all document types ordered by name.
func ListDocumentTypes(db *gorm.DB) ([]DocumentType, error) {
	var types []DocumentType
	err := db.Order("name ASC").Find(&types).Error
	return types, err
}
