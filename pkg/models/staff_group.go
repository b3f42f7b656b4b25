package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// StaffGroup is a medical staff group (KSM) that owns documents.
type StaffGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Name is the unique group name, e.g. "Bedah" or "Anak".
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name.
func (StaffGroup) TableName() string {
	return "staff_groups"
}

// Create creates the staff group.
func (g *StaffGroup) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(g,
		validation.Field(&g.Name, validation.Required),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return db.Create(&g).Error
}

// Get retrieves a staff group by ID.
func (g *StaffGroup) Get(db *gorm.DB, id uint) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}
	return db.First(&g, id).Error
}

// ListStaffGroups retrieves all staff groups ordered by name.
func ListStaffGroups(db *gorm.DB) ([]StaffGroup, error) {
	var groups []StaffGroup
	err := db.Order("name ASC").Find(&groups).Error
	return groups, err
}
