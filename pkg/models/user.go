package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// User role constants.
const (
	UserRoleAdmin = "admin"
	UserRoleStaff = "staff"
)

// User is a portal account. Authentication itself is a consumed
// collaborator; this table only supplies attribution and role data.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Email is the unique account email.
	Email string `gorm:"type:varchar(320);uniqueIndex;not null" json:"email"`

	// Name is the display name.
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	// Role is one of the UserRole constants.
	Role string `gorm:"type:varchar(20);not null;default:'staff'" json:"role"`
}

// TableName specifies the table name.
func (User) TableName() string {
	return "users"
}

// Create creates the user.
func (u *User) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(u,
		validation.Field(&u.Email, validation.Required),
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Role, validation.Required, validation.In(
			UserRoleAdmin, UserRoleStaff)),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	return db.Create(&u).Error
}

// Get retrieves a user by ID.
func (u *User) Get(db *gorm.DB, id uint) error {
	if err := validation.Validate(id, validation.Required); err != nil {
		return err
	}
	return db.First(&u, id).Error
}

// GetByEmail retrieves a user by email.
func (u *User) GetByEmail(db *gorm.DB, email string) error {
	if err := validation.Validate(email, validation.Required); err != nil {
		return err
	}
	return db.Where("email = ?", email).First(&u).Error
}
