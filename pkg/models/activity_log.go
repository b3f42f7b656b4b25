package models

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityLog action constants.
const (
	ActivityActionCreate        = "CREATE"
	ActivityActionUpdate        = "UPDATE"
	ActivityActionUpdateVersion = "UPDATE_VERSION"
	ActivityActionRestore       = "RESTORE"
	ActivityActionDeleteVersion = "DELETE_VERSION"
)

// ActivityLog is an append-only record of an action performed against a
// document. Rows are never mutated or deleted by normal flows; they go away
// only when the whole document is deleted.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	// DocumentID references the document the action was performed on.
	DocumentID uint `gorm:"not null;index:idx_activity_logs_document" json:"documentId"`

	// Action is one of the ActivityAction constants.
	Action string `gorm:"type:varchar(30);not null" json:"action"`

	// Description is a free-text account of what happened.
	Description string `json:"description,omitempty"`

	// ActorID references the user who performed the action.
	ActorID uint `json:"actorId"`
	Actor   User `json:"actor,omitempty"`
}

// TableName specifies the table name.
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Create appends the log entry.
func (l *ActivityLog) Create(db *gorm.DB) error {
	if err := validation.ValidateStruct(l,
		validation.Field(&l.DocumentID, validation.Required),
		validation.Field(&l.Action, validation.Required, validation.In(
			ActivityActionCreate,
			ActivityActionUpdate,
			ActivityActionUpdateVersion,
			ActivityActionRestore,
			ActivityActionDeleteVersion,
		)),
	); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	return db.
		Omit(clause.Associations).
		Create(&l).
		Error
}

// GetActivityLogsByDocumentID retrieves the activity trail for a document,
// newest first.
func GetActivityLogsByDocumentID(db *gorm.DB, documentID uint) ([]ActivityLog, error) {
	var logs []ActivityLog
	err := db.Where("document_id = ?", documentID).
		Preload("Actor").
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}
