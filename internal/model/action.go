package model

import (
	"time"

	"github.com/google/uuid"
)

// Action types.
const (
	ActionCreate     = "CREATE"
	ActionUpdate     = "UPDATE"
	ActionDelete     = "DELETE"
	ActionBulkDelete = "BULK_DELETE"
)

// Action is an immutable audit record appended after each successful mutating
// operation. The system never updates or deletes actions.
type Action struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Details   string    `gorm:"not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
}
