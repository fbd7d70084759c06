package model

import (
	"time"

	"github.com/google/uuid"
)

// Operation is a named event (expedition) grouping Items and Packages for a
// time-boxed purpose. It stores no combined value; reports derive one on
// demand from direct item values plus attached package totals.
type Operation struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Location    *string
	Year        int `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items    []Item    `gorm:"many2many:operation_items"`
	Packages []Package `gorm:"many2many:operation_packages"`
}
