package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Package groups Items at a location. Membership is shared: an Item may belong
// to several packages at once, and deleting a package removes only the edges.
//
// TotalValue is derived: the sum of Value over all currently attached Items
// (quantity is not a multiplier). Any membership change recomputes it inside
// the same transaction.
type Package struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Location    *string
	TotalValue  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []Item `gorm:"many2many:package_items"`
}
