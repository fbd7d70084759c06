package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is the atomic inventory unit.
// Volume is derived: always Length × Width × Height, recomputed by the service
// layer on every create/update that touches a dimension. It is never accepted
// from client input.
type Item struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string    `gorm:"index;not null"`
	Description    *string
	Brand          *string
	Sku            *string         `gorm:"index"`
	Value          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	InsuranceValue decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Length         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Width          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Height         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Weight         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Volume         decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0"`
	Quantity       int             `gorm:"not null;default:0"`
	Location       *string
	Origin         *string
	HsCode         *string
	PurchaseDate   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Categories  []Category  `gorm:"many2many:item_categories"`
	Families    []Family    `gorm:"many2many:item_families"`
	SubFamilies []SubFamily `gorm:"many2many:item_subfamilies"`
}

// ComputeVolume returns Length × Width × Height with current dimensions.
func (i *Item) ComputeVolume() decimal.Decimal {
	return i.Length.Mul(i.Width).Mul(i.Height)
}
