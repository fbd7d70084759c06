package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is the top level of the classification hierarchy.
// Items reference categories directly (many-to-many); reports count and sum
// through that direct association only.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []Item `gorm:"many2many:item_categories"`
}

// Family optionally nests under a Category.
type Family struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// SubFamily optionally nests under a Family.
type SubFamily struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description *string
	FamilyID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Family *Family `gorm:"foreignKey:FamilyID"`
}

func (SubFamily) TableName() string { return "subfamilies" }
