package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	Name           string          `json:"name" validate:"required"`
	Description    *string         `json:"description"`
	Brand          *string         `json:"brand"`
	Sku            *string         `json:"sku"`
	Value          decimal.Decimal `json:"value" validate:"min=0"`
	InsuranceValue decimal.Decimal `json:"insurance_value" validate:"min=0"`
	Length         decimal.Decimal `json:"length" validate:"omitempty,gt=0"`
	Width          decimal.Decimal `json:"width" validate:"omitempty,gt=0"`
	Height         decimal.Decimal `json:"height" validate:"omitempty,gt=0"`
	Weight         decimal.Decimal `json:"weight" validate:"min=0"`
	Quantity       int             `json:"quantity" validate:"min=0"`
	Location       *string         `json:"location"`
	Origin         *string         `json:"origin"`
	HsCode         *string         `json:"hs_code"`
	PurchaseDate   *time.Time      `json:"purchase_date"`
	CategoryIDs    []string        `json:"category_ids"`
	FamilyIDs      []string        `json:"family_ids"`
	SubFamilyIDs   []string        `json:"subfamily_ids"`
}

// UpdateItemRequest uses pointers so absent fields are left untouched.
type UpdateItemRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Brand          *string          `json:"brand"`
	Sku            *string          `json:"sku"`
	Value          *decimal.Decimal `json:"value"`
	InsuranceValue *decimal.Decimal `json:"insurance_value"`
	Length         *decimal.Decimal `json:"length"`
	Width          *decimal.Decimal `json:"width"`
	Height         *decimal.Decimal `json:"height"`
	Weight         *decimal.Decimal `json:"weight"`
	Quantity       *int             `json:"quantity"`
	Location       *string          `json:"location"`
	Origin         *string          `json:"origin"`
	HsCode         *string          `json:"hs_code"`
	PurchaseDate   *time.Time       `json:"purchase_date"`
	CategoryIDs    []string         `json:"category_ids"`
	FamilyIDs      []string         `json:"family_ids"`
	SubFamilyIDs   []string         `json:"subfamily_ids"`
}

type ItemFilter struct {
	Q     string `form:"q"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type BulkDeleteItemsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type ItemResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description,omitempty"`
	Brand          *string         `json:"brand,omitempty"`
	Sku            *string         `json:"sku,omitempty"`
	Value          decimal.Decimal `json:"value"`
	InsuranceValue decimal.Decimal `json:"insurance_value"`
	Length         decimal.Decimal `json:"length"`
	Width          decimal.Decimal `json:"width"`
	Height         decimal.Decimal `json:"height"`
	Weight         decimal.Decimal `json:"weight"`
	Volume         decimal.Decimal `json:"volume"`
	Quantity       int             `json:"quantity"`
	Location       *string         `json:"location,omitempty"`
	Origin         *string         `json:"origin,omitempty"`
	HsCode         *string         `json:"hs_code,omitempty"`
	PurchaseDate   *time.Time      `json:"purchase_date,omitempty"`
	Categories     []TaxonomyNode  `json:"categories,omitempty"`
	Families       []TaxonomyNode  `json:"families,omitempty"`
	SubFamilies    []TaxonomyNode  `json:"subfamilies,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

type ItemListResponse struct {
	Data  []ItemResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
