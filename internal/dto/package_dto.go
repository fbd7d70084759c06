package dto

import "github.com/shopspring/decimal"

type CreatePackageRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	ItemIDs     []string `json:"item_ids"`
}

type UpdatePackageRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	// ItemIDs, when present, replaces the full member set.
	ItemIDs []string `json:"item_ids"`
}

// MemberIDsRequest carries the ids for incremental add/remove endpoints.
// The service rejects an empty list; unknown ids are silently skipped
// (connect/disconnect semantics).
type MemberIDsRequest struct {
	ItemIDs []string `json:"item_ids"`
}

type PackageFilter struct {
	Q     string `form:"q"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

type PackageResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	Location    *string         `json:"location,omitempty"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Items       []ItemResponse  `json:"items,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type PackageListResponse struct {
	Data  []PackageResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
