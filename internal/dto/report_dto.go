package dto

import "github.com/shopspring/decimal"

// GrowthPoint is one bucket of the cumulative inventory growth series.
type GrowthPoint struct {
	Date            string `json:"date"` // YYYY-MM-DD
	CumulativeCount int64  `json:"cumulative_count"`
}

type CategoryCount struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ItemCount    int64  `json:"item_count"`
}

type CategoryValue struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

type ValueReport struct {
	TotalValue decimal.Decimal `json:"total_value"`
	ByCategory []CategoryValue `json:"by_category"`
}

type OperationReport struct {
	Operation    OperationResponse `json:"operation"`
	DerivedValue decimal.Decimal   `json:"derived_value"`
}

// DailyCount is one creation-date bucket for the dashboard sparkline.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type CategoryItemValues struct {
	CategoryID   string            `json:"category_id"`
	CategoryName string            `json:"category_name"`
	ItemValues   []decimal.Decimal `json:"item_values"`
}

type Dashboard struct {
	TotalValue     decimal.Decimal      `json:"total_value"`
	ItemCount      int64                `json:"item_count"`
	PackageCount   int64                `json:"package_count"`
	OperationCount int64                `json:"operation_count"`
	RecentActions  []ActionResponse     `json:"recent_actions"`
	Sparkline      []DailyCount         `json:"sparkline"`
	Categories     []CategoryItemValues `json:"categories"`
	RecentItems    []ItemResponse       `json:"recent_items"`
}
