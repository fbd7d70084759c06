package repository

import (
	"context"
	"time"

	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateBucket is one day's worth of item creations.
type DateBucket struct {
	Day   time.Time
	Count int64
}

// CategoryAgg carries one category's aggregate (count or value sum).
type CategoryAgg struct {
	CategoryID uuid.UUID
	Name       string
	Count      int64
	Total      decimal.Decimal
}

// ReportRepository exposes the read-only aggregation primitives the reporting
// engine composes. Everything goes through the query layer's group-by/sum
// support; no report ever mutates state.
type ReportRepository interface {
	GrowthBuckets(ctx context.Context) ([]DateBucket, error)
	RecentBuckets(ctx context.Context, n int) ([]DateBucket, error)
	CategoryItemCounts(ctx context.Context) ([]CategoryAgg, error)
	CategoryValueSums(ctx context.Context) ([]CategoryAgg, error)
	TotalItemValue(ctx context.Context) (decimal.Decimal, error)
	Counts(ctx context.Context) (items, packages, operations int64, err error)
	RecentItems(ctx context.Context, limit int) ([]model.Item, error)
	CategoriesWithItems(ctx context.Context) ([]model.Category, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

// GrowthBuckets groups items by creation day, ascending. The cumulative sum is
// computed by the service so the query stays a plain group-by.
func (r *reportRepo) GrowthBuckets(ctx context.Context) ([]DateBucket, error) {
	var buckets []DateBucket
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&buckets).Error
	return buckets, err
}

// RecentBuckets returns the n most recent creation-day buckets, most recent
// first. Callers reverse for ascending display order.
func (r *reportRepo) RecentBuckets(ctx context.Context, n int) ([]DateBucket, error) {
	var buckets []DateBucket
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("day DESC").
		Limit(n).
		Scan(&buckets).Error
	return buckets, err
}

func (r *reportRepo) CategoryItemCounts(ctx context.Context) ([]CategoryAgg, error) {
	var aggs []CategoryAgg
	err := r.db.WithContext(ctx).Table("categories").
		Select("categories.id AS category_id, categories.name AS name, COUNT(ic.item_id) AS count").
		Joins("LEFT JOIN item_categories ic ON ic.category_id = categories.id").
		Group("categories.id, categories.name, categories.created_at").
		Order("categories.created_at ASC").
		Scan(&aggs).Error
	return aggs, err
}

// CategoryValueSums sums member item values per category. An item in several
// categories contributes its value to each of them — matching the
// many-to-many membership semantics.
func (r *reportRepo) CategoryValueSums(ctx context.Context) ([]CategoryAgg, error) {
	var aggs []CategoryAgg
	err := r.db.WithContext(ctx).Table("categories").
		Select("categories.id AS category_id, categories.name AS name, COALESCE(SUM(items.value), 0) AS total").
		Joins("LEFT JOIN item_categories ic ON ic.category_id = categories.id").
		Joins("LEFT JOIN items ON items.id = ic.item_id").
		Group("categories.id, categories.name, categories.created_at").
		Order("categories.created_at ASC").
		Scan(&aggs).Error
	return aggs, err
}

func (r *reportRepo) TotalItemValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Item{}).
		Select("COALESCE(SUM(value), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) Counts(ctx context.Context) (items, packages, operations int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&model.Item{}).Count(&items).Error; err != nil {
		return
	}
	if err = db.Model(&model.Package{}).Count(&packages).Error; err != nil {
		return
	}
	err = db.Model(&model.Operation{}).Count(&operations).Error
	return
}

func (r *reportRepo) RecentItems(ctx context.Context, limit int) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Preload("Categories").Preload("Families").Preload("SubFamilies").
		Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *reportRepo) CategoriesWithItems(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at ASC").Find(&cats).Error
	return cats, err
}
