package repository

import (
	"context"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PackageRepository owns package rows and the package_items edge set.
//
// The *Tx methods accept an optional transaction handle so the membership
// service can group edge mutation + total recomputation + total persistence
// into one atomic unit. A nil tx falls back to the repository's own handle.
type PackageRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Package) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Package, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Package, error)
	List(ctx context.Context, filter dto.PackageFilter) ([]model.Package, int64, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Package) error
	// Delete removes the package and its membership edges only; member items
	// are never touched.
	Delete(ctx context.Context, id uuid.UUID) error

	// Edge-set primitives. Append/Remove are incremental (connect/disconnect);
	// Replace swaps the full member set. All are idempotent on the edge set.
	AppendItemsTx(ctx context.Context, tx *gorm.DB, p *model.Package, items []model.Item) error
	RemoveItemsTx(ctx context.Context, tx *gorm.DB, p *model.Package, items []model.Item) error
	ReplaceItemsTx(ctx context.Context, tx *gorm.DB, p *model.Package, items []model.Item) error

	// SumItemValuesTx reads the post-mutation edge set and sums member values
	// (missing values count as zero).
	SumItemValuesTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (decimal.Decimal, error)
	UpdateTotalTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error

	// FindIDsByItem lists every package containing the given item — used by
	// the reconciliation worker after an item's value changes.
	FindIDsByItem(ctx context.Context, itemID uuid.UUID) ([]uuid.UUID, error)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	DB() *gorm.DB
}

type packageRepo struct{ db *gorm.DB }

func NewPackageRepository(db *gorm.DB) PackageRepository { return &packageRepo{db: db} }

func (r *packageRepo) dbOr(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *packageRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Package) error {
	return r.dbOr(ctx, tx).Omit("Items").Create(p).Error
}

func (r *packageRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	return r.FindByIDTx(ctx, nil, id)
}

func (r *packageRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Package, error) {
	var p model.Package
	err := r.dbOr(ctx, tx).Preload("Items").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *packageRepo) List(ctx context.Context, filter dto.PackageFilter) ([]model.Package, int64, error) {
	var pkgs []model.Package
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Package{})
	if filter.Q != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Q+"%")
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&pkgs).Error
	return pkgs, total, err
}

func (r *packageRepo) UpdateTx(ctx context.Context, tx *gorm.DB, p *model.Package) error {
	return r.dbOr(ctx, tx).Omit(clause.Associations).Save(p).Error
}

func (r *packageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Select("Items").
		Delete(&model.Package{ID: id}).Error
}

func (r *packageRepo) AppendItemsTx(ctx context.Context, tx *gorm.DB, p *model.Package, items []model.Item) error {
	return r.dbOr(ctx, tx).Model(p).Association("Items").Append(&items)
}

func (r *packageRepo) RemoveItemsTx(ctx context.Context, tx *gorm.DB, p *model.Package, items []model.Item) error {
	return r.dbOr(ctx, tx).Model(p).Association("Items").Delete(&items)
}

func (r *packageRepo) ReplaceItemsTx(ctx context.Context, tx *gorm.DB, p *model.Package, items []model.Item) error {
	return r.dbOr(ctx, tx).Model(p).Association("Items").Replace(&items)
}

func (r *packageRepo) SumItemValuesTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.dbOr(ctx, tx).Model(&model.Item{}).
		Select("COALESCE(SUM(items.value), 0)").
		Joins("JOIN package_items pi ON pi.item_id = items.id").
		Where("pi.package_id = ?", id).
		Scan(&total).Error
	return total, err
}

func (r *packageRepo) UpdateTotalTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return r.dbOr(ctx, tx).Model(&model.Package{}).
		Where("id = ?", id).
		Update("total_value", total).Error
}

func (r *packageRepo) FindIDsByItem(ctx context.Context, itemID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Package{}).
		Joins("JOIN package_items pi ON pi.package_id = packages.id").
		Where("pi.item_id = ?", itemID).
		Pluck("packages.id", &ids).Error
	return ids, err
}

func (r *packageRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Package{}).Pluck("id", &ids).Error
	return ids, err
}

func (r *packageRepo) DB() *gorm.DB { return r.db }
