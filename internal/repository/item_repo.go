package repository

import (
	"context"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRepository defines the data access contract for items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type ItemRepository interface {
	Create(ctx context.Context, i *model.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	// FindByIDsTx resolves ids inside an optional transaction; ids with no
	// matching row are simply absent from the result.
	FindByIDsTx(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]model.Item, error)
	List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error)
	Search(ctx context.Context, term string, limit int) ([]model.Item, error)
	Update(ctx context.Context, i *model.Item) error
	ReplaceTaxonomy(ctx context.Context, i *model.Item, cats []model.Category, fams []model.Family, subs []model.SubFamily) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type itemRepo struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) ItemRepository { return &itemRepo{db: db} }

func (r *itemRepo) dbOr(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *itemRepo) Create(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *itemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var i model.Item
	err := r.db.WithContext(ctx).
		Preload("Categories").Preload("Families").Preload("SubFamilies").
		First(&i, "id = ?", id).Error
	return &i, err
}

func (r *itemRepo) FindByIDsTx(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]model.Item, error) {
	var items []model.Item
	err := r.dbOr(ctx, tx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

// List applies the broad filter used by the item list endpoint: the term
// matches name, sku, brand OR description. An empty term means no filter.
func (r *itemRepo) List(ctx context.Context, filter dto.ItemFilter) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Item{})
	if filter.Q != "" {
		pattern := "%" + filter.Q + "%"
		q = q.Where("name ILIKE ? OR sku ILIKE ? OR brand ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categories").Preload("Families").Preload("SubFamilies").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

// Search is the quick-search predicate: name, sku OR brand only — narrower
// than List on purpose.
func (r *itemRepo) Search(ctx context.Context, term string, limit int) ([]model.Item, error) {
	var items []model.Item
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR sku ILIKE ? OR brand ILIKE ?", pattern, pattern, pattern).
		Limit(limit).Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, i *model.Item) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(i).Error
}

func (r *itemRepo) ReplaceTaxonomy(ctx context.Context, i *model.Item, cats []model.Category, fams []model.Family, subs []model.SubFamily) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(i).Association("Categories").Replace(&cats); err != nil {
		return err
	}
	if err := db.Model(i).Association("Families").Replace(&fams); err != nil {
		return err
	}
	return db.Model(i).Association("SubFamilies").Replace(&subs)
}

// Delete removes the item and its membership edges. Containers survive; their
// totals are reconciled by the caller.
func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Select(clause.Associations).
		Delete(&model.Item{ID: id}).Error
}

func (r *itemRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			res := tx.Select(clause.Associations).Delete(&model.Item{ID: id})
			if res.Error != nil {
				return res.Error
			}
			deleted += res.RowsAffected
		}
		return nil
	})
	return deleted, err
}

func (r *itemRepo) DB() *gorm.DB { return r.db }
