package repository

import (
	"context"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OperationRepository owns operation rows plus the operation_items and
// operation_packages edge sets. Operations store no derived total, so the
// edge primitives need no transactional recompute hook.
type OperationRepository interface {
	Create(ctx context.Context, o *model.Operation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Operation, error)
	List(ctx context.Context, filter dto.OperationFilter) ([]model.Operation, int64, error)
	Update(ctx context.Context, o *model.Operation) error
	Delete(ctx context.Context, id uuid.UUID) error

	AppendItems(ctx context.Context, o *model.Operation, items []model.Item) error
	RemoveItems(ctx context.Context, o *model.Operation, items []model.Item) error
	AppendPackages(ctx context.Context, o *model.Operation, pkgs []model.Package) error
	RemovePackages(ctx context.Context, o *model.Operation, pkgs []model.Package) error

	FindPackagesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Package, error)

	DB() *gorm.DB
}

type operationRepo struct{ db *gorm.DB }

func NewOperationRepository(db *gorm.DB) OperationRepository { return &operationRepo{db: db} }

func (r *operationRepo) Create(ctx context.Context, o *model.Operation) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *operationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Operation, error) {
	var o model.Operation
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Packages").Preload("Packages.Items").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *operationRepo) List(ctx context.Context, filter dto.OperationFilter) ([]model.Operation, int64, error) {
	var ops []model.Operation
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Operation{})
	if filter.Q != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Q+"%")
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("year DESC, name ASC").Limit(filter.Limit).Offset(offset).Find(&ops).Error
	return ops, total, err
}

func (r *operationRepo) Update(ctx context.Context, o *model.Operation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error
}

func (r *operationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Select("Items", "Packages").
		Delete(&model.Operation{ID: id}).Error
}

func (r *operationRepo) AppendItems(ctx context.Context, o *model.Operation, items []model.Item) error {
	return r.db.WithContext(ctx).Model(o).Association("Items").Append(&items)
}

func (r *operationRepo) RemoveItems(ctx context.Context, o *model.Operation, items []model.Item) error {
	return r.db.WithContext(ctx).Model(o).Association("Items").Delete(&items)
}

func (r *operationRepo) AppendPackages(ctx context.Context, o *model.Operation, pkgs []model.Package) error {
	return r.db.WithContext(ctx).Model(o).Association("Packages").Append(&pkgs)
}

func (r *operationRepo) RemovePackages(ctx context.Context, o *model.Operation, pkgs []model.Package) error {
	return r.db.WithContext(ctx).Model(o).Association("Packages").Delete(&pkgs)
}

func (r *operationRepo) FindPackagesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Package, error) {
	var pkgs []model.Package
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&pkgs).Error
	return pkgs, err
}

func (r *operationRepo) DB() *gorm.DB { return r.db }
