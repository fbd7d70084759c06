package repository

import (
	"context"

	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxonomyRepository covers the three flat reference lists
// (Category / Family / SubFamily). The CountItemRefs* methods let the service
// block deletion of nodes still referenced by items.
type TaxonomyRepository interface {
	CreateCategory(ctx context.Context, c *model.Category) error
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*model.Category, error)
	FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountItemRefsCategory(ctx context.Context, id uuid.UUID) (int64, error)

	CreateFamily(ctx context.Context, f *model.Family) error
	FindFamilyByID(ctx context.Context, id uuid.UUID) (*model.Family, error)
	FindFamiliesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Family, error)
	ListFamilies(ctx context.Context) ([]model.Family, error)
	UpdateFamily(ctx context.Context, f *model.Family) error
	DeleteFamily(ctx context.Context, id uuid.UUID) error
	CountItemRefsFamily(ctx context.Context, id uuid.UUID) (int64, error)

	CreateSubFamily(ctx context.Context, s *model.SubFamily) error
	FindSubFamilyByID(ctx context.Context, id uuid.UUID) (*model.SubFamily, error)
	FindSubFamiliesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.SubFamily, error)
	ListSubFamilies(ctx context.Context) ([]model.SubFamily, error)
	UpdateSubFamily(ctx context.Context, s *model.SubFamily) error
	DeleteSubFamily(ctx context.Context, id uuid.UUID) error
	CountItemRefsSubFamily(ctx context.Context, id uuid.UUID) (int64, error)
}

type taxonomyRepo struct{ db *gorm.DB }

func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository { return &taxonomyRepo{db: db} }

// ── Categories ──────────────────────────────────────────────────────────────

func (r *taxonomyRepo) CreateCategory(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *taxonomyRepo) FindCategoryByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *taxonomyRepo) FindCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *taxonomyRepo) FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cats).Error
	return cats, err
}

func (r *taxonomyRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&cats).Error
	return cats, err
}

func (r *taxonomyRepo) UpdateCategory(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *taxonomyRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id).Error
}

func (r *taxonomyRepo) CountItemRefsCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("item_categories").
		Where("category_id = ?", id).Count(&n).Error
	return n, err
}

// ── Families ────────────────────────────────────────────────────────────────

func (r *taxonomyRepo) CreateFamily(ctx context.Context, f *model.Family) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *taxonomyRepo) FindFamilyByID(ctx context.Context, id uuid.UUID) (*model.Family, error) {
	var f model.Family
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	return &f, err
}

func (r *taxonomyRepo) FindFamiliesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Family, error) {
	var fams []model.Family
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&fams).Error
	return fams, err
}

func (r *taxonomyRepo) ListFamilies(ctx context.Context) ([]model.Family, error) {
	var fams []model.Family
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&fams).Error
	return fams, err
}

func (r *taxonomyRepo) UpdateFamily(ctx context.Context, f *model.Family) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *taxonomyRepo) DeleteFamily(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Family{}, "id = ?", id).Error
}

func (r *taxonomyRepo) CountItemRefsFamily(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("item_families").
		Where("family_id = ?", id).Count(&n).Error
	return n, err
}

// ── SubFamilies ─────────────────────────────────────────────────────────────

func (r *taxonomyRepo) CreateSubFamily(ctx context.Context, s *model.SubFamily) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *taxonomyRepo) FindSubFamilyByID(ctx context.Context, id uuid.UUID) (*model.SubFamily, error) {
	var s model.SubFamily
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *taxonomyRepo) FindSubFamiliesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.SubFamily, error) {
	var subs []model.SubFamily
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&subs).Error
	return subs, err
}

func (r *taxonomyRepo) ListSubFamilies(ctx context.Context) ([]model.SubFamily, error) {
	var subs []model.SubFamily
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error
	return subs, err
}

func (r *taxonomyRepo) UpdateSubFamily(ctx context.Context, s *model.SubFamily) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *taxonomyRepo) DeleteSubFamily(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SubFamily{}, "id = ?", id).Error
}

func (r *taxonomyRepo) CountItemRefsSubFamily(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("item_subfamilies").
		Where("sub_family_id = ?", id).Count(&n).Error
	return n, err
}
