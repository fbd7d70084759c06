package repository

import (
	"context"

	"github.com/SkyVence/project-avims-sub001/internal/model"

	"gorm.io/gorm"
)

// ActionRepository is append-only by construction: there is no update or
// delete method, and none may be added.
type ActionRepository interface {
	Create(ctx context.Context, a *model.Action) error
	ListRecent(ctx context.Context, limit int) ([]model.Action, error)
	Count(ctx context.Context) (int64, error)
}

type actionRepo struct{ db *gorm.DB }

func NewActionRepository(db *gorm.DB) ActionRepository { return &actionRepo{db: db} }

func (r *actionRepo) Create(ctx context.Context, a *model.Action) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *actionRepo) ListRecent(ctx context.Context, limit int) ([]model.Action, error) {
	var actions []model.Action
	err := r.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").Limit(limit).Find(&actions).Error
	return actions, err
}

func (r *actionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Action{}).Count(&n).Error
	return n, err
}
