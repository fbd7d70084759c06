package service

import (
	"context"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"
	"github.com/SkyVence/project-avims-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuditService appends immutable action records after successful mutations.
//
// Record is best-effort: when the audit insert fails after the primary
// mutation already committed, the failure is logged and swallowed — the
// mutation's result still reaches the caller.
type AuditService interface {
	Record(ctx context.Context, actionType, details string, userID uuid.UUID)
	List(ctx context.Context, limit int) ([]dto.ActionResponse, error)
}

type auditService struct {
	repo repository.ActionRepository
}

func NewAuditService(repo repository.ActionRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, actionType, details string, userID uuid.UUID) {
	a := &model.Action{
		Type:    actionType,
		Details: details,
		UserID:  userID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		log.Error().Err(err).
			Str("type", actionType).
			Str("user_id", userID.String()).
			Msg("audit record failed")
	}
}

func (s *auditService) List(ctx context.Context, limit int) ([]dto.ActionResponse, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	actions, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ActionResponse, 0, len(actions))
	for _, a := range actions {
		resp = append(resp, actionToResponse(&a))
	}
	return resp, nil
}

func actionToResponse(a *model.Action) dto.ActionResponse {
	userName := ""
	if a.User != nil {
		userName = a.User.Name
	}
	return dto.ActionResponse{
		ID:        a.ID.String(),
		Type:      a.Type,
		Details:   a.Details,
		UserID:    a.UserID.String(),
		UserName:  userName,
		CreatedAt: a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
