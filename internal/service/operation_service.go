package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"
	"github.com/SkyVence/project-avims-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OperationService manages expeditions/events and their direct memberships.
// Operations hold items and packages side by side and store no derived total;
// the reporting layer composes one on demand.
type OperationService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateOperationRequest) (*dto.OperationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OperationResponse, error)
	List(ctx context.Context, filter dto.OperationFilter) (*dto.OperationListResponse, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.UpdateOperationRequest) (*dto.OperationResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	AddItems(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.OperationResponse, error)
	RemoveItems(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.OperationResponse, error)
	AddPackages(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.OperationMemberPackagesRequest) (*dto.OperationResponse, error)
	RemovePackages(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.OperationMemberPackagesRequest) (*dto.OperationResponse, error)
}

type operationService struct {
	repo     repository.OperationRepository
	itemRepo repository.ItemRepository
	audit    AuditService
}

func NewOperationService(
	repo repository.OperationRepository,
	itemRepo repository.ItemRepository,
	audit AuditService,
) OperationService {
	return &operationService{repo: repo, itemRepo: itemRepo, audit: audit}
}

func (s *operationService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateOperationRequest) (*dto.OperationResponse, error) {
	op := &model.Operation{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Year:        req.Year,
	}
	if err := s.repo.Create(ctx, op); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, model.ActionCreate, fmt.Sprintf("operation %q (%s)", op.Name, op.ID), userID)
	return operationToResponse(op), nil
}

func (s *operationService) Get(ctx context.Context, id uuid.UUID) (*dto.OperationResponse, error) {
	op, err := s.findOperation(ctx, id)
	if err != nil {
		return nil, err
	}
	return operationToResponse(op), nil
}

func (s *operationService) List(ctx context.Context, filter dto.OperationFilter) (*dto.OperationListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ops, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OperationResponse, 0, len(ops))
	for i := range ops {
		data = append(data, *operationToResponse(&ops[i]))
	}
	return &dto.OperationListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *operationService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.UpdateOperationRequest) (*dto.OperationResponse, error) {
	op, err := s.findOperation(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		op.Name = *req.Name
	}
	if req.Description != nil {
		op.Description = req.Description
	}
	if req.Location != nil {
		op.Location = req.Location
	}
	if req.Year != nil {
		op.Year = *req.Year
	}
	if err := s.repo.Update(ctx, op); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("operation %q (%s)", op.Name, op.ID), userID)
	return operationToResponse(op), nil
}

// Delete removes the operation and its membership edges only.
func (s *operationService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	op, err := s.findOperation(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, model.ActionDelete, fmt.Sprintf("operation %q (%s)", op.Name, id), userID)
	return nil
}

func (s *operationService) AddItems(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.OperationResponse, error) {
	return s.mutateItems(ctx, userID, id, req.ItemIDs, s.repo.AppendItems, "items added")
}

func (s *operationService) RemoveItems(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.OperationResponse, error) {
	return s.mutateItems(ctx, userID, id, req.ItemIDs, s.repo.RemoveItems, "items removed")
}

func (s *operationService) AddPackages(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.OperationMemberPackagesRequest) (*dto.OperationResponse, error) {
	return s.mutatePackages(ctx, userID, id, req.PackageIDs, s.repo.AppendPackages, "packages added")
}

func (s *operationService) RemovePackages(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.OperationMemberPackagesRequest) (*dto.OperationResponse, error) {
	return s.mutatePackages(ctx, userID, id, req.PackageIDs, s.repo.RemovePackages, "packages removed")
}

func (s *operationService) mutateItems(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
	rawIDs []string,
	mutate func(ctx context.Context, o *model.Operation, items []model.Item) error,
	detail string,
) (*dto.OperationResponse, error) {
	if len(rawIDs) == 0 {
		return nil, fmt.Errorf("item_ids must not be empty: %w", ErrInvalidArgument)
	}
	op, err := s.findOperation(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindByIDsTx(ctx, nil, parseIDs(rawIDs))
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := mutate(ctx, op, items); err != nil {
			return nil, err
		}
	}

	op, err = s.findOperation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("operation %q (%s): %s", op.Name, op.ID, detail), userID)
	return operationToResponse(op), nil
}

func (s *operationService) mutatePackages(
	ctx context.Context,
	userID uuid.UUID,
	id uuid.UUID,
	rawIDs []string,
	mutate func(ctx context.Context, o *model.Operation, pkgs []model.Package) error,
	detail string,
) (*dto.OperationResponse, error) {
	if len(rawIDs) == 0 {
		return nil, fmt.Errorf("package_ids must not be empty: %w", ErrInvalidArgument)
	}
	op, err := s.findOperation(ctx, id)
	if err != nil {
		return nil, err
	}

	pkgs, err := s.repo.FindPackagesByIDs(ctx, parseIDs(rawIDs))
	if err != nil {
		return nil, err
	}
	if len(pkgs) > 0 {
		if err := mutate(ctx, op, pkgs); err != nil {
			return nil, err
		}
	}

	op, err = s.findOperation(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("operation %q (%s): %s", op.Name, op.ID, detail), userID)
	return operationToResponse(op), nil
}

func (s *operationService) findOperation(ctx context.Context, id uuid.UUID) (*model.Operation, error) {
	op, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("operation %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return op, nil
}

func operationToResponse(o *model.Operation) *dto.OperationResponse {
	resp := &dto.OperationResponse{
		ID:          o.ID.String(),
		Name:        o.Name,
		Description: o.Description,
		Location:    o.Location,
		Year:        o.Year,
		CreatedAt:   o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	for i := range o.Items {
		resp.Items = append(resp.Items, *itemToResponse(&o.Items[i]))
	}
	for i := range o.Packages {
		resp.Packages = append(resp.Packages, *packageToResponse(&o.Packages[i]))
	}
	return resp
}
