package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"
	"github.com/SkyVence/project-avims-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PackageService is the membership manager for packages and the aggregate
// recomputation engine behind Package.TotalValue.
//
// Every membership mutation runs as one transaction: mutate the edge set,
// recompute the total from the post-mutation edges, persist the total. A
// failure anywhere rolls the whole unit back, so a package is never visible
// with edges that its stored total does not reflect. The item-add path
// recomputes like every other mutation; no path skips it.
type PackageService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreatePackageRequest) (*dto.PackageResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PackageResponse, error)
	List(ctx context.Context, filter dto.PackageFilter) (*dto.PackageListResponse, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.UpdatePackageRequest) (*dto.PackageResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error

	AddMembers(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error)
	RemoveMembers(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error)
	ReplaceMembers(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error)

	RecomputeTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

type packageService struct {
	repo     repository.PackageRepository
	itemRepo repository.ItemRepository
	audit    AuditService
}

func NewPackageService(
	repo repository.PackageRepository,
	itemRepo repository.ItemRepository,
	audit AuditService,
) PackageService {
	return &packageService{repo: repo, itemRepo: itemRepo, audit: audit}
}

func (s *packageService) Create(ctx context.Context, userID uuid.UUID, req dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	pkg := &model.Package{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		TotalValue:  decimal.Zero,
	}

	itemIDs := parseIDs(req.ItemIDs)
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(ctx, tx, pkg); err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			items, err := s.itemRepo.FindByIDsTx(ctx, tx, itemIDs)
			if err != nil {
				return err
			}
			if len(items) > 0 {
				if err := s.repo.AppendItemsTx(ctx, tx, pkg, items); err != nil {
					return err
				}
			}
		}
		total, err := s.repo.SumItemValuesTx(ctx, tx, pkg.ID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateTotalTx(ctx, tx, pkg.ID, total); err != nil {
			return err
		}
		pkg.TotalValue = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.ActionCreate, fmt.Sprintf("package %q (%s)", pkg.Name, pkg.ID), userID)
	return packageToResponse(pkg), nil
}

// Get recomputes the total on read. Stored totals can lag behind live item
// value edits; the detail view must not.
func (s *packageService) Get(ctx context.Context, id uuid.UUID) (*dto.PackageResponse, error) {
	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("package %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	total, err := s.repo.SumItemValuesTx(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if !total.Equal(pkg.TotalValue) {
		if err := s.repo.UpdateTotalTx(ctx, nil, id, total); err != nil {
			return nil, err
		}
		pkg.TotalValue = total
	}
	return packageToResponse(pkg), nil
}

func (s *packageService) List(ctx context.Context, filter dto.PackageFilter) (*dto.PackageListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	pkgs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PackageResponse, 0, len(pkgs))
	for i := range pkgs {
		data = append(data, *packageToResponse(&pkgs[i]))
	}
	return &dto.PackageListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *packageService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	var pkg *model.Package
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("package %s: %w", id, ErrNotFound)
			}
			return err
		}

		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = req.Description
		}
		if req.Location != nil {
			p.Location = req.Location
		}
		if err := s.repo.UpdateTx(ctx, tx, p); err != nil {
			return err
		}

		// A present ItemIDs list replaces the full member set (`set`
		// semantics, distinct from the incremental add/remove endpoints).
		if req.ItemIDs != nil {
			items, err := s.itemRepo.FindByIDsTx(ctx, tx, parseIDs(req.ItemIDs))
			if err != nil {
				return err
			}
			if err := s.repo.ReplaceItemsTx(ctx, tx, p, items); err != nil {
				return err
			}
		}

		total, err := s.repo.SumItemValuesTx(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateTotalTx(ctx, tx, p.ID, total); err != nil {
			return err
		}

		pkg, err = s.repo.FindByIDTx(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		pkg.TotalValue = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("package %q (%s)", pkg.Name, pkg.ID), userID)
	return packageToResponse(pkg), nil
}

// Delete removes the package and its membership edges. Member items survive
// untouched — membership is shared, not owned.
func (s *packageService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("package %s: %w", id, ErrNotFound)
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, model.ActionDelete, fmt.Sprintf("package %q (%s)", pkg.Name, id), userID)
	return nil
}

func (s *packageService) AddMembers(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error) {
	pkg, err := s.mutateMembers(ctx, id, req.ItemIDs, s.repo.AppendItemsTx)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("package %q (%s): items added", pkg.Name, pkg.ID), userID)
	return packageToResponse(pkg), nil
}

func (s *packageService) RemoveMembers(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error) {
	pkg, err := s.mutateMembers(ctx, id, req.ItemIDs, s.repo.RemoveItemsTx)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("package %q (%s): items removed", pkg.Name, pkg.ID), userID)
	return packageToResponse(pkg), nil
}

func (s *packageService) ReplaceMembers(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error) {
	pkg, err := s.mutateMembers(ctx, id, req.ItemIDs, s.repo.ReplaceItemsTx)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("package %q (%s): items replaced", pkg.Name, pkg.ID), userID)
	return packageToResponse(pkg), nil
}

// mutateMembers runs one atomic edge mutation + recompute + persist cycle.
// Ids that resolve to no item are skipped; attach of a member and detach of a
// non-member are no-ops on the edge set.
func (s *packageService) mutateMembers(
	ctx context.Context,
	id uuid.UUID,
	rawIDs []string,
	mutate func(ctx context.Context, tx *gorm.DB, p *model.Package, items []model.Item) error,
) (*model.Package, error) {
	if len(rawIDs) == 0 {
		return nil, fmt.Errorf("item_ids must not be empty: %w", ErrInvalidArgument)
	}
	itemIDs := parseIDs(rawIDs)

	var pkg *model.Package
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("package %s: %w", id, ErrNotFound)
			}
			return err
		}

		items, err := s.itemRepo.FindByIDsTx(ctx, tx, itemIDs)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			if err := mutate(ctx, tx, p, items); err != nil {
				return err
			}
		}

		total, err := s.repo.SumItemValuesTx(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		if err := s.repo.UpdateTotalTx(ctx, tx, p.ID, total); err != nil {
			return err
		}

		// Reload so the response reflects the post-mutation member set.
		pkg, err = s.repo.FindByIDTx(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		pkg.TotalValue = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// RecomputeTotal re-derives and persists the package total from the current
// edge set. NotFound when the package vanished concurrently — callers inside
// a transaction must treat that as a rollback.
func (s *packageService) RecomputeTotal(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, fmt.Errorf("package %s: %w", id, ErrNotFound)
		}
		return decimal.Zero, err
	}
	total, err := s.repo.SumItemValuesTx(ctx, nil, id)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.repo.UpdateTotalTx(ctx, nil, id, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func packageToResponse(p *model.Package) *dto.PackageResponse {
	resp := &dto.PackageResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Location:    p.Location,
		TotalValue:  p.TotalValue,
		CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	for i := range p.Items {
		resp.Items = append(resp.Items, *itemToResponse(&p.Items[i]))
	}
	return resp
}
