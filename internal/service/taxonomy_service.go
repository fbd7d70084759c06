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

// TaxonomyKind selects which reference list an operation targets.
type TaxonomyKind string

const (
	KindCategory  TaxonomyKind = "category"
	KindFamily    TaxonomyKind = "family"
	KindSubFamily TaxonomyKind = "subfamily"
)

// TaxonomyService manages the Category/Family/SubFamily reference lists.
// Deleting a node still referenced by any item is blocked with a Conflict —
// reference data is never cascading-deleted from under the items using it.
type TaxonomyService interface {
	Create(ctx context.Context, userID uuid.UUID, kind TaxonomyKind, req dto.CreateTaxonomyRequest) (*dto.TaxonomyNode, error)
	List(ctx context.Context, kind TaxonomyKind) ([]dto.TaxonomyNode, error)
	Update(ctx context.Context, userID uuid.UUID, kind TaxonomyKind, id uuid.UUID, req dto.UpdateTaxonomyRequest) (*dto.TaxonomyNode, error)
	Delete(ctx context.Context, userID uuid.UUID, kind TaxonomyKind, id uuid.UUID) error
}

type taxonomyService struct {
	repo  repository.TaxonomyRepository
	audit AuditService
}

func NewTaxonomyService(repo repository.TaxonomyRepository, audit AuditService) TaxonomyService {
	return &taxonomyService{repo: repo, audit: audit}
}

func (s *taxonomyService) Create(ctx context.Context, userID uuid.UUID, kind TaxonomyKind, req dto.CreateTaxonomyRequest) (*dto.TaxonomyNode, error) {
	parentID, err := parseOptionalID(req.ParentID)
	if err != nil {
		return nil, err
	}

	var node *dto.TaxonomyNode
	switch kind {
	case KindCategory:
		c := &model.Category{Name: req.Name, Description: req.Description}
		if err := s.repo.CreateCategory(ctx, c); err != nil {
			return nil, wrapDuplicate(err, req.Name)
		}
		node = categoryNode(c)
	case KindFamily:
		f := &model.Family{Name: req.Name, Description: req.Description, CategoryID: parentID}
		if err := s.repo.CreateFamily(ctx, f); err != nil {
			return nil, wrapDuplicate(err, req.Name)
		}
		node = familyNode(f)
	case KindSubFamily:
		sf := &model.SubFamily{Name: req.Name, Description: req.Description, FamilyID: parentID}
		if err := s.repo.CreateSubFamily(ctx, sf); err != nil {
			return nil, wrapDuplicate(err, req.Name)
		}
		node = subFamilyNode(sf)
	default:
		return nil, fmt.Errorf("unknown taxonomy kind %q: %w", kind, ErrInvalidArgument)
	}

	s.audit.Record(ctx, model.ActionCreate, fmt.Sprintf("%s %q (%s)", kind, node.Name, node.ID), userID)
	return node, nil
}

func (s *taxonomyService) List(ctx context.Context, kind TaxonomyKind) ([]dto.TaxonomyNode, error) {
	switch kind {
	case KindCategory:
		cats, err := s.repo.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]dto.TaxonomyNode, 0, len(cats))
		for i := range cats {
			nodes = append(nodes, *categoryNode(&cats[i]))
		}
		return nodes, nil
	case KindFamily:
		fams, err := s.repo.ListFamilies(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]dto.TaxonomyNode, 0, len(fams))
		for i := range fams {
			nodes = append(nodes, *familyNode(&fams[i]))
		}
		return nodes, nil
	case KindSubFamily:
		subs, err := s.repo.ListSubFamilies(ctx)
		if err != nil {
			return nil, err
		}
		nodes := make([]dto.TaxonomyNode, 0, len(subs))
		for i := range subs {
			nodes = append(nodes, *subFamilyNode(&subs[i]))
		}
		return nodes, nil
	}
	return nil, fmt.Errorf("unknown taxonomy kind %q: %w", kind, ErrInvalidArgument)
}

func (s *taxonomyService) Update(ctx context.Context, userID uuid.UUID, kind TaxonomyKind, id uuid.UUID, req dto.UpdateTaxonomyRequest) (*dto.TaxonomyNode, error) {
	parentID, err := parseOptionalID(req.ParentID)
	if err != nil {
		return nil, err
	}

	var node *dto.TaxonomyNode
	switch kind {
	case KindCategory:
		c, err := s.repo.FindCategoryByID(ctx, id)
		if err != nil {
			return nil, mapNotFound(err, kind, id)
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = req.Description
		}
		if err := s.repo.UpdateCategory(ctx, c); err != nil {
			return nil, err
		}
		node = categoryNode(c)
	case KindFamily:
		f, err := s.repo.FindFamilyByID(ctx, id)
		if err != nil {
			return nil, mapNotFound(err, kind, id)
		}
		if req.Name != nil {
			f.Name = *req.Name
		}
		if req.Description != nil {
			f.Description = req.Description
		}
		if req.ParentID != nil {
			f.CategoryID = parentID
		}
		if err := s.repo.UpdateFamily(ctx, f); err != nil {
			return nil, err
		}
		node = familyNode(f)
	case KindSubFamily:
		sf, err := s.repo.FindSubFamilyByID(ctx, id)
		if err != nil {
			return nil, mapNotFound(err, kind, id)
		}
		if req.Name != nil {
			sf.Name = *req.Name
		}
		if req.Description != nil {
			sf.Description = req.Description
		}
		if req.ParentID != nil {
			sf.FamilyID = parentID
		}
		if err := s.repo.UpdateSubFamily(ctx, sf); err != nil {
			return nil, err
		}
		node = subFamilyNode(sf)
	default:
		return nil, fmt.Errorf("unknown taxonomy kind %q: %w", kind, ErrInvalidArgument)
	}

	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("%s %q (%s)", kind, node.Name, node.ID), userID)
	return node, nil
}

func (s *taxonomyService) Delete(ctx context.Context, userID uuid.UUID, kind TaxonomyKind, id uuid.UUID) error {
	var refs int64
	var err error
	switch kind {
	case KindCategory:
		refs, err = s.repo.CountItemRefsCategory(ctx, id)
	case KindFamily:
		refs, err = s.repo.CountItemRefsFamily(ctx, id)
	case KindSubFamily:
		refs, err = s.repo.CountItemRefsSubFamily(ctx, id)
	default:
		return fmt.Errorf("unknown taxonomy kind %q: %w", kind, ErrInvalidArgument)
	}
	if err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("%s %s is referenced by %d item(s): %w", kind, id, refs, ErrConflict)
	}

	switch kind {
	case KindCategory:
		err = s.repo.DeleteCategory(ctx, id)
	case KindFamily:
		err = s.repo.DeleteFamily(ctx, id)
	case KindSubFamily:
		err = s.repo.DeleteSubFamily(ctx, id)
	}
	if err != nil {
		return err
	}

	s.audit.Record(ctx, model.ActionDelete, fmt.Sprintf("%s %s", kind, id), userID)
	return nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("parent_id is not a valid id: %w", ErrInvalidArgument)
	}
	return &id, nil
}

func wrapDuplicate(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("name %q already exists: %w", name, ErrConflict)
	}
	return err
}

func mapNotFound(err error, kind TaxonomyKind, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return err
}

func categoryNode(c *model.Category) *dto.TaxonomyNode {
	return &dto.TaxonomyNode{ID: c.ID.String(), Name: c.Name, Description: c.Description}
}

func familyNode(f *model.Family) *dto.TaxonomyNode {
	node := &dto.TaxonomyNode{ID: f.ID.String(), Name: f.Name, Description: f.Description}
	if f.CategoryID != nil {
		p := f.CategoryID.String()
		node.ParentID = &p
	}
	return node
}

func subFamilyNode(sf *model.SubFamily) *dto.TaxonomyNode {
	node := &dto.TaxonomyNode{ID: sf.ID.String(), Name: sf.Name, Description: sf.Description}
	if sf.FamilyID != nil {
		p := sf.FamilyID.String()
		node.ParentID = &p
	}
	return node
}
