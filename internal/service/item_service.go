package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"
	"github.com/SkyVence/project-avims-sub001/internal/repository"
	"github.com/SkyVence/project-avims-sub001/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultSearchLimit = 50

// ItemService owns the item lifecycle and the volume invariant:
// volume = length × width × height, recomputed on every create/update that
// touches a dimension, never accepted from input.
type ItemService interface {
	Create(ctx context.Context, userID uuid.UUID, req dto.CreateItemRequest) (*dto.ItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error)
	List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error)
	Search(ctx context.Context, term string, limit int) ([]dto.ItemResponse, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	BulkDelete(ctx context.Context, userID uuid.UUID, req dto.BulkDeleteItemsRequest) (int64, error)
}

type itemService struct {
	repo       repository.ItemRepository
	pkgRepo    repository.PackageRepository
	taxRepo    repository.TaxonomyRepository
	audit      AuditService
	dispatcher *worker.Dispatcher
}

func NewItemService(
	repo repository.ItemRepository,
	pkgRepo repository.PackageRepository,
	taxRepo repository.TaxonomyRepository,
	audit AuditService,
	dispatcher *worker.Dispatcher,
) ItemService {
	return &itemService{repo: repo, pkgRepo: pkgRepo, taxRepo: taxRepo, audit: audit, dispatcher: dispatcher}
}

func (s *itemService) Create(ctx context.Context, userID uuid.UUID, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item := &model.Item{
		Name:           req.Name,
		Description:    req.Description,
		Brand:          req.Brand,
		Sku:            req.Sku,
		Value:          req.Value,
		InsuranceValue: req.InsuranceValue,
		Length:         req.Length,
		Width:          req.Width,
		Height:         req.Height,
		Weight:         req.Weight,
		Quantity:       req.Quantity,
		Location:       req.Location,
		Origin:         req.Origin,
		HsCode:         req.HsCode,
		PurchaseDate:   req.PurchaseDate,
	}
	item.Volume = item.ComputeVolume()

	if err := s.attachTaxonomy(ctx, item, req.CategoryIDs, req.FamilyIDs, req.SubFamilyIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, model.ActionCreate, fmt.Sprintf("item %q (%s)", item.Name, item.ID), userID)
	return itemToResponse(item), nil
}

func (s *itemService) Get(ctx context.Context, id uuid.UUID) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) List(ctx context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		data = append(data, *itemToResponse(&items[i]))
	}
	return &dto.ItemListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Search is the dedicated quick-search: an empty term is an error here,
// unlike List where it means "no filter". The predicate is also narrower
// (name/sku/brand, no description). Both behaviors are intentional.
func (s *itemService) Search(ctx context.Context, term string, limit int) ([]dto.ItemResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("search term is required: %w", ErrInvalidArgument)
	}
	if limit < 1 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}
	items, err := s.repo.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, *itemToResponse(&items[i]))
	}
	return resp, nil
}

func (s *itemService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	valueChanged := false
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Brand != nil {
		item.Brand = req.Brand
	}
	if req.Sku != nil {
		item.Sku = req.Sku
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, fmt.Errorf("value must be >= 0: %w", ErrInvalidArgument)
		}
		if !req.Value.Equal(item.Value) {
			item.Value = *req.Value
			valueChanged = true
		}
	}
	if req.InsuranceValue != nil {
		if req.InsuranceValue.IsNegative() {
			return nil, fmt.Errorf("insurance value must be >= 0: %w", ErrInvalidArgument)
		}
		item.InsuranceValue = *req.InsuranceValue
	}
	// Dimensions are positive reals; an explicit zero or negative would drive
	// the derived volume (and, through the value path, package totals) wrong.
	if req.Length != nil {
		if !req.Length.IsPositive() {
			return nil, fmt.Errorf("length must be > 0: %w", ErrInvalidArgument)
		}
		item.Length = *req.Length
	}
	if req.Width != nil {
		if !req.Width.IsPositive() {
			return nil, fmt.Errorf("width must be > 0: %w", ErrInvalidArgument)
		}
		item.Width = *req.Width
	}
	if req.Height != nil {
		if !req.Height.IsPositive() {
			return nil, fmt.Errorf("height must be > 0: %w", ErrInvalidArgument)
		}
		item.Height = *req.Height
	}
	if req.Weight != nil {
		if req.Weight.IsNegative() {
			return nil, fmt.Errorf("weight must be >= 0: %w", ErrInvalidArgument)
		}
		item.Weight = *req.Weight
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("quantity must be >= 0: %w", ErrInvalidArgument)
		}
		item.Quantity = *req.Quantity
	}
	if req.Location != nil {
		item.Location = req.Location
	}
	if req.Origin != nil {
		item.Origin = req.Origin
	}
	if req.HsCode != nil {
		item.HsCode = req.HsCode
	}
	if req.PurchaseDate != nil {
		item.PurchaseDate = req.PurchaseDate
	}

	// The volume invariant holds after every write, whether or not a
	// dimension moved.
	item.Volume = item.ComputeVolume()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if req.CategoryIDs != nil || req.FamilyIDs != nil || req.SubFamilyIDs != nil {
		cats, fams, subs, err := s.resolveTaxonomy(ctx, req.CategoryIDs, req.FamilyIDs, req.SubFamilyIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.ReplaceTaxonomy(ctx, item, cats, fams, subs); err != nil {
			return nil, err
		}
		item.Categories, item.Families, item.SubFamilies = cats, fams, subs
	}

	// Stored package totals reference the old value; queue a reconcile so
	// they converge (detail reads recompute on the spot regardless).
	if valueChanged && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReconcileItem(ctx, item.ID)
	}

	s.audit.Record(ctx, model.ActionUpdate, fmt.Sprintf("item %q (%s)", item.Name, item.ID), userID)
	return itemToResponse(item), nil
}

func (s *itemService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		return err
	}

	// Capture containers before the edges disappear.
	pkgIDs, err := s.pkgRepo.FindIDsByItem(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if len(pkgIDs) > 0 && s.dispatcher != nil {
		_ = s.dispatcher.EnqueueReconcilePackages(ctx, pkgIDs)
	}

	s.audit.Record(ctx, model.ActionDelete, fmt.Sprintf("item %q (%s)", item.Name, id), userID)
	return nil
}

func (s *itemService) BulkDelete(ctx context.Context, userID uuid.UUID, req dto.BulkDeleteItemsRequest) (int64, error) {
	ids := parseIDs(req.IDs)
	if len(ids) == 0 {
		return 0, fmt.Errorf("no valid item ids: %w", ErrInvalidArgument)
	}

	affected := make(map[uuid.UUID]struct{})
	for _, id := range ids {
		pkgIDs, err := s.pkgRepo.FindIDsByItem(ctx, id)
		if err != nil {
			return 0, err
		}
		for _, pid := range pkgIDs {
			affected[pid] = struct{}{}
		}
	}

	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}

	if len(affected) > 0 && s.dispatcher != nil {
		pkgIDs := make([]uuid.UUID, 0, len(affected))
		for pid := range affected {
			pkgIDs = append(pkgIDs, pid)
		}
		_ = s.dispatcher.EnqueueReconcilePackages(ctx, pkgIDs)
	}

	s.audit.Record(ctx, model.ActionBulkDelete, fmt.Sprintf("%d items deleted", deleted), userID)
	return deleted, nil
}

func (s *itemService) attachTaxonomy(ctx context.Context, item *model.Item, catIDs, famIDs, subIDs []string) error {
	cats, fams, subs, err := s.resolveTaxonomy(ctx, catIDs, famIDs, subIDs)
	if err != nil {
		return err
	}
	item.Categories, item.Families, item.SubFamilies = cats, fams, subs
	return nil
}

func (s *itemService) resolveTaxonomy(ctx context.Context, catIDs, famIDs, subIDs []string) ([]model.Category, []model.Family, []model.SubFamily, error) {
	var cats []model.Category
	var fams []model.Family
	var subs []model.SubFamily
	var err error

	if ids := parseIDs(catIDs); len(ids) > 0 {
		if cats, err = s.taxRepo.FindCategoriesByIDs(ctx, ids); err != nil {
			return nil, nil, nil, err
		}
	}
	if ids := parseIDs(famIDs); len(ids) > 0 {
		if fams, err = s.taxRepo.FindFamiliesByIDs(ctx, ids); err != nil {
			return nil, nil, nil, err
		}
	}
	if ids := parseIDs(subIDs); len(ids) > 0 {
		if subs, err = s.taxRepo.FindSubFamiliesByIDs(ctx, ids); err != nil {
			return nil, nil, nil, err
		}
	}
	return cats, fams, subs, nil
}

func itemToResponse(i *model.Item) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:             i.ID.String(),
		Name:           i.Name,
		Description:    i.Description,
		Brand:          i.Brand,
		Sku:            i.Sku,
		Value:          i.Value,
		InsuranceValue: i.InsuranceValue,
		Length:         i.Length,
		Width:          i.Width,
		Height:         i.Height,
		Weight:         i.Weight,
		Volume:         i.Volume,
		Quantity:       i.Quantity,
		Location:       i.Location,
		Origin:         i.Origin,
		HsCode:         i.HsCode,
		PurchaseDate:   i.PurchaseDate,
		CreatedAt:      i.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	for _, c := range i.Categories {
		resp.Categories = append(resp.Categories, dto.TaxonomyNode{ID: c.ID.String(), Name: c.Name, Description: c.Description})
	}
	for _, f := range i.Families {
		node := dto.TaxonomyNode{ID: f.ID.String(), Name: f.Name, Description: f.Description}
		if f.CategoryID != nil {
			parent := f.CategoryID.String()
			node.ParentID = &parent
		}
		resp.Families = append(resp.Families, node)
	}
	for _, sf := range i.SubFamilies {
		node := dto.TaxonomyNode{ID: sf.ID.String(), Name: sf.Name, Description: sf.Description}
		if sf.FamilyID != nil {
			parent := sf.FamilyID.String()
			node.ParentID = &parent
		}
		resp.SubFamilies = append(resp.SubFamilies, node)
	}
	return resp
}
