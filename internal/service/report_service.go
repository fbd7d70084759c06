package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	dashboardRecentActions = 5
	dashboardRecentItems   = 5
	dashboardSparklineDays = 30
)

// ReportService is read-only: every method recomputes from the entity graph
// on demand, nothing is cached and nothing mutates state.
type ReportService interface {
	InventoryGrowth(ctx context.Context) ([]dto.GrowthPoint, error)
	InventoryOverview(ctx context.Context) ([]dto.CategoryCount, error)
	ValueReport(ctx context.Context) (*dto.ValueReport, error)
	CategoryReport(ctx context.Context) ([]dto.CategoryCount, error)
	OperationReport(ctx context.Context, id uuid.UUID) (*dto.OperationReport, error)
	Dashboard(ctx context.Context) (*dto.Dashboard, error)
}

type reportService struct {
	repo    repository.ReportRepository
	opRepo  repository.OperationRepository
	pkgRepo repository.PackageRepository
	audit   AuditService
}

func NewReportService(
	repo repository.ReportRepository,
	opRepo repository.OperationRepository,
	pkgRepo repository.PackageRepository,
	audit AuditService,
) ReportService {
	return &reportService{repo: repo, opRepo: opRepo, pkgRepo: pkgRepo, audit: audit}
}

// InventoryGrowth buckets items by creation day and accumulates: the point at
// index i carries the sum of bucket sizes 0..i. The series is non-decreasing
// and its last value equals the total item count.
func (s *reportService) InventoryGrowth(ctx context.Context) ([]dto.GrowthPoint, error) {
	buckets, err := s.repo.GrowthBuckets(ctx)
	if err != nil {
		return nil, err
	}
	series := make([]dto.GrowthPoint, 0, len(buckets))
	var running int64
	for _, b := range buckets {
		running += b.Count
		series = append(series, dto.GrowthPoint{
			Date:            b.Day.Format("2006-01-02"),
			CumulativeCount: running,
		})
	}
	return series, nil
}

func (s *reportService) InventoryOverview(ctx context.Context) ([]dto.CategoryCount, error) {
	aggs, err := s.repo.CategoryItemCounts(ctx)
	if err != nil {
		return nil, err
	}
	return countsToDTO(aggs), nil
}

func (s *reportService) ValueReport(ctx context.Context) (*dto.ValueReport, error) {
	total, err := s.repo.TotalItemValue(ctx)
	if err != nil {
		return nil, err
	}
	aggs, err := s.repo.CategoryValueSums(ctx)
	if err != nil {
		return nil, err
	}
	byCat := make([]dto.CategoryValue, 0, len(aggs))
	for _, a := range aggs {
		byCat = append(byCat, dto.CategoryValue{
			CategoryID:   a.CategoryID.String(),
			CategoryName: a.Name,
			TotalValue:   a.Total,
		})
	}
	return &dto.ValueReport{TotalValue: total, ByCategory: byCat}, nil
}

// CategoryReport mirrors InventoryOverview; it stays a distinct operation for
// API compatibility.
func (s *reportService) CategoryReport(ctx context.Context) ([]dto.CategoryCount, error) {
	aggs, err := s.repo.CategoryItemCounts(ctx)
	if err != nil {
		return nil, err
	}
	return countsToDTO(aggs), nil
}

// OperationReport derives a value for one operation: directly attached item
// values plus attached package totals.
func (s *reportService) OperationReport(ctx context.Context, id uuid.UUID) (*dto.OperationReport, error) {
	op, err := s.opRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("operation %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	derived := decimal.Zero
	for _, item := range op.Items {
		derived = derived.Add(item.Value)
	}
	for _, pkg := range op.Packages {
		derived = derived.Add(pkg.TotalValue)
	}

	return &dto.OperationReport{
		Operation:    *operationToResponse(op),
		DerivedValue: derived,
	}, nil
}

func (s *reportService) Dashboard(ctx context.Context) (*dto.Dashboard, error) {
	total, err := s.repo.TotalItemValue(ctx)
	if err != nil {
		return nil, err
	}
	items, packages, operations, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	actions, err := s.audit.List(ctx, dashboardRecentActions)
	if err != nil {
		return nil, err
	}
	recentBuckets, err := s.repo.RecentBuckets(ctx, dashboardSparklineDays)
	if err != nil {
		return nil, err
	}
	cats, err := s.repo.CategoriesWithItems(ctx)
	if err != nil {
		return nil, err
	}
	recentItems, err := s.repo.RecentItems(ctx, dashboardRecentItems)
	if err != nil {
		return nil, err
	}

	// RecentBuckets arrives newest-first; the sparkline renders ascending.
	sparkline := make([]dto.DailyCount, 0, len(recentBuckets))
	for i := len(recentBuckets) - 1; i >= 0; i-- {
		b := recentBuckets[i]
		sparkline = append(sparkline, dto.DailyCount{Date: b.Day.Format("2006-01-02"), Count: b.Count})
	}

	catValues := make([]dto.CategoryItemValues, 0, len(cats))
	for _, c := range cats {
		cv := dto.CategoryItemValues{CategoryID: c.ID.String(), CategoryName: c.Name}
		for _, item := range c.Items {
			cv.ItemValues = append(cv.ItemValues, item.Value)
		}
		catValues = append(catValues, cv)
	}

	recent := make([]dto.ItemResponse, 0, len(recentItems))
	for i := range recentItems {
		recent = append(recent, *itemToResponse(&recentItems[i]))
	}

	return &dto.Dashboard{
		TotalValue:     total,
		ItemCount:      items,
		PackageCount:   packages,
		OperationCount: operations,
		RecentActions:  actions,
		Sparkline:      sparkline,
		Categories:     catValues,
		RecentItems:    recent,
	}, nil
}

func countsToDTO(aggs []repository.CategoryAgg) []dto.CategoryCount {
	out := make([]dto.CategoryCount, 0, len(aggs))
	for _, a := range aggs {
		out = append(out, dto.CategoryCount{
			CategoryID:   a.CategoryID.String(),
			CategoryName: a.Name,
			ItemCount:    a.Count,
		})
	}
	return out
}
