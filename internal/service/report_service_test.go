package service

import (
	"context"
	"testing"
	"time"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"
	"github.com/SkyVence/project-avims-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInventoryGrowthCumulative(t *testing.T) {
	repo := &stubReportRepo{
		growth: []repository.DateBucket{
			{Day: day("2026-01-01"), Count: 3},
			{Day: day("2026-01-02"), Count: 2},
			{Day: day("2026-01-05"), Count: 5},
		},
	}
	svc := NewReportService(repo, nil, nil, NewAuditService(&stubActionRepo{}))

	series, err := svc.InventoryGrowth(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, dto.GrowthPoint{Date: "2026-01-01", CumulativeCount: 3}, series[0])
	assert.Equal(t, dto.GrowthPoint{Date: "2026-01-02", CumulativeCount: 5}, series[1])
	assert.Equal(t, dto.GrowthPoint{Date: "2026-01-05", CumulativeCount: 10}, series[2])

	// Non-decreasing, final point equals the total count.
	for i := 1; i < len(series); i++ {
		assert.GreaterOrEqual(t, series[i].CumulativeCount, series[i-1].CumulativeCount)
	}
	assert.Equal(t, int64(10), series[len(series)-1].CumulativeCount)
}

func TestInventoryGrowthEmpty(t *testing.T) {
	svc := NewReportService(&stubReportRepo{}, nil, nil, NewAuditService(&stubActionRepo{}))
	series, err := svc.InventoryGrowth(context.Background())
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestValueReport(t *testing.T) {
	catID := uuid.New()
	repo := &stubReportRepo{
		totalValue: dec("350.00"),
		values: []repository.CategoryAgg{
			{CategoryID: catID, Name: "optics", Total: dec("200.00")},
		},
	}
	svc := NewReportService(repo, nil, nil, NewAuditService(&stubActionRepo{}))

	report, err := svc.ValueReport(context.Background())
	require.NoError(t, err)
	assert.True(t, report.TotalValue.Equal(dec("350.00")))
	require.Len(t, report.ByCategory, 1)
	assert.Equal(t, catID.String(), report.ByCategory[0].CategoryID)
	assert.True(t, report.ByCategory[0].TotalValue.Equal(dec("200.00")))
}

func TestCategoryReportCountsPerCategory(t *testing.T) {
	repo := &stubReportRepo{
		counts: []repository.CategoryAgg{
			{CategoryID: uuid.New(), Name: "cameras", Count: 4},
			{CategoryID: uuid.New(), Name: "lights", Count: 0},
		},
	}
	svc := NewReportService(repo, nil, nil, NewAuditService(&stubActionRepo{}))

	counts, err := svc.CategoryReport(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, int64(4), counts[0].ItemCount)
	assert.Equal(t, int64(0), counts[1].ItemCount)
}

func TestOperationReportDerivedValue(t *testing.T) {
	items := newStubItemRepo()
	pkgs := newStubPackageRepo(items)
	ops := newStubOperationRepo(items, pkgs)
	audit := NewAuditService(&stubActionRepo{})
	svc := NewReportService(&stubReportRepo{}, ops, pkgs, audit)

	a := items.add("direct-1", "10.00")
	b := items.add("direct-2", "20.00")
	boxed := items.add("boxed", "30.00")

	pkgSvc := NewPackageService(pkgs, items, audit)
	pkg, err := pkgSvc.Create(context.Background(), uuid.New(), dto.CreatePackageRequest{
		Name:    "box",
		ItemIDs: []string{boxed.ID.String()},
	})
	require.NoError(t, err)

	op := &model.Operation{Name: "derive", Year: 2026}
	require.NoError(t, ops.Create(context.Background(), op))
	require.NoError(t, ops.AppendItems(context.Background(), op, []model.Item{*a, *b}))
	require.NoError(t, ops.AppendPackages(context.Background(), op, []model.Package{{ID: uuid.MustParse(pkg.ID)}}))

	report, err := svc.OperationReport(context.Background(), op.ID)
	require.NoError(t, err)
	assert.True(t, report.DerivedValue.Equal(dec("60.00")), "got %s", report.DerivedValue)
}

func TestOperationReportNotFound(t *testing.T) {
	items := newStubItemRepo()
	pkgs := newStubPackageRepo(items)
	ops := newStubOperationRepo(items, pkgs)
	svc := NewReportService(&stubReportRepo{}, ops, pkgs, NewAuditService(&stubActionRepo{}))

	_, err := svc.OperationReport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboardSparklineAscending(t *testing.T) {
	repo := &stubReportRepo{
		// Newest-first, as the query layer delivers them.
		recent: []repository.DateBucket{
			{Day: day("2026-01-03"), Count: 1},
			{Day: day("2026-01-02"), Count: 4},
			{Day: day("2026-01-01"), Count: 2},
		},
		itemCount: 7,
		pkgCount:  2,
		opCount:   1,
	}
	svc := NewReportService(repo, nil, nil, NewAuditService(&stubActionRepo{}))

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, dash.Sparkline, 3)
	assert.Equal(t, "2026-01-01", dash.Sparkline[0].Date)
	assert.Equal(t, "2026-01-03", dash.Sparkline[2].Date)
	assert.Equal(t, int64(7), dash.ItemCount)
	assert.Equal(t, int64(2), dash.PackageCount)
	assert.Equal(t, int64(1), dash.OperationCount)
}

func TestDashboardCategoryItemValues(t *testing.T) {
	catID := uuid.New()
	repo := &stubReportRepo{
		catsWithItems: []model.Category{
			{
				ID:   catID,
				Name: "gear",
				Items: []model.Item{
					{ID: uuid.New(), Value: dec("5.00")},
					{ID: uuid.New(), Value: dec("7.00")},
				},
			},
		},
	}
	svc := NewReportService(repo, nil, nil, NewAuditService(&stubActionRepo{}))

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, dash.Categories, 1)
	assert.Equal(t, catID.String(), dash.Categories[0].CategoryID)
	require.Len(t, dash.Categories[0].ItemValues, 2)
	assert.True(t, dash.Categories[0].ItemValues[1].Equal(dec("7.00")))
}
