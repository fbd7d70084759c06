package service

import (
	"context"
	"sort"
	"strings"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"
	"github.com/SkyVence/project-avims-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the closure
// without a transaction handle.

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── items ───────────────────────────────────────────────────────────────────

type stubItemRepo struct {
	items       map[uuid.UUID]*model.Item
	lastLimit   int
	searchCalls int
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[uuid.UUID]*model.Item)}
}

func (r *stubItemRepo) add(name, value string) *model.Item {
	i := &model.Item{ID: uuid.New(), Name: name, Value: dec(value)}
	r.items[i.ID] = i
	return i
}

func (r *stubItemRepo) Create(_ context.Context, i *model.Item) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.items[i.ID] = i
	return nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubItemRepo) FindByIDsTx(_ context.Context, _ *gorm.DB, ids []uuid.UUID) ([]model.Item, error) {
	var out []model.Item
	for _, id := range ids {
		if i, ok := r.items[id]; ok {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubItemRepo) List(_ context.Context, _ dto.ItemFilter) ([]model.Item, int64, error) {
	out := make([]model.Item, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, int64(len(out)), nil
}

func (r *stubItemRepo) Search(_ context.Context, term string, limit int) ([]model.Item, error) {
	r.searchCalls++
	r.lastLimit = limit
	var out []model.Item
	for _, i := range r.items {
		if strings.Contains(strings.ToLower(i.Name), strings.ToLower(term)) {
			out = append(out, *i)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, i *model.Item) error {
	if _, ok := r.items[i.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[i.ID] = i
	return nil
}

func (r *stubItemRepo) ReplaceTaxonomy(_ context.Context, i *model.Item, cats []model.Category, fams []model.Family, subs []model.SubFamily) error {
	i.Categories, i.Families, i.SubFamilies = cats, fams, subs
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubItemRepo) DeleteMany(_ context.Context, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *stubItemRepo) DB() *gorm.DB { return nil }

// ── packages ────────────────────────────────────────────────────────────────

type stubPackageRepo struct {
	packages map[uuid.UUID]*model.Package
	members  map[uuid.UUID][]uuid.UUID
	items    *stubItemRepo
}

func newStubPackageRepo(items *stubItemRepo) *stubPackageRepo {
	return &stubPackageRepo{
		packages: make(map[uuid.UUID]*model.Package),
		members:  make(map[uuid.UUID][]uuid.UUID),
		items:    items,
	}
}

func (r *stubPackageRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.Package) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.packages[p.ID] = &cp
	return nil
}

func (r *stubPackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	return r.FindByIDTx(ctx, nil, id)
}

func (r *stubPackageRepo) FindByIDTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (*model.Package, error) {
	p, ok := r.packages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Items = nil
	for _, itemID := range r.members[id] {
		if i, ok := r.items.items[itemID]; ok {
			cp.Items = append(cp.Items, *i)
		}
	}
	return &cp, nil
}

func (r *stubPackageRepo) List(_ context.Context, _ dto.PackageFilter) ([]model.Package, int64, error) {
	out := make([]model.Package, 0, len(r.packages))
	for _, p := range r.packages {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPackageRepo) UpdateTx(_ context.Context, _ *gorm.DB, p *model.Package) error {
	if _, ok := r.packages[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.packages[p.ID] = &cp
	return nil
}

func (r *stubPackageRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.packages, id)
	delete(r.members, id)
	return nil
}

func (r *stubPackageRepo) AppendItemsTx(_ context.Context, _ *gorm.DB, p *model.Package, items []model.Item) error {
	existing := make(map[uuid.UUID]bool)
	for _, id := range r.members[p.ID] {
		existing[id] = true
	}
	for _, i := range items {
		if !existing[i.ID] {
			r.members[p.ID] = append(r.members[p.ID], i.ID)
			existing[i.ID] = true
		}
	}
	return nil
}

func (r *stubPackageRepo) RemoveItemsTx(_ context.Context, _ *gorm.DB, p *model.Package, items []model.Item) error {
	drop := make(map[uuid.UUID]bool)
	for _, i := range items {
		drop[i.ID] = true
	}
	kept := r.members[p.ID][:0]
	for _, id := range r.members[p.ID] {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	r.members[p.ID] = kept
	return nil
}

func (r *stubPackageRepo) ReplaceItemsTx(_ context.Context, _ *gorm.DB, p *model.Package, items []model.Item) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.ID)
	}
	r.members[p.ID] = ids
	return nil
}

func (r *stubPackageRepo) SumItemValuesTx(_ context.Context, _ *gorm.DB, id uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, itemID := range r.members[id] {
		if i, ok := r.items.items[itemID]; ok {
			total = total.Add(i.Value)
		}
	}
	return total, nil
}

func (r *stubPackageRepo) UpdateTotalTx(_ context.Context, _ *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	p, ok := r.packages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.TotalValue = total
	return nil
}

func (r *stubPackageRepo) FindIDsByItem(_ context.Context, itemID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for pkgID, itemIDs := range r.members {
		for _, id := range itemIDs {
			if id == itemID {
				ids = append(ids, pkgID)
				break
			}
		}
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a].String() < ids[b].String() })
	return ids, nil
}

func (r *stubPackageRepo) ListIDs(_ context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(r.packages))
	for id := range r.packages {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *stubPackageRepo) DB() *gorm.DB { return nil }

// ── operations ──────────────────────────────────────────────────────────────

type stubOperationRepo struct {
	ops      map[uuid.UUID]*model.Operation
	itemIDs  map[uuid.UUID][]uuid.UUID
	pkgIDs   map[uuid.UUID][]uuid.UUID
	items    *stubItemRepo
	packages *stubPackageRepo
}

func newStubOperationRepo(items *stubItemRepo, packages *stubPackageRepo) *stubOperationRepo {
	return &stubOperationRepo{
		ops:      make(map[uuid.UUID]*model.Operation),
		itemIDs:  make(map[uuid.UUID][]uuid.UUID),
		pkgIDs:   make(map[uuid.UUID][]uuid.UUID),
		items:    items,
		packages: packages,
	}
}

func (r *stubOperationRepo) Create(_ context.Context, o *model.Operation) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := *o
	r.ops[o.ID] = &cp
	return nil
}

func (r *stubOperationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Operation, error) {
	o, ok := r.ops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	cp.Items, cp.Packages = nil, nil
	for _, itemID := range r.itemIDs[id] {
		if i, ok := r.items.items[itemID]; ok {
			cp.Items = append(cp.Items, *i)
		}
	}
	for _, pkgID := range r.pkgIDs[id] {
		if p, ok := r.packages.packages[pkgID]; ok {
			cp.Packages = append(cp.Packages, *p)
		}
	}
	return &cp, nil
}

func (r *stubOperationRepo) List(_ context.Context, _ dto.OperationFilter) ([]model.Operation, int64, error) {
	out := make([]model.Operation, 0, len(r.ops))
	for _, o := range r.ops {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOperationRepo) Update(_ context.Context, o *model.Operation) error {
	if _, ok := r.ops[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *o
	r.ops[o.ID] = &cp
	return nil
}

func (r *stubOperationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.ops, id)
	delete(r.itemIDs, id)
	delete(r.pkgIDs, id)
	return nil
}

func (r *stubOperationRepo) AppendItems(_ context.Context, o *model.Operation, items []model.Item) error {
	existing := make(map[uuid.UUID]bool)
	for _, id := range r.itemIDs[o.ID] {
		existing[id] = true
	}
	for _, i := range items {
		if !existing[i.ID] {
			r.itemIDs[o.ID] = append(r.itemIDs[o.ID], i.ID)
			existing[i.ID] = true
		}
	}
	return nil
}

func (r *stubOperationRepo) RemoveItems(_ context.Context, o *model.Operation, items []model.Item) error {
	drop := make(map[uuid.UUID]bool)
	for _, i := range items {
		drop[i.ID] = true
	}
	kept := r.itemIDs[o.ID][:0]
	for _, id := range r.itemIDs[o.ID] {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	r.itemIDs[o.ID] = kept
	return nil
}

func (r *stubOperationRepo) AppendPackages(_ context.Context, o *model.Operation, pkgs []model.Package) error {
	existing := make(map[uuid.UUID]bool)
	for _, id := range r.pkgIDs[o.ID] {
		existing[id] = true
	}
	for _, p := range pkgs {
		if !existing[p.ID] {
			r.pkgIDs[o.ID] = append(r.pkgIDs[o.ID], p.ID)
			existing[p.ID] = true
		}
	}
	return nil
}

func (r *stubOperationRepo) RemovePackages(_ context.Context, o *model.Operation, pkgs []model.Package) error {
	drop := make(map[uuid.UUID]bool)
	for _, p := range pkgs {
		drop[p.ID] = true
	}
	kept := r.pkgIDs[o.ID][:0]
	for _, id := range r.pkgIDs[o.ID] {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	r.pkgIDs[o.ID] = kept
	return nil
}

func (r *stubOperationRepo) FindPackagesByIDs(_ context.Context, ids []uuid.UUID) ([]model.Package, error) {
	var out []model.Package
	for _, id := range ids {
		if p, ok := r.packages.packages[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubOperationRepo) DB() *gorm.DB { return nil }

// ── actions ─────────────────────────────────────────────────────────────────

type stubActionRepo struct {
	actions   []model.Action
	fail      bool
	lastLimit int
}

func (r *stubActionRepo) Create(_ context.Context, a *model.Action) error {
	if r.fail {
		return gorm.ErrInvalidDB
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.actions = append(r.actions, *a)
	return nil
}

func (r *stubActionRepo) ListRecent(_ context.Context, limit int) ([]model.Action, error) {
	r.lastLimit = limit
	out := make([]model.Action, 0, limit)
	for i := len(r.actions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.actions[i])
	}
	return out, nil
}

func (r *stubActionRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.actions)), nil
}

// ── taxonomy ────────────────────────────────────────────────────────────────

type stubTaxonomyRepo struct {
	categories  map[uuid.UUID]*model.Category
	families    map[uuid.UUID]*model.Family
	subFamilies map[uuid.UUID]*model.SubFamily
	refs        map[uuid.UUID]int64
}

func newStubTaxonomyRepo() *stubTaxonomyRepo {
	return &stubTaxonomyRepo{
		categories:  make(map[uuid.UUID]*model.Category),
		families:    make(map[uuid.UUID]*model.Family),
		subFamilies: make(map[uuid.UUID]*model.SubFamily),
		refs:        make(map[uuid.UUID]int64),
	}
}

func (r *stubTaxonomyRepo) CreateCategory(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubTaxonomyRepo) FindCategoryByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubTaxonomyRepo) FindCategoryByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTaxonomyRepo) FindCategoriesByIDs(_ context.Context, ids []uuid.UUID) ([]model.Category, error) {
	var out []model.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubTaxonomyRepo) ListCategories(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubTaxonomyRepo) UpdateCategory(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubTaxonomyRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubTaxonomyRepo) CountItemRefsCategory(_ context.Context, id uuid.UUID) (int64, error) {
	return r.refs[id], nil
}

func (r *stubTaxonomyRepo) CreateFamily(_ context.Context, f *model.Family) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.families[f.ID] = f
	return nil
}

func (r *stubTaxonomyRepo) FindFamilyByID(_ context.Context, id uuid.UUID) (*model.Family, error) {
	f, ok := r.families[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f, nil
}

func (r *stubTaxonomyRepo) FindFamiliesByIDs(_ context.Context, ids []uuid.UUID) ([]model.Family, error) {
	var out []model.Family
	for _, id := range ids {
		if f, ok := r.families[id]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *stubTaxonomyRepo) ListFamilies(_ context.Context) ([]model.Family, error) {
	out := make([]model.Family, 0, len(r.families))
	for _, f := range r.families {
		out = append(out, *f)
	}
	return out, nil
}

func (r *stubTaxonomyRepo) UpdateFamily(_ context.Context, f *model.Family) error {
	r.families[f.ID] = f
	return nil
}

func (r *stubTaxonomyRepo) DeleteFamily(_ context.Context, id uuid.UUID) error {
	delete(r.families, id)
	return nil
}

func (r *stubTaxonomyRepo) CountItemRefsFamily(_ context.Context, id uuid.UUID) (int64, error) {
	return r.refs[id], nil
}

func (r *stubTaxonomyRepo) CreateSubFamily(_ context.Context, s *model.SubFamily) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.subFamilies[s.ID] = s
	return nil
}

func (r *stubTaxonomyRepo) FindSubFamilyByID(_ context.Context, id uuid.UUID) (*model.SubFamily, error) {
	s, ok := r.subFamilies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubTaxonomyRepo) FindSubFamiliesByIDs(_ context.Context, ids []uuid.UUID) ([]model.SubFamily, error) {
	var out []model.SubFamily
	for _, id := range ids {
		if s, ok := r.subFamilies[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubTaxonomyRepo) ListSubFamilies(_ context.Context) ([]model.SubFamily, error) {
	out := make([]model.SubFamily, 0, len(r.subFamilies))
	for _, s := range r.subFamilies {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubTaxonomyRepo) UpdateSubFamily(_ context.Context, s *model.SubFamily) error {
	r.subFamilies[s.ID] = s
	return nil
}

func (r *stubTaxonomyRepo) DeleteSubFamily(_ context.Context, id uuid.UUID) error {
	delete(r.subFamilies, id)
	return nil
}

func (r *stubTaxonomyRepo) CountItemRefsSubFamily(_ context.Context, id uuid.UUID) (int64, error) {
	return r.refs[id], nil
}

// ── reports ─────────────────────────────────────────────────────────────────

type stubReportRepo struct {
	growth        []repository.DateBucket
	recent        []repository.DateBucket
	counts        []repository.CategoryAgg
	values        []repository.CategoryAgg
	totalValue    decimal.Decimal
	itemCount     int64
	pkgCount      int64
	opCount       int64
	recentItems   []model.Item
	catsWithItems []model.Category
}

func (r *stubReportRepo) GrowthBuckets(_ context.Context) ([]repository.DateBucket, error) {
	return r.growth, nil
}

func (r *stubReportRepo) RecentBuckets(_ context.Context, n int) ([]repository.DateBucket, error) {
	if len(r.recent) > n {
		return r.recent[:n], nil
	}
	return r.recent, nil
}

func (r *stubReportRepo) CategoryItemCounts(_ context.Context) ([]repository.CategoryAgg, error) {
	return r.counts, nil
}

func (r *stubReportRepo) CategoryValueSums(_ context.Context) ([]repository.CategoryAgg, error) {
	return r.values, nil
}

func (r *stubReportRepo) TotalItemValue(_ context.Context) (decimal.Decimal, error) {
	return r.totalValue, nil
}

func (r *stubReportRepo) Counts(_ context.Context) (int64, int64, int64, error) {
	return r.itemCount, r.pkgCount, r.opCount, nil
}

func (r *stubReportRepo) RecentItems(_ context.Context, limit int) ([]model.Item, error) {
	if len(r.recentItems) > limit {
		return r.recentItems[:limit], nil
	}
	return r.recentItems, nil
}

func (r *stubReportRepo) CategoriesWithItems(_ context.Context) ([]model.Category, error) {
	return r.catsWithItems, nil
}
