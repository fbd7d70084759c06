package service

import (
	"context"
	"testing"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRecordIsBestEffort(t *testing.T) {
	repo := &stubActionRepo{fail: true}
	svc := NewAuditService(repo)

	// A failing audit insert must not panic or propagate: the primary
	// mutation already committed.
	svc.Record(context.Background(), model.ActionCreate, "item x", uuid.New())
	assert.Empty(t, repo.actions)
}

func TestAuditFailureDoesNotBlockMutation(t *testing.T) {
	items := newStubItemRepo()
	pkgs := newStubPackageRepo(items)
	failing := NewAuditService(&stubActionRepo{fail: true})
	svc := NewPackageService(pkgs, items, failing)

	pkg, err := svc.Create(context.Background(), uuid.New(), dto.CreatePackageRequest{Name: "unlogged"})
	require.NoError(t, err)
	assert.NotEmpty(t, pkg.ID)
}

func TestAuditListNewestFirst(t *testing.T) {
	repo := &stubActionRepo{}
	svc := NewAuditService(repo)
	ctx := context.Background()
	actor := uuid.New()

	svc.Record(ctx, model.ActionCreate, "first", actor)
	svc.Record(ctx, model.ActionUpdate, "second", actor)
	svc.Record(ctx, model.ActionDelete, "third", actor)

	got, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Details)
	assert.Equal(t, "first", got[2].Details)
}

func TestAuditListLimitClamped(t *testing.T) {
	repo := &stubActionRepo{}
	svc := NewAuditService(repo)
	ctx := context.Background()

	_, err := svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)

	_, err = svc.List(ctx, 9999)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)

	_, err = svc.List(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, repo.lastLimit)
}
