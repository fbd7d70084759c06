package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPackageSvc struct {
	err      error
	memberOf *dto.MemberIDsRequest
}

func (s *stubPackageSvc) Create(_ context.Context, _ uuid.UUID, req dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PackageResponse{ID: uuid.NewString(), Name: req.Name}, nil
}

func (s *stubPackageSvc) Get(_ context.Context, id uuid.UUID) (*dto.PackageResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PackageResponse{ID: id.String()}, nil
}

func (s *stubPackageSvc) List(_ context.Context, _ dto.PackageFilter) (*dto.PackageListResponse, error) {
	return &dto.PackageListResponse{}, s.err
}

func (s *stubPackageSvc) Update(_ context.Context, _ uuid.UUID, id uuid.UUID, _ dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PackageResponse{ID: id.String()}, nil
}

func (s *stubPackageSvc) Delete(_ context.Context, _ uuid.UUID, _ uuid.UUID) error { return s.err }

func (s *stubPackageSvc) AddMembers(_ context.Context, _ uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error) {
	s.memberOf = &req
	if len(req.ItemIDs) == 0 {
		return nil, fmt.Errorf("item_ids must not be empty: %w", service.ErrInvalidArgument)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PackageResponse{ID: id.String()}, nil
}

func (s *stubPackageSvc) RemoveMembers(_ context.Context, _ uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error) {
	return s.AddMembers(context.Background(), uuid.Nil, id, req)
}

func (s *stubPackageSvc) ReplaceMembers(_ context.Context, _ uuid.UUID, id uuid.UUID, req dto.MemberIDsRequest) (*dto.PackageResponse, error) {
	return s.AddMembers(context.Background(), uuid.Nil, id, req)
}

func (s *stubPackageSvc) RecomputeTotal(_ context.Context, _ uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, s.err
}

func newPackagesRouter(svc service.PackageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPackagesHandler(svc)
	r := gin.New()
	r.Use(injectClaims())
	r.POST("/packages/:id/items", h.AddItems)
	return r
}

// An empty member list is a domain error, answered with the service's 400,
// not intercepted by request validation.
func TestPackagesAddItemsEmptyListIsBadRequest(t *testing.T) {
	svc := &stubPackageSvc{}
	r := newPackagesRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/packages/"+uuid.NewString()+"/items", strings.NewReader(`{"item_ids":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "item_ids must not be empty")
	require.NotNil(t, svc.memberOf, "the request must reach the service")
	assert.Empty(t, svc.memberOf.ItemIDs)
}

func TestPackagesAddItemsForwardsIDs(t *testing.T) {
	svc := &stubPackageSvc{}
	r := newPackagesRouter(svc)

	id := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/packages/"+uuid.NewString()+"/items", strings.NewReader(`{"item_ids":["`+id+`"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.memberOf)
	assert.Equal(t, []string{id}, svc.memberOf.ItemIDs)
}
