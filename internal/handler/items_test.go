package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/middleware"
	"github.com/SkyVence/project-avims-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// injectClaims stands in for JWTAuth so handlers that read the actor id
// find claims in the context.
func injectClaims() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: uuid.NewString(), Role: "user"})
	}
}

type stubItemSvc struct {
	err        error
	listFilter *dto.ItemFilter
	created    *dto.CreateItemRequest
}

func (s *stubItemSvc) Create(_ context.Context, _ uuid.UUID, req dto.CreateItemRequest) (*dto.ItemResponse, error) {
	s.created = &req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ItemResponse{ID: uuid.NewString(), Name: req.Name}, nil
}

func (s *stubItemSvc) Get(_ context.Context, id uuid.UUID) (*dto.ItemResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ItemResponse{ID: id.String()}, nil
}

func (s *stubItemSvc) List(_ context.Context, filter dto.ItemFilter) (*dto.ItemListResponse, error) {
	s.listFilter = &filter
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ItemListResponse{Data: []dto.ItemResponse{}}, nil
}

func (s *stubItemSvc) Search(_ context.Context, _ string, _ int) ([]dto.ItemResponse, error) {
	return nil, s.err
}

func (s *stubItemSvc) Update(_ context.Context, _ uuid.UUID, id uuid.UUID, _ dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ItemResponse{ID: id.String()}, nil
}

func (s *stubItemSvc) Delete(_ context.Context, _ uuid.UUID, _ uuid.UUID) error { return s.err }

func (s *stubItemSvc) BulkDelete(_ context.Context, _ uuid.UUID, _ dto.BulkDeleteItemsRequest) (int64, error) {
	return 0, s.err
}

func newItemsRouter(svc service.ItemService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewItemsHandler(svc)
	r := gin.New()
	r.Use(injectClaims())
	r.GET("/items", h.List)
	r.POST("/items", h.Create)
	return r
}

func TestItemsListMalformedQueryIsBadRequest(t *testing.T) {
	svc := &stubItemSvc{}
	r := newItemsRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items?page=abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "invalid query parameters")
	assert.Nil(t, svc.listFilter, "a malformed query must not reach the service")
}

func TestItemsListWellFormedQueryReachesService(t *testing.T) {
	svc := &stubItemSvc{}
	r := newItemsRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items?q=crate&page=2&limit=10", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.listFilter)
	assert.Equal(t, 2, svc.listFilter.Page)
}

func TestItemsCreateRejectsNegativeDimensions(t *testing.T) {
	svc := &stubItemSvc{}
	r := newItemsRouter(svc)

	for _, payload := range []string{
		`{"name":"crate","length":-5,"width":3,"height":4}`,
		`{"name":"crate","length":2,"width":-1,"height":4}`,
		`{"name":"crate","length":2,"width":3,"height":-0.5}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "payload %s", payload)
	}
	assert.Nil(t, svc.created)
}

// A dimension of zero is the unset representation of a value-typed decimal,
// so items without measurements still create cleanly.
func TestItemsCreateAcceptsOmittedDimensions(t *testing.T) {
	svc := &stubItemSvc{}
	r := newItemsRouter(svc)

	for _, payload := range []string{
		`{"name":"paperweight","value":"4.50"}`,
		`{"name":"paperweight","value":"4.50","length":0,"width":0,"height":0}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code, "payload %s", payload)
	}
	require.NotNil(t, svc.created)
	assert.Equal(t, "paperweight", svc.created.Name)
}
