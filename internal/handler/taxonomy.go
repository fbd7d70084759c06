package handler

import (
	"net/http"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// TaxonomyHandler serves all three reference lists; the route group decides
// which kind an instance manages.
type TaxonomyHandler struct {
	svc  service.TaxonomyService
	kind service.TaxonomyKind
}

func NewTaxonomyHandler(svc service.TaxonomyService, kind service.TaxonomyKind) *TaxonomyHandler {
	return &TaxonomyHandler{svc: svc, kind: kind}
}

func (h *TaxonomyHandler) Create(c *gin.Context) {
	var req dto.CreateTaxonomyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID(c), h.kind, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TaxonomyHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), h.kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateTaxonomyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), userID(c), h.kind, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TaxonomyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID(c), h.kind, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
