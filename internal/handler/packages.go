package handler

import (
	"net/http"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type PackagesHandler struct{ svc service.PackageService }

func NewPackagesHandler(svc service.PackageService) *PackagesHandler {
	return &PackagesHandler{svc: svc}
}

func (h *PackagesHandler) Create(c *gin.Context) {
	var req dto.CreatePackageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PackagesHandler) List(c *gin.Context) {
	var filter dto.PackageFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PackagesHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PackagesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdatePackageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PackagesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddItems connects items to the package; the new total is computed before
// the response is written.
func (h *PackagesHandler) AddItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MemberIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddMembers(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PackagesHandler) RemoveItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MemberIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RemoveMembers(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReplaceItems swaps the full member set. It is a separate endpoint from the
// incremental add/remove pair on purpose.
func (h *PackagesHandler) ReplaceItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MemberIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReplaceMembers(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
