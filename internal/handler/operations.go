package handler

import (
	"net/http"

	"github.com/SkyVence/project-avims-sub001/internal/dto"
	"github.com/SkyVence/project-avims-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type OperationsHandler struct{ svc service.OperationService }

func NewOperationsHandler(svc service.OperationService) *OperationsHandler {
	return &OperationsHandler{svc: svc}
}

func (h *OperationsHandler) Create(c *gin.Context) {
	var req dto.CreateOperationRequest
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

func (h *OperationsHandler) List(c *gin.Context) {
	var filter dto.OperationFilter
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

func (h *OperationsHandler) Get(c *gin.Context) {
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

func (h *OperationsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateOperationRequest
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

func (h *OperationsHandler) Delete(c *gin.Context) {
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

func (h *OperationsHandler) AddItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MemberIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItems(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperationsHandler) RemoveItems(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.MemberIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RemoveItems(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperationsHandler) AddPackages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.OperationMemberPackagesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPackages(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OperationsHandler) RemovePackages(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.OperationMemberPackagesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RemovePackages(c.Request.Context(), userID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
