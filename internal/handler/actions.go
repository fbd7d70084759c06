package handler

import (
	"net/http"
	"strconv"

	"github.com/SkyVence/project-avims-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ActionsHandler struct{ svc service.AuditService }

func NewActionsHandler(svc service.AuditService) *ActionsHandler {
	return &ActionsHandler{svc: svc}
}

func (h *ActionsHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
