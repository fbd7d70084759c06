package handler

import (
	"net/http"

	"github.com/SkyVence/project-avims-sub001/internal/apierror"
	"github.com/SkyVence/project-avims-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// ByType serves GET /reports/:type for inventory, value and category reports.
func (h *ReportsHandler) ByType(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Param("type") {
	case "inventory":
		growth, err := h.svc.InventoryGrowth(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		overview, err := h.svc.InventoryOverview(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"growth": growth, "overview": overview})
	case "value":
		report, err := h.svc.ValueReport(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	case "category":
		report, err := h.svc.CategoryReport(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	default:
		c.JSON(http.StatusBadRequest, apierror.New("unknown report type"))
	}
}

func (h *ReportsHandler) ByOperation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := h.svc.OperationReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportsHandler) Dashboard(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
