package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	reportUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/report"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	reportService *reportUseCase.Service
	logger        coreport.Logger
}

// NewDashboardHandler creates a new dashboard handler instance
func NewDashboardHandler(reportService *reportUseCase.Service, logger coreport.Logger) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Stats handles the GET /api/dashboard/stats endpoint
func (h *DashboardHandler) Stats(c *gin.Context) {
	snap, err := h.reportService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not compute dashboard stats")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardStatsResponse(snap))
}
