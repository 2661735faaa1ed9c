package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	machineUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/machine"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
)

// MachineHandler handles machine-related HTTP requests
type MachineHandler struct {
	machineService *machineUseCase.Service
	logger         coreport.Logger
}

// NewMachineHandler creates a new machine handler instance
func NewMachineHandler(machineService *machineUseCase.Service, logger coreport.Logger) *MachineHandler {
	return &MachineHandler{
		machineService: machineService,
		logger:         logger,
	}
}

// List handles the GET /api/machines endpoint
func (h *MachineHandler) List(c *gin.Context) {
	machines, err := h.machineService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not list machines")
		return
	}
	c.JSON(http.StatusOK, dto.ToMachineListResponse(machines))
}

// Get handles the GET /api/machines/:id endpoint
func (h *MachineHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	machine, err := h.machineService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Machine not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToMachineResponse(machine))
}

// Create handles the POST /api/machines endpoint
func (h *MachineHandler) Create(c *gin.Context) {
	var req dto.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidInput),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	machine, err := h.machineService.Create(c.Request.Context(), req.Name, req.Tier, req.HourlyRate)
	if err != nil {
		respondError(c, err, "Could not create machine")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMachineResponse(machine))
}

// Update handles the PUT /api/machines/:id endpoint
func (h *MachineHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidInput),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	machine, err := h.machineService.Update(c.Request.Context(), id, machineUseCase.UpdateRequest{
		Name:       req.Name,
		Tier:       req.Tier,
		HourlyRate: req.HourlyRate,
		Status:     req.Status,
	})
	if err != nil {
		respondError(c, err, "Could not update machine")
		return
	}

	c.JSON(http.StatusOK, dto.ToMachineResponse(machine))
}

// SetStatus handles the PATCH /api/machines/:id/status endpoint
func (h *MachineHandler) SetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetMachineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidInput),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	machine, err := h.machineService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err, "Could not change machine status")
		return
	}

	c.JSON(http.StatusOK, dto.ToMachineResponse(machine))
}

// Delete handles the DELETE /api/machines/:id endpoint
func (h *MachineHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.machineService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Could not delete machine")
		return
	}

	c.Status(http.StatusNoContent)
}
