package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	sessionUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/session"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
)

// SessionHandler handles session-related HTTP requests
type SessionHandler struct {
	engine *sessionUseCase.Engine
	logger coreport.Logger
}

// NewSessionHandler creates a new session handler instance
func NewSessionHandler(engine *sessionUseCase.Engine, logger coreport.Logger) *SessionHandler {
	return &SessionHandler{
		engine: engine,
		logger: logger,
	}
}

// List handles the GET /api/sessions endpoint
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.engine.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not list sessions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionListResponse(sessions))
}

// ListActive handles the GET /api/sessions/active endpoint
func (h *SessionHandler) ListActive(c *gin.Context) {
	sessions, err := h.engine.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not list active sessions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSessionListResponse(sessions))
}

// Start handles the POST /api/sessions/start endpoint
func (h *SessionHandler) Start(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidInput),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	session, err := h.engine.Start(c.Request.Context(), req.UserID, req.MachineID)
	if err != nil {
		switch {
		case domainerr.IsInsufficientBalance(err):
			respondError(c, err, "Balance must be positive to start a session")
		case domainerr.IsConflict(err):
			respondError(c, err, "Machine is not available")
		default:
			respondError(c, err, "Could not start session")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// End handles the POST /api/sessions/:id/end endpoint
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	session, txn, err := h.engine.End(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Could not end session")
		return
	}

	c.JSON(http.StatusOK, dto.EndSessionResponse{
		Session:     dto.ToSessionResponse(session),
		Transaction: dto.ToTransactionResponse(txn),
	})
}
