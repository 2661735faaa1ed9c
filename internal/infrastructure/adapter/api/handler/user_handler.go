package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	ledgerUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/ledger"
	userUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/user"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/middleware"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/auth"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/avatar"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService   *userUseCase.Service
	ledgerService *ledgerUseCase.Service
	logger        coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userService *userUseCase.Service,
	ledgerService *ledgerUseCase.Service,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userService:   userService,
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// List handles the GET /api/users endpoint
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// Profile handles the GET /api/users/me endpoint
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Get handles the GET /api/users/:id endpoint
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// Create handles the POST /api/users endpoint
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidInput),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", map[string]any{
			"username": req.Username,
			"error":    err.Error(),
		})
		respondError(c, domainerr.ErrInternalServer, "Internal server error")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), userUseCase.CreateRequest{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Gender:         req.Gender,
		AvatarURL:      avatar.URL(req.Username, req.Gender),
		IsAdmin:        req.IsAdmin,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		respondError(c, err, "Could not create user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Delete handles the DELETE /api/users/:id endpoint
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Could not delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

// AddBalance handles the POST /api/users/:id/balance endpoint
func (h *UserHandler) AddBalance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidAmount),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	txn, err := h.ledgerService.Deposit(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondError(c, err, "Could not add balance")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:      id,
		Balance:     user.Balance(),
		Transaction: dto.ToTransactionResponse(txn),
	})
}

// Transactions handles the GET /api/users/:id/transactions endpoint
func (h *UserHandler) Transactions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	// Regular users may only read their own ledger
	if !middleware.CallerIsAdmin(c) && middleware.CallerID(c) != id {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
			Message: "You don't have permission to view these transactions",
		})
		return
	}

	transactions, err := h.ledgerService.ListByUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Could not list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionListResponse(transactions))
}

// parseID extracts a numeric path parameter, writing the error response
// itself when the value is malformed
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidInput),
			Message: "Invalid ID format",
		})
		return 0, false
	}
	return id, true
}
