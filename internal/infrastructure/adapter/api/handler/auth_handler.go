package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	userUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/user"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/auth"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/avatar"
)

// AuthHandler handles signup and login requests
type AuthHandler struct {
	userService *userUseCase.Service
	tokenMaker  *auth.TokenMaker
	logger      coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(
	userService *userUseCase.Service,
	tokenMaker *auth.TokenMaker,
	logger coreport.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokenMaker:  tokenMaker,
		logger:      logger,
	}
}

// Signup handles the POST /api/auth/signup endpoint
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
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
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Gender:       req.Gender,
		AvatarURL:    avatar.URL(req.Username, req.Gender),
	})
	if err != nil {
		if errors.Is(err, domainerr.ErrDuplicateUser) {
			respondError(c, err, "Username or email already taken")
			return
		}
		respondError(c, err, "Could not create account")
		return
	}

	token, err := h.tokenMaker.Generate(user.ID, user.IsAdmin)
	if err != nil {
		h.logger.Error("Failed to generate token", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respondError(c, domainerr.ErrInternalServer, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, dto.LoginResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	})
}

// Login handles the POST /api/auth/login endpoint
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidInput),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// Do not reveal whether the username exists
		respondError(c, domainerr.ErrInvalidCredentials, "Invalid username or password")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(c, domainerr.ErrInvalidCredentials, "Invalid username or password")
		return
	}

	token, err := h.tokenMaker.Generate(user.ID, user.IsAdmin)
	if err != nil {
		h.logger.Error("Failed to generate token", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respondError(c, domainerr.ErrInternalServer, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	})
}
