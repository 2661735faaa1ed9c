package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/auth"
)

// Context keys set by the auth middleware
const (
	ContextUserID  = "auth_user_id"
	ContextIsAdmin = "auth_is_admin"
)

// RequireAuth verifies the bearer token and stores the caller's identity
// in the request context
func RequireAuth(tokenMaker *auth.TokenMaker, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Invalid authorization header format",
			})
			return
		}

		claims, err := tokenMaker.Verify(parts[1])
		if err != nil {
			logger.Warn("Token verification failed", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin claim.
// It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidCredentials),
				Message: "Admin access required for this operation",
			})
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated caller's user ID from the context
func CallerID(c *gin.Context) uint64 {
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(uint64)
	return userID
}

// CallerIsAdmin reports whether the authenticated caller is an admin
func CallerIsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextIsAdmin)
}
