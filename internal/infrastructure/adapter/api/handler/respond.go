package handler

import (
	"github.com/gin-gonic/gin"

	domainerr "github.com/krishkpatil/gaming-cafe/internal/domain/error"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
)

// respondError writes the standardized error response for a domain error,
// using the error's own HTTP status and application code
func respondError(c *gin.Context, err error, message string) {
	c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
