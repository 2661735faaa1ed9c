package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	ledgerUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/ledger"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler handles ledger-related HTTP requests
type TransactionHandler struct {
	ledgerService *ledgerUseCase.Service
	logger        coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(ledgerService *ledgerUseCase.Service, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// List handles the GET /api/transactions endpoint
func (h *TransactionHandler) List(c *gin.Context) {
	transactions, err := h.ledgerService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Could not list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionListResponse(transactions))
}
