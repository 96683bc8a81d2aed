package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// TransactionHandler handles owner-scoped transaction requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest is the payload for creating a transaction.
type CreateTransactionRequest struct {
	Amount      float64                `json:"amount" binding:"required,gt=0"`
	Description string                 `json:"description" binding:"required,max=500"`
	Type        models.TransactionType `json:"type" binding:"required,transaction_type"`
	Date        *string                `json:"date"`
	CategoryID  *string                `json:"category_id" binding:"omitempty,uuid"`
}

// UpdateTransactionRequest is the partial-patch payload for a transaction.
// Sending "category_id": "" detaches the transaction from its category.
type UpdateTransactionRequest struct {
	Amount      *float64                `json:"amount" binding:"omitempty,gt=0"`
	Description *string                 `json:"description" binding:"omitempty,max=500"`
	Type        *models.TransactionType `json:"type" binding:"omitempty,transaction_type"`
	Date        *string                 `json:"date"`
	CategoryID  *string                 `json:"category_id" binding:"omitempty,uuid"`
}

// DateRangeRequest holds the inclusive interval query parameters.
type DateRangeRequest struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
}

// CreateTransaction creates a transaction owned by the authenticated user.
// The date defaults to now when omitted.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, _, parseErr := parseFlexibleDate(*req.Date)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		date = parsed
	}

	transaction, err := h.transactionService.CreateTransaction(
		userID,
		req.CategoryID,
		req.Type,
		req.Amount,
		req.Description,
		date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists the user's transactions, newest first, paginated.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionsByDateRange lists the user's transactions within an
// inclusive date interval. A date-only end bound covers its whole day.
func (h *TransactionHandler) GetTransactionsByDateRange(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	start, _, err := parseFlexibleDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	end, dateOnly, err := parseFlexibleDate(req.EndDate)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if dateOnly {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "end_date must not be before start_date"))
		return
	}

	transactions, err := h.transactionService.GetTransactionsByDateRange(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// GetTransactionByID returns one of the user's transactions.
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction applies a partial patch to one of the user's
// transactions and returns the updated row.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.TransactionPatch{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
		CategoryID:  req.CategoryID,
	}
	if req.Date != nil && *req.Date != "" {
		parsed, _, parseErr := parseFlexibleDate(*req.Date)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		patch.Date = &parsed
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction hard-deletes one of the user's transactions.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
