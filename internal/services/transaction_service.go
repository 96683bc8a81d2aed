package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// transactionService handles owner-scoped transaction access.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction persists a new transaction for the acting user. The
// date defaults to now when unset. An optional category must exist and be
// active.
func (s *transactionService) CreateTransaction(
	userID string,
	categoryID *string,
	transactionType models.TransactionType,
	amount float64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if transactionType != models.TransactionTypeIncome && transactionType != models.TransactionTypeExpense {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}

	if date.IsZero() {
		date = time.Now()
	}

	if categoryID != nil {
		if err := s.checkActiveCategory(*categoryID); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetUserTransactions lists the user's transactions with their categories,
// newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Category").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionsByDateRange lists the user's transactions whose date lies
// in [start, end] inclusive, newest first.
func (s *transactionService) GetTransactionsByDateRange(userID string, start, end time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Preload("Category").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a transaction matching both id and owner.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).
		Preload("Category").
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial patch. The UPDATE itself is scoped
// by id and owner and its affected-row count decides existence. The owner
// is never part of the patch.
func (s *transactionService) UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error) {
	updates := make(map[string]interface{})
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *patch.Amount
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description cannot be empty")
		}
		updates["description"] = *patch.Description
	}
	if patch.Type != nil {
		if *patch.Type != models.TransactionTypeIncome && *patch.Type != models.TransactionTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
		}
		updates["type"] = *patch.Type
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == "" {
			updates["category_id"] = nil
		} else {
			if err := s.checkActiveCategory(*patch.CategoryID); err != nil {
				return nil, err
			}
			updates["category_id"] = *patch.CategoryID
		}
	}

	if len(updates) == 0 {
		return s.GetTransactionByID(userID, transactionID)
	}

	res := s.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", transactionID, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction hard-deletes a transaction, scoped by id and owner.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	res := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func (s *transactionService) checkActiveCategory(categoryID string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
