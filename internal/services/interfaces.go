package services

import (
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for credential-store business logic.
type UserServicer interface {
	CreateUser(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryPatch holds the optional fields of a category update. Nil fields
// are left untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// CategoryServicer defines the contract for category-store business logic.
type CategoryServicer interface {
	CreateCategory(name, description string) (*models.Category, error)
	GetActiveCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	UpdateCategory(id string, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(id string) error
}

// TransactionPatch holds the optional fields of a transaction update. The
// owner is deliberately absent: ownership is immutable after creation.
// A non-nil CategoryID pointing at the empty string clears the category.
type TransactionPatch struct {
	Amount      *float64
	Description *string
	Type        *models.TransactionType
	Date        *time.Time
	CategoryID  *string
}

// TransactionServicer defines the contract for owner-scoped transaction
// access. Every operation filters by the acting user's id; acting on
// another user's transaction is indistinguishable from it not existing.
type TransactionServicer interface {
	CreateTransaction(userID string, categoryID *string, transactionType models.TransactionType, amount float64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionsByDateRange(userID string, start, end time.Time) ([]models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// TransactionSource is the read interface the dashboard aggregates over.
// Production wires the transaction service; tests wire an in-memory
// fixture, so the folds behave identically regardless of transport.
type TransactionSource interface {
	GetTransactionsByDateRange(userID string, start, end time.Time) ([]models.Transaction, error)
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	GetStats(userID, dateRange string) (*DashboardStats, error)
	GetCategoryExpenses(userID, dateRange string) ([]CategoryExpense, error)
	GetMonthlyExpenses(userID string, year int) ([]MonthlyExpense, error)
	GetRecentTransactions(userID string, limit int) ([]models.Transaction, error)
}
