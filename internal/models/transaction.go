package models

import "time"

// TransactionType restricts transactions to the two-value enumeration.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense record. Every transaction is
// owned by exactly one user; UserID is set at creation and never updated.
// Transactions are hard-deleted on removal.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *string         `gorm:"type:uuid" json:"category_id,omitempty"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      float64         `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
