package models

// Category is a shared, soft-deletable tag for transactions. Removal flips
// IsActive instead of deleting the row so historical transactions keep
// their reference.
type Category struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
