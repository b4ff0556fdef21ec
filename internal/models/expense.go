package models

import "time"

// Expense represents a single spending record in the ledger.
//
// Category holds the free-text English category name as entered or
// imported; CategoryID is the explicit reference resolved at write time.
// Legacy rows may carry a name that matches no category row, which is
// tolerated: such expenses still aggregate under their free-text name.
type Expense struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Category    string    `gorm:"not null;index" json:"category"`
	CategoryID  *string   `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `json:"description"`

	// Relationships
	CategoryRef *Category `gorm:"foreignKey:CategoryID" json:"category_ref,omitempty"`
}

// CategoryName returns the effective category name of the expense:
// the linked category's English name when the reference is resolved,
// otherwise the stored free-text name.
func (e *Expense) CategoryName() string {
	if e.CategoryRef != nil && e.CategoryRef.NameEn != "" {
		return e.CategoryRef.NameEn
	}
	return e.Category
}
