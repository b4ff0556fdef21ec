package models

// Category represents an expense category with an optional monthly budget.
// A budget of 0 means the category has no spending ceiling.
type Category struct {
	Base
	UserID string  `gorm:"type:uuid;not null;index" json:"user_id"`
	NameEn string  `gorm:"not null" json:"name_en"`
	NameAr string  `gorm:"not null" json:"name_ar"`
	Budget float64 `gorm:"not null;default:0" json:"budget"`

	// Relationships
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}

// DisplayName returns the Arabic name used for user-facing messages,
// falling back to the English name when no translation is set.
func (c *Category) DisplayName() string {
	if c.NameAr != "" {
		return c.NameAr
	}
	return c.NameEn
}
