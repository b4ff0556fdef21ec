// Package legacy imports expense ledgers from the old JSON file format
// (data/categories.json and data/expenses.json) into the database.
package legacy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"masareef/internal/logger"
	"masareef/internal/models"
)

const dateLayout = "2006-01-02"

// legacyCategory mirrors a record in the old categories.json file.
type legacyCategory struct {
	ID     string  `json:"id"`
	NameEn string  `json:"name_en"`
	NameAr string  `json:"name_ar"`
	Budget float64 `json:"budget"`
}

// legacyExpense mirrors a record in the old expenses.json file. The
// category field holds the English category name, not an ID.
type legacyExpense struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// Result reports what an import created.
type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	ExpensesCreated   int
}

// Importer loads a legacy JSON ledger into a user's account.
type Importer struct {
	db *gorm.DB
}

// NewImporter creates a new Importer
func NewImporter(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Import reads categories.json and expenses.json from dir and creates
// the corresponding rows for userID. Categories whose English name the
// user already has are skipped; their expenses are linked to the
// existing category. The whole import runs in one transaction.
func (i *Importer) Import(userID, dir string) (*Result, error) {
	cats, err := readLedgerFile[legacyCategory](filepath.Join(dir, "categories.json"))
	if err != nil {
		return nil, err
	}
	exps, err := readLedgerFile[legacyExpense](filepath.Join(dir, "expenses.json"))
	if err != nil {
		return nil, err
	}

	result := &Result{}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		// English name -> category ID, for linking expenses.
		byName := make(map[string]string)

		var existing []models.Category
		if err := tx.Where("user_id = ?", userID).Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load existing categories: %w", err)
		}
		for _, c := range existing {
			byName[c.NameEn] = c.ID
		}

		for _, lc := range cats {
			if lc.NameEn == "" {
				return fmt.Errorf("category %q has no name_en", lc.ID)
			}
			if _, ok := byName[lc.NameEn]; ok {
				result.CategoriesSkipped++
				continue
			}
			category := &models.Category{
				UserID: userID,
				NameEn: lc.NameEn,
				NameAr: lc.NameAr,
				Budget: lc.Budget,
			}
			if err := tx.Create(category).Error; err != nil {
				return fmt.Errorf("failed to create category %q: %w", lc.NameEn, err)
			}
			byName[lc.NameEn] = category.ID
			result.CategoriesCreated++
		}

		for _, le := range exps {
			date, err := time.ParseInLocation(dateLayout, le.Date, time.UTC)
			if err != nil {
				return fmt.Errorf("expense %q has invalid date %q: %w", le.ID, le.Date, err)
			}
			if le.Amount < 0 {
				return fmt.Errorf("expense %q has negative amount", le.ID)
			}

			expense := &models.Expense{
				UserID:      userID,
				Category:    le.Category,
				Amount:      le.Amount,
				Date:        date,
				Description: le.Description,
			}
			if id, ok := byName[le.Category]; ok {
				expense.CategoryID = &id
			} else {
				// Old ledgers allowed free-text categories; keep the
				// name without a link.
				logger.Get().Warnf("Expense %s references unknown category %q", le.ID, le.Category)
			}
			if err := tx.Create(expense).Error; err != nil {
				return fmt.Errorf("failed to create expense %q: %w", le.ID, err)
			}
			result.ExpensesCreated++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// readLedgerFile decodes a JSON array file. A missing file is treated
// as an empty ledger, matching the old application's behavior.
func readLedgerFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}
