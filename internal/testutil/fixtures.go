package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"masareef/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique
// username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n))
}

// CreateTestUserWithName creates a user with the given username and email.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with the given budget and a
// unique English name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, budget float64) *models.Category {
	t.Helper()
	n := nextID()
	return CreateTestNamedCategory(t, db, userID, fmt.Sprintf("Test Category %d", n), fmt.Sprintf("فئة %d", n), budget)
}

// CreateTestNamedCategory creates a category with explicit names and budget.
func CreateTestNamedCategory(t *testing.T, db *gorm.DB, userID, nameEn, nameAr string, budget float64) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		NameEn: nameEn,
		NameAr: nameAr,
		Budget: budget,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense with a free-text category name.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, category string, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestLinkedExpense creates an expense linked to a category row.
func CreateTestLinkedExpense(t *testing.T, db *gorm.DB, userID string, category *models.Category, amount float64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:     userID,
		Category:   category.NameEn,
		CategoryID: &category.ID,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// Date builds a calendar date at midnight UTC, how expense dates are stored.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
