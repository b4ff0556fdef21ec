package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "masareef/internal/errors"
	"masareef/internal/models"
	"masareef/internal/pagination"
)

// defaultCategories is the seed set every new user starts with.
// A budget of 0 means the category has no ceiling.
var defaultCategories = []models.Category{
	{NameEn: "Food", NameAr: "طعام", Budget: 1000},
	{NameEn: "Transport", NameAr: "نقل", Budget: 500},
	{NameEn: "Shopping", NameAr: "تسوق", Budget: 800},
	{NameEn: "Bills", NameAr: "فواتير", Budget: 1200},
	{NameEn: "Entertainment", NameAr: "ترفيه", Budget: 400},
	{NameEn: "Health", NameAr: "صحة", Budget: 600},
	{NameEn: "Education", NameAr: "تعليم", Budget: 700},
	{NameEn: "Other", NameAr: "أخرى", Budget: 0},
}

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(userID, nameEn, nameAr string, budget float64) (*models.Category, error) {
	// Validate input
	if nameEn == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if budget < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget must not be negative")
	}

	// Check if a category with the same name already exists for this user
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name_en = ?", userID, nameEn).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{
		UserID: userID,
		NameEn: nameEn,
		NameAr: nameAr,
		Budget: budget,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetUserCategories retrieves a paginated list of categories for a user.
func (s *categoryService) GetUserCategories(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Category{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Order("name_en").Scopes(pagination.Paginate(page)).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAllUserCategories returns every category of the user, unpaginated.
// The analytics engine consumes the full list.
func (s *categoryService) GetAllUserCategories(userID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("name_en").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID for a specific user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetCategoryByName retrieves a category by its English name.
func (s *categoryService) GetCategoryByName(userID, nameEn string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("user_id = ? AND name_en = ?", userID, nameEn).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates an existing category
func (s *categoryService) UpdateCategory(userID, categoryID, nameEn, nameAr string, budget *float64) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if nameEn != "" && nameEn != category.NameEn {
		// Renaming must not collide with another category of the user.
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("user_id = ? AND name_en = ? AND id <> ?", userID, nameEn, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrDuplicateCategory
		}
		updates["name_en"] = nameEn
	}
	if nameAr != "" {
		updates["name_ar"] = nameAr
	}
	if budget != nil {
		if *budget < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget must not be negative")
		}
		updates["budget"] = *budget
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory soft-deletes a category together with its expenses.
// The cascade covers expenses linked by id and legacy rows that match
// the category's English name.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND (category_id = ? OR category = ?)",
			userID, categoryID, category.NameEn).
			Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults creates the default category set for a user that has no
// categories yet. Called on registration and from the bootstrap command.
func (s *categoryService) SeedDefaults(userID string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil
	}

	categories := make([]models.Category, len(defaultCategories))
	copy(categories, defaultCategories)
	for i := range categories {
		categories[i].UserID = userID
	}

	if err := s.db.Create(&categories).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
