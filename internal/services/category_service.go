package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// categoryService handles the shared category store.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new active category.
func (s *categoryService) CreateCategory(name, description string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := &models.Category{
		Name:        name,
		Description: description,
		IsActive:    true,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetActiveCategories lists active categories ordered by name.
func (s *categoryService) GetActiveCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID, active or not.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies a partial patch. The UPDATE is scoped by id and
// its affected-row count decides existence, so a row deleted between any
// prior check and the write still surfaces as not-found.
func (s *categoryService) UpdateCategory(id string, patch CategoryPatch) (*models.Category, error) {
	updates := make(map[string]interface{})
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) == 0 {
		return s.GetCategoryByID(id)
	}

	res := s.db.Model(&models.Category{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrCategoryNotFound
	}

	return s.GetCategoryByID(id)
}

// DeleteCategory soft-deletes a category by flipping is_active. The row is
// retained and referencing transactions keep their category.
func (s *categoryService) DeleteCategory(id string) error {
	res := s.db.Model(&models.Category{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
