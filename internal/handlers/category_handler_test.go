package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
)

type mockCategoryService struct {
	createCategoryFn      func(name, description string) (*models.Category, error)
	getActiveCategoriesFn func() ([]models.Category, error)
	getCategoryByIDFn     func(id string) (*models.Category, error)
	updateCategoryFn      func(id string, patch services.CategoryPatch) (*models.Category, error)
	deleteCategoryFn      func(id string) error
}

func (m *mockCategoryService) CreateCategory(name, description string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name, description)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetActiveCategories() ([]models.Category, error) {
	if m.getActiveCategoriesFn != nil {
		return m.getActiveCategoriesFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(id string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(id)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(id string, patch services.CategoryPatch) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, patch)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.POST("/categories", handler.CreateCategory)
	r.GET("/categories", handler.GetCategories)
	r.GET("/categories/:id", handler.GetCategoryByID)
	r.PATCH("/categories/:id", handler.UpdateCategory)
	r.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(name, description string) (*models.Category, error) {
				return &models.Category{Name: name, Description: description, IsActive: true}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "POST", "/categories", `{"name":"Food","description":"Groceries and dining"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		category := result["category"].(map[string]interface{})
		if category["name"] != "Food" {
			t.Errorf("expected Food, got %v", category["name"])
		}
		if category["is_active"] != true {
			t.Error("expected new category to be active")
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories", `{"description":"no name"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCategoryHandler_GetCategories(t *testing.T) {
	t.Run("returns active categories", func(t *testing.T) {
		svc := &mockCategoryService{
			getActiveCategoriesFn: func() ([]models.Category, error) {
				return []models.Category{
					{Name: "Food", IsActive: true},
					{Name: "Transport", IsActive: true},
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		categories := result["categories"].([]interface{})
		if len(categories) != 2 {
			t.Errorf("expected 2 categories, got %d", len(categories))
		}
	})
}

func TestCategoryHandler_GetCategoryByID(t *testing.T) {
	t.Run("returns 404 on unknown id", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryByIDFn: func(string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "GET", "/categories/unknown", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("passes through partial patch", func(t *testing.T) {
		var captured services.CategoryPatch
		svc := &mockCategoryService{
			updateCategoryFn: func(_ string, patch services.CategoryPatch) (*models.Category, error) {
				captured = patch
				return &models.Category{Name: *patch.Name, IsActive: true}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "PATCH", "/categories/some-id", `{"name":"Dining"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Name == nil || *captured.Name != "Dining" {
			t.Error("expected name in patch")
		}
		if captured.Description != nil || captured.IsActive != nil {
			t.Error("unset fields must stay nil in the patch")
		}
	})

	t.Run("returns 404 on unknown id", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(string, services.CategoryPatch) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "PATCH", "/categories/unknown", `{"name":"Dining"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var deletedID string
		svc := &mockCategoryService{
			deleteCategoryFn: func(id string) error {
				deletedID = id
				return nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "DELETE", "/categories/some-id", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deletedID != "some-id" {
			t.Errorf("expected delete for some-id, got %q", deletedID)
		}
	})

	t.Run("returns 404 on unknown id", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(string) error {
				return apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, "DELETE", "/categories/unknown", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
