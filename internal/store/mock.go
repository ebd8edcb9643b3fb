package store

import (
	"fjacquet/budget-csv/internal/models"
)

// MockCategoryStore is a mock implementation of CategoryLoader for testing.
type MockCategoryStore struct {
	Categories          []models.CategoryConfig
	LoadCategoriesError error
	Calls               int
}

// LoadCategories returns the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	m.Calls++
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}
