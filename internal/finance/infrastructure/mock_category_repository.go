package infrastructure

import (
	"context"
	"time"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

type MockCategoryRepository struct {
	Categories []domain.Category

	SaveErr error
}

func (m *MockCategoryRepository) Save(_ context.Context, category domain.Category) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Categories = append(m.Categories, category)
	return nil
}

func (m *MockCategoryRepository) FindByUser(_ context.Context, userID, categoryType string) ([]domain.Category, error) {
	var categories []domain.Category
	for _, category := range m.Categories {
		if category.UserID != userID || category.DeletedAt != nil {
			continue
		}
		if categoryType != "" && category.Type != categoryType {
			continue
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (m *MockCategoryRepository) FindByUserAndID(_ context.Context, userID, categoryID string) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.ID == categoryID && category.UserID == userID && category.DeletedAt == nil {
			found := category
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindByUserAndName(_ context.Context, userID, name, excludeID string) (*domain.Category, error) {
	for _, category := range m.Categories {
		if category.UserID != userID || category.DeletedAt != nil {
			continue
		}
		if category.Name != name || category.ID == excludeID {
			continue
		}
		found := category
		return &found, nil
	}
	return nil, nil
}

func (m *MockCategoryRepository) Update(_ context.Context, categoryID string, update domain.CategoryUpdate) (*domain.Category, error) {
	for i := range m.Categories {
		category := &m.Categories[i]
		if category.ID != categoryID || category.DeletedAt != nil {
			continue
		}
		if update.Name != nil {
			category.Name = *update.Name
		}
		if update.Type != nil {
			category.Type = *update.Type
		}
		if update.Color != nil {
			category.Color = update.Color
		}
		category.UpdatedAt = time.Now().UTC()
		found := *category
		return &found, nil
	}
	return nil, nil
}

func (m *MockCategoryRepository) SoftDelete(_ context.Context, categoryID string) error {
	for i := range m.Categories {
		if m.Categories[i].ID == categoryID && m.Categories[i].DeletedAt == nil {
			now := time.Now().UTC()
			m.Categories[i].DeletedAt = &now
			return nil
		}
	}
	return nil
}
