package interfaces

import (
	"context"
	"errors"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

type MockCategoryService struct {
	categories []domain.Category
	category   *domain.Category
	err        error
	shouldFail bool
}

func (m *MockCategoryService) CreateCategory(_ context.Context, userID string, category *domain.Category) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	if m.err != nil {
		return m.err
	}
	category.ID = "generated-id"
	category.UserID = userID
	return nil
}

func (m *MockCategoryService) GetCategories(_ context.Context, _, _ string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.categories, nil
}

func (m *MockCategoryService) GetCategory(_ context.Context, _, _ string) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *MockCategoryService) UpdateCategory(_ context.Context, _, _ string, _ domain.CategoryUpdate) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.category, nil
}

func (m *MockCategoryService) DeleteCategory(_ context.Context, _, _ string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return m.err
}
