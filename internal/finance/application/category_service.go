package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID string, category *domain.Category) error {
	category.ID = uuid.NewString()
	category.UserID = userID

	if err := category.Validate(); err != nil {
		return err
	}
	if err := s.checkNameUnique(ctx, userID, category.Name, ""); err != nil {
		return err
	}

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now
	return s.repo.Save(ctx, *category)
}

func (s *CategoryService) GetCategories(ctx context.Context, userID, categoryType string) ([]domain.Category, error) {
	categories, err := s.repo.FindByUser(ctx, userID, categoryType)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.repo.FindByUserAndID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, financeErrors.ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID string, update domain.CategoryUpdate) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if err := update.Validate(); err != nil {
		return nil, err
	}
	if update.Name != nil {
		if err := s.checkNameUnique(ctx, userID, *update.Name, categoryID); err != nil {
			return nil, err
		}
	}

	if update.Empty() {
		return category, nil
	}

	updated, err := s.repo.Update(ctx, categoryID, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, financeErrors.ErrCategoryNotFound
	}
	return updated, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if _, err := s.GetCategory(ctx, userID, categoryID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, categoryID)
}

// Uniqueness is scoped per user and to non-deleted rows; excludeID skips the
// record's own row on update.
func (s *CategoryService) checkNameUnique(ctx context.Context, userID, name, excludeID string) error {
	existing, err := s.repo.FindByUserAndName(ctx, userID, name, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return financeErrors.NewDuplicateNameError("Category", name)
	}
	return nil
}
