package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
	"github.com/pwolarz/HomeFinance/internal/finance/infrastructure"
)

func newCategoryService() (*CategoryService, *infrastructure.MockCategoryRepository) {
	repo := &infrastructure.MockCategoryRepository{}
	return NewCategoryService(repo), repo
}

func TestCreateCategory(t *testing.T) {
	service, repo := newCategoryService()
	category := &domain.Category{Name: "Groceries", Type: domain.CategoryTypeExpense, Color: strPtr("#FF5733")}

	err := service.CreateCategory(context.Background(), testUserID, category)
	assert.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, testUserID, category.UserID)
	assert.Len(t, repo.Categories, 1)
}

func TestCreateCategory_InvalidType(t *testing.T) {
	service, _ := newCategoryService()
	err := service.CreateCategory(context.Background(), testUserID, &domain.Category{Name: "Groceries", Type: "savings"})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestCreateCategory_InvalidColor(t *testing.T) {
	service, _ := newCategoryService()
	for _, color := range []string{"FF5733", "#FF573", "#GG5733", "red"} {
		err := service.CreateCategory(context.Background(), testUserID, &domain.Category{
			Name: "Groceries", Type: domain.CategoryTypeExpense, Color: strPtr(color),
		})
		assert.True(t, financeErrors.IsValidationError(err), "color %q should be rejected", color)
	}
}

func TestCreateCategory_DuplicateNameConflicts(t *testing.T) {
	service, _ := newCategoryService()
	ctx := context.Background()

	err := service.CreateCategory(ctx, testUserID, &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense})
	assert.NoError(t, err)

	err = service.CreateCategory(ctx, testUserID, &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense})
	assert.True(t, financeErrors.IsConflictError(err))
}

func TestCreateCategory_SameNameDifferentUsers(t *testing.T) {
	service, _ := newCategoryService()
	ctx := context.Background()

	assert.NoError(t, service.CreateCategory(ctx, testUserID, &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense}))
	assert.NoError(t, service.CreateCategory(ctx, "other-user", &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense}))
}

func TestCreateCategory_NameReusableAfterSoftDelete(t *testing.T) {
	service, _ := newCategoryService()
	ctx := context.Background()

	first := &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense}
	assert.NoError(t, service.CreateCategory(ctx, testUserID, first))
	assert.NoError(t, service.DeleteCategory(ctx, testUserID, first.ID))

	err := service.CreateCategory(ctx, testUserID, &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense})
	assert.NoError(t, err)
}

func TestUpdateCategory_RenameToExistingConflicts(t *testing.T) {
	service, _ := newCategoryService()
	ctx := context.Background()

	rent := &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense}
	food := &domain.Category{Name: "Food", Type: domain.CategoryTypeExpense}
	assert.NoError(t, service.CreateCategory(ctx, testUserID, rent))
	assert.NoError(t, service.CreateCategory(ctx, testUserID, food))

	_, err := service.UpdateCategory(ctx, testUserID, food.ID, domain.CategoryUpdate{Name: strPtr("Rent")})
	assert.True(t, financeErrors.IsConflictError(err))

	// renaming to its own current name is not a conflict
	updated, err := service.UpdateCategory(ctx, testUserID, food.ID, domain.CategoryUpdate{Name: strPtr("Food")})
	assert.NoError(t, err)
	assert.Equal(t, "Food", updated.Name)
}

func TestUpdateCategory_NotFoundForForeignUser(t *testing.T) {
	service, _ := newCategoryService()
	ctx := context.Background()

	rent := &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense}
	assert.NoError(t, service.CreateCategory(ctx, testUserID, rent))

	_, err := service.UpdateCategory(ctx, "other-user", rent.ID, domain.CategoryUpdate{Name: strPtr("Theirs")})
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestGetCategories_TypeFilter(t *testing.T) {
	service, _ := newCategoryService()
	ctx := context.Background()

	assert.NoError(t, service.CreateCategory(ctx, testUserID, &domain.Category{Name: "Salary", Type: domain.CategoryTypeIncome}))
	assert.NoError(t, service.CreateCategory(ctx, testUserID, &domain.Category{Name: "Rent", Type: domain.CategoryTypeExpense}))

	income, err := service.GetCategories(ctx, testUserID, domain.CategoryTypeIncome)
	assert.NoError(t, err)
	assert.Len(t, income, 1)
	assert.Equal(t, "Salary", income[0].Name)

	all, err := service.GetCategories(ctx, testUserID, "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
