package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Category struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"` // "income" or "expense"
	Color     *string    `json:"color,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CategoryUpdate carries a partial update. Nil means the field was not
// supplied and the stored value stays untouched.
type CategoryUpdate struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Color *string `json:"color"`
}

type CategoryRepository interface {
	Save(ctx context.Context, category Category) error
	FindByUser(ctx context.Context, userID, categoryType string) ([]Category, error)
	FindByUserAndID(ctx context.Context, userID, categoryID string) (*Category, error)
	FindByUserAndName(ctx context.Context, userID, name, excludeID string) (*Category, error)
	Update(ctx context.Context, categoryID string, update CategoryUpdate) (*Category, error)
	SoftDelete(ctx context.Context, categoryID string) error
}

func IsValidCategoryType(categoryType string) bool {
	return categoryType == CategoryTypeIncome || categoryType == CategoryTypeExpense
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return financeErrors.NewValidationError("Category name is required and cannot be empty")
	}
	return nil
}

func validateCategoryColor(color *string) error {
	if color != nil && !hexColorPattern.MatchString(*color) {
		return financeErrors.NewValidationError("Color must be a valid hex color code (e.g. '#FF5733')")
	}
	return nil
}

func (c *Category) Validate() error {
	if !IsValidCategoryType(c.Type) {
		return financeErrors.NewValidationError("Category type must be 'income' or 'expense'")
	}
	if err := validateCategoryName(c.Name); err != nil {
		return err
	}
	return validateCategoryColor(c.Color)
}

// Validate checks only the supplied fields.
func (u CategoryUpdate) Validate() error {
	if u.Type != nil && !IsValidCategoryType(*u.Type) {
		return financeErrors.NewValidationError("Category type must be 'income' or 'expense'")
	}
	if u.Name != nil {
		if err := validateCategoryName(*u.Name); err != nil {
			return err
		}
	}
	return validateCategoryColor(u.Color)
}

func (u CategoryUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil && u.Color == nil
}
