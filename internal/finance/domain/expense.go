package domain

import (
	"context"
	"strings"
	"time"

	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

const (
	ExpenseTypeOngoing     = "ongoing"
	ExpenseTypeInstallment = "installment"
)

// Expense is a recurring expense definition. An ongoing expense generates
// transactions indefinitely while active; an installment expense carries a
// fixed total payment count and deactivates itself once it is reached.
type Expense struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Name              string     `json:"name"`
	Amount            *float64   `json:"amount,omitempty"`
	CategoryID        string     `json:"category_id"`
	DayOfMonth        int        `json:"day_of_month"`
	ExpenseType       string     `json:"expense_type"` // "ongoing" or "installment"
	StartDate         time.Time  `json:"start_date"`
	TotalPayments     *int       `json:"total_payments,omitempty"`
	PaymentsCompleted int        `json:"payments_completed"`
	IsActive          bool       `json:"is_active"`
	Notes             *string    `json:"notes,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
}

// ExpenseUpdate carries a partial update. Nil means the field was not
// supplied, which is distinct from an explicit zero value.
type ExpenseUpdate struct {
	Name          *string    `json:"name"`
	Amount        *float64   `json:"amount"`
	CategoryID    *string    `json:"category_id"`
	DayOfMonth    *int       `json:"day_of_month"`
	ExpenseType   *string    `json:"expense_type"`
	StartDate     *time.Time `json:"start_date"`
	TotalPayments *int       `json:"total_payments"`
	IsActive      *bool      `json:"is_active"`
	Notes         *string    `json:"notes"`
}

type ExpenseRepository interface {
	Save(ctx context.Context, expense Expense) error
	FindByUser(ctx context.Context, userID string, isActive *bool) ([]Expense, error)
	FindByUserAndID(ctx context.Context, userID, expenseID string) (*Expense, error)
	Update(ctx context.Context, expenseID string, update ExpenseUpdate) (*Expense, error)
	SoftDelete(ctx context.Context, expenseID string) error
	// RecordPaymentTx applies the payment-progress update inside the given
	// storage transaction so it commits or rolls back together with the
	// generated ledger entry.
	RecordPaymentTx(ctx context.Context, tx Tx, expenseID string, paymentsCompleted int, isActive bool) error
}

func IsValidExpenseType(expenseType string) bool {
	return expenseType == ExpenseTypeOngoing || expenseType == ExpenseTypeInstallment
}

func validateDayOfMonth(dayOfMonth int) error {
	if dayOfMonth < 1 || dayOfMonth > 31 {
		return financeErrors.NewValidationError("Day of month must be between 1 and 31")
	}
	return nil
}

// validateTotalPayments enforces the cross-field rule: installment expenses
// require total_payments > 0, ongoing expenses must not carry one.
func validateTotalPayments(expenseType string, totalPayments *int) error {
	switch expenseType {
	case ExpenseTypeInstallment:
		if totalPayments == nil || *totalPayments <= 0 {
			return financeErrors.NewValidationError("total_payments is required for installment expenses and must be greater than 0")
		}
	case ExpenseTypeOngoing:
		if totalPayments != nil {
			return financeErrors.NewValidationError("total_payments should not be set for ongoing expenses")
		}
	}
	return nil
}

func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return financeErrors.NewValidationError("Expense name is required and cannot be empty")
	}
	if !IsValidExpenseType(e.ExpenseType) {
		return financeErrors.NewValidationError("Expense type must be 'ongoing' or 'installment'")
	}
	if err := validateDayOfMonth(e.DayOfMonth); err != nil {
		return err
	}
	return validateTotalPayments(e.ExpenseType, e.TotalPayments)
}

// Validate checks only the supplied fields. The total_payments cross-field
// rule needs the stored record and lives in ValidateTotalPayments.
func (u ExpenseUpdate) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return financeErrors.NewValidationError("Expense name is required and cannot be empty")
	}
	if u.ExpenseType != nil && !IsValidExpenseType(*u.ExpenseType) {
		return financeErrors.NewValidationError("Expense type must be 'ongoing' or 'installment'")
	}
	if u.DayOfMonth != nil {
		return validateDayOfMonth(*u.DayOfMonth)
	}
	return nil
}

// ValidateTotalPayments re-checks the cross-field rule against the effective
// expense type: the supplied one if present, else the stored one.
func (u ExpenseUpdate) ValidateTotalPayments(currentType string) error {
	if u.ExpenseType == nil && u.TotalPayments == nil {
		return nil
	}
	effectiveType := currentType
	if u.ExpenseType != nil {
		effectiveType = *u.ExpenseType
	}
	if u.TotalPayments != nil {
		return validateTotalPayments(effectiveType, u.TotalPayments)
	}
	return nil
}

func (u ExpenseUpdate) Empty() bool {
	return u.Name == nil && u.Amount == nil && u.CategoryID == nil &&
		u.DayOfMonth == nil && u.ExpenseType == nil && u.StartDate == nil &&
		u.TotalPayments == nil && u.IsActive == nil && u.Notes == nil
}
