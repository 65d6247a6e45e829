package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
	"github.com/pwolarz/HomeFinance/internal/finance/infrastructure"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

type expenseFixture struct {
	service         *ExpenseService
	expenseRepo     *infrastructure.MockExpenseRepository
	transactionRepo *infrastructure.MockTransactionRepository
	categoryRepo    *infrastructure.MockCategoryRepository
	category        domain.Category
}

func newExpenseFixture() *expenseFixture {
	categoryRepo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: "cat-rent", UserID: testUserID, Name: "Rent", Type: domain.CategoryTypeExpense},
		},
	}
	expenseRepo := &infrastructure.MockExpenseRepository{}
	transactionRepo := &infrastructure.MockTransactionRepository{}
	service := NewExpenseService(expenseRepo, transactionRepo, NewCategoryService(categoryRepo))
	return &expenseFixture{
		service:         service,
		expenseRepo:     expenseRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		category:        categoryRepo.Categories[0],
	}
}

func (f *expenseFixture) createInstallment(t *testing.T, totalPayments int) *domain.Expense {
	t.Helper()
	expense := &domain.Expense{
		Name:          "Rent",
		CategoryID:    f.category.ID,
		DayOfMonth:    1,
		ExpenseType:   domain.ExpenseTypeInstallment,
		StartDate:     date(2024, time.January, 1),
		TotalPayments: intPtr(totalPayments),
	}
	err := f.service.CreateExpense(context.Background(), testUserID, expense)
	assert.NoError(t, err)
	return expense
}

func (f *expenseFixture) createOngoing(t *testing.T) *domain.Expense {
	t.Helper()
	expense := &domain.Expense{
		Name:        "Electricity",
		Amount:      floatPtr(85.50),
		CategoryID:  f.category.ID,
		DayOfMonth:  10,
		ExpenseType: domain.ExpenseTypeOngoing,
		StartDate:   date(2024, time.January, 1),
	}
	err := f.service.CreateExpense(context.Background(), testUserID, expense)
	assert.NoError(t, err)
	return expense
}

func TestCreateExpense_SetsInitialState(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 3)

	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, testUserID, expense.UserID)
	assert.Equal(t, 0, expense.PaymentsCompleted)
	assert.True(t, expense.IsActive)
	assert.Len(t, f.expenseRepo.Expenses, 1)
}

func TestCreateExpense_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		expense domain.Expense
	}{
		{
			name: "installment without total_payments",
			expense: domain.Expense{
				Name: "Rent", CategoryID: "cat-rent", DayOfMonth: 1,
				ExpenseType: domain.ExpenseTypeInstallment, StartDate: date(2024, time.January, 1),
			},
		},
		{
			name: "installment with zero total_payments",
			expense: domain.Expense{
				Name: "Rent", CategoryID: "cat-rent", DayOfMonth: 1,
				ExpenseType: domain.ExpenseTypeInstallment, StartDate: date(2024, time.January, 1),
				TotalPayments: intPtr(0),
			},
		},
		{
			name: "ongoing with total_payments",
			expense: domain.Expense{
				Name: "Rent", CategoryID: "cat-rent", DayOfMonth: 1,
				ExpenseType: domain.ExpenseTypeOngoing, StartDate: date(2024, time.January, 1),
				TotalPayments: intPtr(12),
			},
		},
		{
			name: "unknown expense type",
			expense: domain.Expense{
				Name: "Rent", CategoryID: "cat-rent", DayOfMonth: 1,
				ExpenseType: "weekly", StartDate: date(2024, time.January, 1),
			},
		},
		{
			name: "day of month out of range",
			expense: domain.Expense{
				Name: "Rent", CategoryID: "cat-rent", DayOfMonth: 32,
				ExpenseType: domain.ExpenseTypeOngoing, StartDate: date(2024, time.January, 1),
			},
		},
		{
			name: "empty name",
			expense: domain.Expense{
				Name: "  ", CategoryID: "cat-rent", DayOfMonth: 1,
				ExpenseType: domain.ExpenseTypeOngoing, StartDate: date(2024, time.January, 1),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newExpenseFixture()
			expense := tc.expense
			err := f.service.CreateExpense(context.Background(), testUserID, &expense)
			assert.True(t, financeErrors.IsValidationError(err), "expected ValidationError, got: %v", err)
			assert.Empty(t, f.expenseRepo.Expenses)
		})
	}
}

func TestCreateExpense_UnknownCategoryFailsNotFound(t *testing.T) {
	f := newExpenseFixture()
	expense := &domain.Expense{
		Name: "Rent", CategoryID: "cat-missing", DayOfMonth: 1,
		ExpenseType: domain.ExpenseTypeOngoing, StartDate: date(2024, time.January, 1),
	}
	err := f.service.CreateExpense(context.Background(), testUserID, expense)
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestCreateExpense_ForeignCategoryFailsNotFound(t *testing.T) {
	f := newExpenseFixture()
	f.categoryRepo.Categories = append(f.categoryRepo.Categories, domain.Category{
		ID: "cat-foreign", UserID: "someone-else", Name: "Rent", Type: domain.CategoryTypeExpense,
	})
	expense := &domain.Expense{
		Name: "Rent", CategoryID: "cat-foreign", DayOfMonth: 1,
		ExpenseType: domain.ExpenseTypeOngoing, StartDate: date(2024, time.January, 1),
	}
	err := f.service.CreateExpense(context.Background(), testUserID, expense)
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestGenerateTransaction_InstallmentLifecycle(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		transaction, err := f.service.GenerateTransaction(ctx, testUserID, expense.ID, date(2024, time.Month(i), 1), nil)
		assert.NoError(t, err)
		assert.NotNil(t, transaction.ExpenseID)
		assert.Equal(t, expense.ID, *transaction.ExpenseID)

		stored, err := f.service.GetExpense(ctx, testUserID, expense.ID)
		assert.NoError(t, err)
		assert.Equal(t, i, stored.PaymentsCompleted)
		assert.LessOrEqual(t, stored.PaymentsCompleted, *stored.TotalPayments)
		// the expense deactivates exactly on the last payment, not before
		assert.Equal(t, i == 3, !stored.IsActive)
	}

	assert.Len(t, f.transactionRepo.Transactions, 3)
}

func TestGenerateTransaction_InactiveFailsWithStateError(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 1)
	ctx := context.Background()

	_, err := f.service.GenerateTransaction(ctx, testUserID, expense.ID, date(2024, time.January, 1), nil)
	assert.NoError(t, err)

	_, err = f.service.GenerateTransaction(ctx, testUserID, expense.ID, date(2024, time.February, 1), nil)
	assert.True(t, financeErrors.IsStateError(err), "expected StateError, got: %v", err)
	assert.Len(t, f.transactionRepo.Transactions, 1)
}

func TestGenerateTransaction_DeactivatedOngoingFailsWithStateError(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createOngoing(t)
	ctx := context.Background()

	_, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{IsActive: boolPtr(false)})
	assert.NoError(t, err)

	_, err = f.service.GenerateTransaction(ctx, testUserID, expense.ID, date(2024, time.March, 10), nil)
	assert.True(t, financeErrors.IsStateError(err))
}

func TestGenerateTransaction_OngoingNeverTouchesProgress(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createOngoing(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := f.service.GenerateTransaction(ctx, testUserID, expense.ID, date(2024, time.Month(i), 10), nil)
		assert.NoError(t, err)
	}

	stored, err := f.service.GetExpense(ctx, testUserID, expense.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, stored.PaymentsCompleted)
	assert.True(t, stored.IsActive)
	assert.Len(t, f.transactionRepo.Transactions, 5)
}

func TestGenerateTransaction_BuildsTransactionFromExpense(t *testing.T) {
	f := newExpenseFixture()
	expense := &domain.Expense{
		Name:        "Gym",
		Amount:      floatPtr(49.99),
		CategoryID:  f.category.ID,
		DayOfMonth:  5,
		ExpenseType: domain.ExpenseTypeOngoing,
		StartDate:   date(2024, time.January, 1),
		Notes:       strPtr("family membership"),
	}
	assert.NoError(t, f.service.CreateExpense(context.Background(), testUserID, expense))

	transaction, err := f.service.GenerateTransaction(context.Background(), testUserID, expense.ID, date(2024, time.April, 5), nil)
	assert.NoError(t, err)
	assert.Equal(t, 49.99, transaction.Amount)
	assert.Equal(t, "Gym", transaction.Description)
	assert.Equal(t, f.category.ID, transaction.CategoryID)
	assert.Equal(t, "family membership", *transaction.Notes)

	// caller-supplied notes win over the expense's own
	transaction, err = f.service.GenerateTransaction(context.Background(), testUserID, expense.ID, date(2024, time.May, 5), strPtr("paid in cash"))
	assert.NoError(t, err)
	assert.Equal(t, "paid in cash", *transaction.Notes)
}

func TestGenerateTransaction_NilAmountBecomesZero(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 3)

	transaction, err := f.service.GenerateTransaction(context.Background(), testUserID, expense.ID, date(2024, time.January, 1), nil)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, transaction.Amount)
}

func TestGenerateTransaction_ProgressFailureLeavesNoTransaction(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 3)
	f.expenseRepo.RecordPaymentErr = assert.AnError

	_, err := f.service.GenerateTransaction(context.Background(), testUserID, expense.ID, date(2024, time.January, 1), nil)
	assert.Error(t, err)
	assert.Empty(t, f.transactionRepo.Transactions)
	assert.True(t, f.transactionRepo.LastTx.RolledBack)

	stored, _ := f.service.GetExpense(context.Background(), testUserID, expense.ID)
	assert.Equal(t, 0, stored.PaymentsCompleted)
}

func TestGenerateTransaction_UnknownExpenseFailsNotFound(t *testing.T) {
	f := newExpenseFixture()
	_, err := f.service.GenerateTransaction(context.Background(), testUserID, "exp-missing", date(2024, time.January, 1), nil)
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestGenerateTransaction_DeletedExpenseFailsNotFound(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createOngoing(t)
	ctx := context.Background()

	assert.NoError(t, f.service.DeleteExpense(ctx, testUserID, expense.ID))

	_, err := f.service.GenerateTransaction(ctx, testUserID, expense.ID, date(2024, time.June, 10), nil)
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestUpdateExpense_EffectiveTypeRule(t *testing.T) {
	ctx := context.Background()

	t.Run("total_payments alone against stored installment type", func(t *testing.T) {
		f := newExpenseFixture()
		expense := f.createInstallment(t, 3)
		updated, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{TotalPayments: intPtr(6)})
		assert.NoError(t, err)
		assert.Equal(t, 6, *updated.TotalPayments)
	})

	t.Run("total_payments alone against stored ongoing type", func(t *testing.T) {
		f := newExpenseFixture()
		expense := f.createOngoing(t)
		_, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{TotalPayments: intPtr(6)})
		assert.True(t, financeErrors.IsValidationError(err))
	})

	t.Run("supplied type overrides stored type", func(t *testing.T) {
		f := newExpenseFixture()
		expense := f.createOngoing(t)
		updated, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{
			ExpenseType:   strPtr(domain.ExpenseTypeInstallment),
			TotalPayments: intPtr(12),
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.ExpenseTypeInstallment, updated.ExpenseType)
		assert.Equal(t, 12, *updated.TotalPayments)
	})

	t.Run("switching to ongoing with total_payments fails", func(t *testing.T) {
		f := newExpenseFixture()
		expense := f.createInstallment(t, 3)
		_, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{
			ExpenseType:   strPtr(domain.ExpenseTypeOngoing),
			TotalPayments: intPtr(3),
		})
		assert.True(t, financeErrors.IsValidationError(err))
	})

	t.Run("zero total_payments fails for installment", func(t *testing.T) {
		f := newExpenseFixture()
		expense := f.createInstallment(t, 3)
		_, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{TotalPayments: intPtr(0)})
		assert.True(t, financeErrors.IsValidationError(err))
	})
}

func TestUpdateExpense_PartialSemantics(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 3)
	ctx := context.Background()

	updated, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{Name: strPtr("Mortgage")})
	assert.NoError(t, err)
	assert.Equal(t, "Mortgage", updated.Name)
	assert.Equal(t, expense.DayOfMonth, updated.DayOfMonth)
	assert.Equal(t, expense.ExpenseType, updated.ExpenseType)
	assert.Equal(t, *expense.TotalPayments, *updated.TotalPayments)
}

func TestUpdateExpense_TotalPaymentsBelowCompleted(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 3)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.service.GenerateTransaction(ctx, testUserID, expense.ID, date(2024, time.February, 1), nil)
		assert.NoError(t, err)
	}

	_, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{TotalPayments: intPtr(1)})
	assert.True(t, financeErrors.IsValidationError(err))

	// lowering to the completed count is still allowed
	updated, err := f.service.UpdateExpense(ctx, testUserID, expense.ID, domain.ExpenseUpdate{TotalPayments: intPtr(2)})
	assert.NoError(t, err)
	assert.Equal(t, 2, *updated.TotalPayments)
}

func TestUpdateExpense_EmptyUpdateSkipsWrite(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createInstallment(t, 3)
	// any repository write would fail; the no-op path must not reach it
	f.expenseRepo.UpdateErr = assert.AnError

	updated, err := f.service.UpdateExpense(context.Background(), testUserID, expense.ID, domain.ExpenseUpdate{})
	assert.NoError(t, err)
	assert.Equal(t, expense.ID, updated.ID)
}

func TestUpdateExpense_InvalidDayOfMonth(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createOngoing(t)
	_, err := f.service.UpdateExpense(context.Background(), testUserID, expense.ID, domain.ExpenseUpdate{DayOfMonth: intPtr(0)})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestUpdateExpense_UnknownCategoryFailsNotFound(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createOngoing(t)
	_, err := f.service.UpdateExpense(context.Background(), testUserID, expense.ID, domain.ExpenseUpdate{CategoryID: strPtr("cat-missing")})
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestDeleteExpense_SoftDeleteHidesRecord(t *testing.T) {
	f := newExpenseFixture()
	expense := f.createOngoing(t)
	ctx := context.Background()

	assert.NoError(t, f.service.DeleteExpense(ctx, testUserID, expense.ID))

	_, err := f.service.GetExpense(ctx, testUserID, expense.ID)
	assert.True(t, financeErrors.IsNotFoundError(err))

	err = f.service.DeleteExpense(ctx, testUserID, expense.ID)
	assert.True(t, financeErrors.IsNotFoundError(err))
}

func TestGetExpenses_ActiveFilter(t *testing.T) {
	f := newExpenseFixture()
	f.createOngoing(t)
	done := f.createInstallment(t, 1)
	ctx := context.Background()

	_, err := f.service.GenerateTransaction(ctx, testUserID, done.ID, date(2024, time.January, 1), nil)
	assert.NoError(t, err)

	active, err := f.service.GetExpenses(ctx, testUserID, boolPtr(true))
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	inactive, err := f.service.GetExpenses(ctx, testUserID, boolPtr(false))
	assert.NoError(t, err)
	assert.Len(t, inactive, 1)
	assert.Equal(t, done.ID, inactive[0].ID)

	all, err := f.service.GetExpenses(ctx, testUserID, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
