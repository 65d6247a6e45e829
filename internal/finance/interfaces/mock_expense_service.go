package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

type MockExpenseService struct {
	expenses    []domain.Expense
	expense     *domain.Expense
	transaction *domain.Transaction
	err         error
	shouldFail  bool

	generatedDate  time.Time
	generatedNotes *string
}

func (m *MockExpenseService) CreateExpense(_ context.Context, userID string, expense *domain.Expense) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	if m.err != nil {
		return m.err
	}
	expense.ID = "generated-id"
	expense.UserID = userID
	expense.IsActive = true
	return nil
}

func (m *MockExpenseService) GetExpenses(_ context.Context, _ string, _ *bool) ([]domain.Expense, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.expenses, nil
}

func (m *MockExpenseService) GetExpense(_ context.Context, _, _ string) (*domain.Expense, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.expense, nil
}

func (m *MockExpenseService) UpdateExpense(_ context.Context, _, _ string, _ domain.ExpenseUpdate) (*domain.Expense, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.expense, nil
}

func (m *MockExpenseService) DeleteExpense(_ context.Context, _, _ string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return m.err
}

func (m *MockExpenseService) GenerateTransaction(_ context.Context, _, _ string, date time.Time, notes *string) (*domain.Transaction, error) {
	m.generatedDate = date
	m.generatedNotes = notes
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.transaction, nil
}
