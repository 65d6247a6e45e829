package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

type MockExpenseRepository struct {
	Expenses []domain.Expense

	SaveErr          error
	UpdateErr        error
	RecordPaymentErr error
}

func (m *MockExpenseRepository) Save(_ context.Context, expense domain.Expense) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Expenses = append(m.Expenses, expense)
	return nil
}

func (m *MockExpenseRepository) FindByUser(_ context.Context, userID string, isActive *bool) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for _, expense := range m.Expenses {
		if expense.UserID != userID || expense.DeletedAt != nil {
			continue
		}
		if isActive != nil && expense.IsActive != *isActive {
			continue
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func (m *MockExpenseRepository) FindByUserAndID(_ context.Context, userID, expenseID string) (*domain.Expense, error) {
	for _, expense := range m.Expenses {
		if expense.ID == expenseID && expense.UserID == userID && expense.DeletedAt == nil {
			found := expense
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockExpenseRepository) Update(_ context.Context, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i := range m.Expenses {
		expense := &m.Expenses[i]
		if expense.ID != expenseID || expense.DeletedAt != nil {
			continue
		}
		if update.Name != nil {
			expense.Name = *update.Name
		}
		if update.Amount != nil {
			expense.Amount = update.Amount
		}
		if update.CategoryID != nil {
			expense.CategoryID = *update.CategoryID
		}
		if update.DayOfMonth != nil {
			expense.DayOfMonth = *update.DayOfMonth
		}
		if update.ExpenseType != nil {
			expense.ExpenseType = *update.ExpenseType
		}
		if update.StartDate != nil {
			expense.StartDate = *update.StartDate
		}
		if update.TotalPayments != nil {
			expense.TotalPayments = update.TotalPayments
		}
		if update.IsActive != nil {
			expense.IsActive = *update.IsActive
		}
		if update.Notes != nil {
			expense.Notes = update.Notes
		}
		expense.UpdatedAt = time.Now().UTC()
		found := *expense
		return &found, nil
	}
	return nil, nil
}

func (m *MockExpenseRepository) SoftDelete(_ context.Context, expenseID string) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID && m.Expenses[i].DeletedAt == nil {
			now := time.Now().UTC()
			m.Expenses[i].DeletedAt = &now
			return nil
		}
	}
	return nil
}

func (m *MockExpenseRepository) RecordPaymentTx(_ context.Context, tx domain.Tx, expenseID string, paymentsCompleted int, isActive bool) error {
	if m.RecordPaymentErr != nil {
		return m.RecordPaymentErr
	}
	mockTx, ok := tx.(*MockTx)
	if !ok {
		return fmt.Errorf("unexpected transaction handle %T", tx)
	}
	mockTx.Stage(func() {
		for i := range m.Expenses {
			if m.Expenses[i].ID == expenseID && m.Expenses[i].DeletedAt == nil {
				m.Expenses[i].PaymentsCompleted = paymentsCompleted
				m.Expenses[i].IsActive = isActive
				m.Expenses[i].UpdatedAt = time.Now().UTC()
			}
		}
	})
	return nil
}
