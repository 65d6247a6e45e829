package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

type MockTransactionRepository struct {
	Transactions []domain.Transaction

	SaveErr    error
	SaveTxErr  error
	BeginTxErr error
	CommitErr  error

	// LastTx is the handle returned by the most recent BeginTx call, for
	// asserting commit/rollback behavior.
	LastTx *MockTx
}

func (m *MockTransactionRepository) Save(_ context.Context, transaction domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) BeginTx(_ context.Context) (domain.Tx, error) {
	if m.BeginTxErr != nil {
		return nil, m.BeginTxErr
	}
	m.LastTx = &MockTx{CommitErr: m.CommitErr}
	return m.LastTx, nil
}

func (m *MockTransactionRepository) SaveTx(_ context.Context, tx domain.Tx, transaction domain.Transaction) error {
	if m.SaveTxErr != nil {
		return m.SaveTxErr
	}
	mockTx, ok := tx.(*MockTx)
	if !ok {
		return fmt.Errorf("unexpected transaction handle %T", tx)
	}
	mockTx.Stage(func() {
		m.Transactions = append(m.Transactions, transaction)
	})
	return nil
}

func (m *MockTransactionRepository) FindByUser(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID || transaction.DeletedAt != nil {
			continue
		}
		if filter.StartDate != nil && transaction.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && transaction.Date.After(*filter.EndDate) {
			continue
		}
		if filter.CategoryID != nil && transaction.CategoryID != *filter.CategoryID {
			continue
		}
		transactions = append(transactions, transaction)
	}
	if filter.Offset > 0 {
		if filter.Offset >= len(transactions) {
			return nil, nil
		}
		transactions = transactions[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(transactions) {
		transactions = transactions[:filter.Limit]
	}
	return transactions, nil
}

func (m *MockTransactionRepository) FindByUserAndID(_ context.Context, userID, transactionID string) (*domain.Transaction, error) {
	for _, transaction := range m.Transactions {
		if transaction.ID == transactionID && transaction.UserID == userID && transaction.DeletedAt == nil {
			found := transaction
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) Update(_ context.Context, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error) {
	for i := range m.Transactions {
		transaction := &m.Transactions[i]
		if transaction.ID != transactionID || transaction.DeletedAt != nil {
			continue
		}
		if update.Date != nil {
			transaction.Date = *update.Date
		}
		if update.Amount != nil {
			transaction.Amount = *update.Amount
		}
		if update.Description != nil {
			transaction.Description = *update.Description
		}
		if update.CategoryID != nil {
			transaction.CategoryID = *update.CategoryID
		}
		if update.Tags != nil {
			transaction.Tags = update.Tags
		}
		if update.PaymentMethod != nil {
			transaction.PaymentMethod = update.PaymentMethod
		}
		if update.Notes != nil {
			transaction.Notes = update.Notes
		}
		transaction.UpdatedAt = time.Now().UTC()
		found := *transaction
		return &found, nil
	}
	return nil, nil
}

func (m *MockTransactionRepository) SoftDelete(_ context.Context, transactionID string) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID && m.Transactions[i].DeletedAt == nil {
			now := time.Now().UTC()
			m.Transactions[i].DeletedAt = &now
			return nil
		}
	}
	return nil
}
