package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

// ExpenseLookupInterface is the slice of the expense service the transaction
// service needs to validate an optional expense back-reference.
type ExpenseLookupInterface interface {
	GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
}

type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
	expenseService  ExpenseLookupInterface
}

func NewTransactionService(
	repo domain.TransactionRepository,
	categoryService CategoryServiceInterface,
	expenseService ExpenseLookupInterface,
) *TransactionService {
	return &TransactionService{
		repo:            repo,
		categoryService: categoryService,
		expenseService:  expenseService,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.UserID = userID

	if err := transaction.Validate(); err != nil {
		return err
	}
	if _, err := s.categoryService.GetCategory(ctx, userID, transaction.CategoryID); err != nil {
		return err
	}
	if transaction.ExpenseID != nil {
		if _, err := s.expenseService.GetExpense(ctx, userID, *transaction.ExpenseID); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	transaction.CreatedAt = now
	transaction.UpdatedAt = now
	return s.repo.Save(ctx, *transaction)
}

func (s *TransactionService) GetTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	transaction, err := s.repo.FindByUserAndID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, financeErrors.ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error) {
	transaction, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := update.Validate(); err != nil {
		return nil, err
	}
	if update.CategoryID != nil {
		if _, err := s.categoryService.GetCategory(ctx, userID, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	if update.Empty() {
		return transaction, nil
	}

	updated, err := s.repo.Update(ctx, transactionID, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, financeErrors.ErrTransactionNotFound
	}
	return updated, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	if _, err := s.GetTransaction(ctx, userID, transactionID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, transactionID)
}
