package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

// CategoryServiceInterface is the slice of the category service the expense
// engine needs for referential-integrity checks.
type CategoryServiceInterface interface {
	GetCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error)
}

// ExpenseService owns the expense definitions and the expense-to-transaction
// generation workflow, including installment payment tracking.
type ExpenseService struct {
	repo            domain.ExpenseRepository
	transactionRepo domain.TransactionRepository
	categoryService CategoryServiceInterface
}

func NewExpenseService(
	repo domain.ExpenseRepository,
	transactionRepo domain.TransactionRepository,
	categoryService CategoryServiceInterface,
) *ExpenseService {
	return &ExpenseService{
		repo:            repo,
		transactionRepo: transactionRepo,
		categoryService: categoryService,
	}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, userID string, expense *domain.Expense) error {
	expense.ID = uuid.NewString()
	expense.UserID = userID
	expense.PaymentsCompleted = 0
	expense.IsActive = true

	if err := expense.Validate(); err != nil {
		return err
	}
	if _, err := s.categoryService.GetCategory(ctx, userID, expense.CategoryID); err != nil {
		return err
	}

	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	return s.repo.Save(ctx, *expense)
}

func (s *ExpenseService) GetExpenses(ctx context.Context, userID string, isActive *bool) ([]domain.Expense, error) {
	expenses, err := s.repo.FindByUser(ctx, userID, isActive)
	if err != nil {
		return nil, err
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	expense, err := s.repo.FindByUserAndID(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, financeErrors.ErrExpenseNotFound
	}
	return expense, nil
}

// UpdateExpense applies only the explicitly supplied fields. The
// total_payments cross-field rule is re-checked against the effective type:
// the supplied one if present, else the stored one.
func (s *ExpenseService) UpdateExpense(ctx context.Context, userID, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := update.Validate(); err != nil {
		return nil, err
	}
	if err := update.ValidateTotalPayments(expense.ExpenseType); err != nil {
		return nil, err
	}
	if update.TotalPayments != nil && *update.TotalPayments < expense.PaymentsCompleted {
		return nil, financeErrors.NewValidationError("Total payments cannot be less than payments already completed")
	}
	if update.CategoryID != nil {
		if _, err := s.categoryService.GetCategory(ctx, userID, *update.CategoryID); err != nil {
			return nil, err
		}
	}

	if update.Empty() {
		return expense, nil
	}

	updated, err := s.repo.Update(ctx, expenseID, update)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, financeErrors.ErrExpenseNotFound
	}
	return updated, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if _, err := s.GetExpense(ctx, userID, expenseID); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, expenseID)
}

// GenerateTransaction turns the expense definition into a dated ledger entry.
// The transaction write and the installment progress update commit as one
// storage transaction; a failed second step leaves no committed entry behind.
func (s *ExpenseService) GenerateTransaction(ctx context.Context, userID, expenseID string, date time.Time, notes *string) (*domain.Transaction, error) {
	expense, err := s.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsActive {
		return nil, financeErrors.ErrExpenseInactive
	}

	amount := 0.0
	if expense.Amount != nil {
		amount = *expense.Amount
	}
	if notes == nil {
		notes = expense.Notes
	}

	now := time.Now().UTC()
	transaction := domain.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		Amount:      amount,
		Description: expense.Name,
		CategoryID:  expense.CategoryID,
		ExpenseID:   &expense.ID,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := s.transactionRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.transactionRepo.SaveTx(ctx, tx, transaction); err != nil {
		safeRollback(tx)
		return nil, err
	}

	if expense.ExpenseType == domain.ExpenseTypeInstallment {
		completed := expense.PaymentsCompleted + 1
		active := true
		if expense.TotalPayments != nil && completed >= *expense.TotalPayments {
			active = false
		}
		if err := s.repo.RecordPaymentTx(ctx, tx, expense.ID, completed, active); err != nil {
			safeRollback(tx)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &transaction, nil
}

func safeRollback(tx domain.Tx) {
	if err := tx.Rollback(); err != nil {
		log.Error().Err(err).Msg("transaction rollback failed")
	}
}
