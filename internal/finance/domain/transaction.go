package domain

import (
	"context"
	"time"

	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

// Tx is the unit-of-work handle repositories hand out for multi-step writes.
// *sql.Tx satisfies it; the in-memory mocks stage their writes until Commit.
type Tx interface {
	Commit() error
	Rollback() error
}

type Transaction struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Date          time.Time  `json:"date"`
	Amount        float64    `json:"amount"`
	Description   string     `json:"description"`
	CategoryID    string     `json:"category_id"`
	ExpenseID     *string    `json:"expense_id,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	PaymentMethod *string    `json:"payment_method,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// TransactionUpdate carries a partial update for directly created
// transactions. Generated transactions are never updated through this path.
type TransactionUpdate struct {
	Date          *time.Time `json:"date"`
	Amount        *float64   `json:"amount"`
	Description   *string    `json:"description"`
	CategoryID    *string    `json:"category_id"`
	Tags          []string   `json:"tags"`
	PaymentMethod *string    `json:"payment_method"`
	Notes         *string    `json:"notes"`
}

type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *string
	Limit      int
	Offset     int
}

type TransactionRepository interface {
	Save(ctx context.Context, transaction Transaction) error
	BeginTx(ctx context.Context) (Tx, error)
	SaveTx(ctx context.Context, tx Tx, transaction Transaction) error
	FindByUser(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error)
	FindByUserAndID(ctx context.Context, userID, transactionID string) (*Transaction, error)
	Update(ctx context.Context, transactionID string, update TransactionUpdate) (*Transaction, error)
	SoftDelete(ctx context.Context, transactionID string) error
}

func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return financeErrors.NewValidationError("Amount must be greater than 0")
	}
	if t.Date.IsZero() {
		return financeErrors.NewValidationError("Date is required")
	}
	return nil
}

func (u TransactionUpdate) Validate() error {
	if u.Amount != nil && *u.Amount <= 0 {
		return financeErrors.NewValidationError("Amount must be greater than 0")
	}
	return nil
}

func (u TransactionUpdate) Empty() bool {
	return u.Date == nil && u.Amount == nil && u.Description == nil &&
		u.CategoryID == nil && u.Tags == nil && u.PaymentMethod == nil && u.Notes == nil
}
