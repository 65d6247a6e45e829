package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

const transactionColumns = `id, user_id, date, amount, description, category_id, expense_id,
	tags, payment_method, notes, created_at, updated_at, deleted_at`

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Tags live in a jsonb column; nil round-trips as SQL NULL.
func encodeTags(tags []string) (interface{}, error) {
	if tags == nil {
		return nil, nil
	}
	return json.Marshal(tags)
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var tags []byte
	err := row.Scan(
		&transaction.ID, &transaction.UserID, &transaction.Date, &transaction.Amount,
		&transaction.Description, &transaction.CategoryID, &transaction.ExpenseID,
		&tags, &transaction.PaymentMethod, &transaction.Notes,
		&transaction.CreatedAt, &transaction.UpdatedAt, &transaction.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if tags != nil {
		if err := json.Unmarshal(tags, &transaction.Tags); err != nil {
			return nil, err
		}
	}
	return &transaction, nil
}

const insertTransactionQuery = `INSERT INTO transactions
    (id, user_id, date, amount, description, category_id, expense_id, tags, payment_method, notes, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (r *TransactionRepository) Save(ctx context.Context, transaction domain.Transaction) error {
	tags, err := encodeTags(transaction.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertTransactionQuery,
		transaction.ID, transaction.UserID, transaction.Date, transaction.Amount,
		transaction.Description, transaction.CategoryID, transaction.ExpenseID,
		tags, transaction.PaymentMethod, transaction.Notes,
		transaction.CreatedAt, transaction.UpdatedAt,
	)
	return err
}

func (r *TransactionRepository) BeginTx(ctx context.Context) (domain.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *TransactionRepository) SaveTx(ctx context.Context, tx domain.Tx, transaction domain.Transaction) error {
	sqlTx, ok := tx.(*sql.Tx)
	if !ok {
		return fmt.Errorf("unexpected transaction handle %T", tx)
	}
	tags, err := encodeTags(transaction.Tags)
	if err != nil {
		return err
	}
	_, err = sqlTx.ExecContext(ctx, insertTransactionQuery,
		transaction.ID, transaction.UserID, transaction.Date, transaction.Amount,
		transaction.Description, transaction.CategoryID, transaction.ExpenseID,
		tags, transaction.PaymentMethod, transaction.Notes,
		transaction.CreatedAt, transaction.UpdatedAt,
	)
	return err
}

func (r *TransactionRepository) FindByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE user_id = $1 AND deleted_at IS NULL`, transactionColumns)
	args := []interface{}{userID}
	add := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(" AND %s $%d", clause, len(args))
	}
	if filter.StartDate != nil {
		add("date >=", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("date <=", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		add("category_id =", *filter.CategoryID)
	}
	query += " ORDER BY date DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

func (r *TransactionRepository) FindByUserAndID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM transactions WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, transactionColumns),
		transactionID, userID,
	)
	return scanTransaction(row)
}

func (r *TransactionRepository) Update(ctx context.Context, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error) {
	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Date != nil {
		add("date", *update.Date)
	}
	if update.Amount != nil {
		add("amount", *update.Amount)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.CategoryID != nil {
		add("category_id", *update.CategoryID)
	}
	if update.Tags != nil {
		tags, err := encodeTags(update.Tags)
		if err != nil {
			return nil, err
		}
		add("tags", tags)
	}
	if update.PaymentMethod != nil {
		add("payment_method", *update.PaymentMethod)
	}
	if update.Notes != nil {
		add("notes", *update.Notes)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, transactionID)

	query := fmt.Sprintf(
		`UPDATE transactions SET %s WHERE id = $%d AND deleted_at IS NULL RETURNING %s`,
		strings.Join(sets, ", "), len(args), transactionColumns,
	)
	return scanTransaction(r.db.QueryRowContext(ctx, query, args...))
}

func (r *TransactionRepository) SoftDelete(ctx context.Context, transactionID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		transactionID,
	)
	return err
}
