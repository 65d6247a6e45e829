package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

const expenseColumns = `id, user_id, name, amount, category_id, day_of_month, expense_type,
	start_date, total_payments, payments_completed, is_active, notes, created_at, updated_at, deleted_at`

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var expense domain.Expense
	err := row.Scan(
		&expense.ID, &expense.UserID, &expense.Name, &expense.Amount, &expense.CategoryID,
		&expense.DayOfMonth, &expense.ExpenseType, &expense.StartDate, &expense.TotalPayments,
		&expense.PaymentsCompleted, &expense.IsActive, &expense.Notes,
		&expense.CreatedAt, &expense.UpdatedAt, &expense.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) Save(ctx context.Context, expense domain.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses
         (id, user_id, name, amount, category_id, day_of_month, expense_type, start_date,
          total_payments, payments_completed, is_active, notes, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		expense.ID, expense.UserID, expense.Name, expense.Amount, expense.CategoryID,
		expense.DayOfMonth, expense.ExpenseType, expense.StartDate, expense.TotalPayments,
		expense.PaymentsCompleted, expense.IsActive, expense.Notes,
		expense.CreatedAt, expense.UpdatedAt,
	)
	return err
}

func (r *ExpenseRepository) FindByUser(ctx context.Context, userID string, isActive *bool) ([]domain.Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE user_id = $1 AND deleted_at IS NULL`, expenseColumns)
	args := []interface{}{userID}
	if isActive != nil {
		query += " AND is_active = $2"
		args = append(args, *isActive)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) FindByUserAndID(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM expenses WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, expenseColumns),
		expenseID, userID,
	)
	return scanExpense(row)
}

func (r *ExpenseRepository) Update(ctx context.Context, expenseID string, update domain.ExpenseUpdate) (*domain.Expense, error) {
	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Amount != nil {
		add("amount", *update.Amount)
	}
	if update.CategoryID != nil {
		add("category_id", *update.CategoryID)
	}
	if update.DayOfMonth != nil {
		add("day_of_month", *update.DayOfMonth)
	}
	if update.ExpenseType != nil {
		add("expense_type", *update.ExpenseType)
	}
	if update.StartDate != nil {
		add("start_date", *update.StartDate)
	}
	if update.TotalPayments != nil {
		add("total_payments", *update.TotalPayments)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}
	if update.Notes != nil {
		add("notes", *update.Notes)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, expenseID)

	query := fmt.Sprintf(
		`UPDATE expenses SET %s WHERE id = $%d AND deleted_at IS NULL RETURNING %s`,
		strings.Join(sets, ", "), len(args), expenseColumns,
	)
	return scanExpense(r.db.QueryRowContext(ctx, query, args...))
}

func (r *ExpenseRepository) SoftDelete(ctx context.Context, expenseID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		expenseID,
	)
	return err
}

func (r *ExpenseRepository) RecordPaymentTx(ctx context.Context, tx domain.Tx, expenseID string, paymentsCompleted int, isActive bool) error {
	sqlTx, ok := tx.(*sql.Tx)
	if !ok {
		return fmt.Errorf("unexpected transaction handle %T", tx)
	}
	_, err := sqlTx.ExecContext(ctx,
		`UPDATE expenses SET payments_completed = $1, is_active = $2, updated_at = now()
         WHERE id = $3 AND deleted_at IS NULL`,
		paymentsCompleted, isActive, expenseID,
	)
	return err
}
