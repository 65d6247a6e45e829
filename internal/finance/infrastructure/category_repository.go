package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

const categoryColumns = "id, user_id, name, type, color, created_at, updated_at, deleted_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	err := row.Scan(
		&category.ID, &category.UserID, &category.Name, &category.Type,
		&category.Color, &category.CreatedAt, &category.UpdatedAt, &category.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category domain.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, type, color, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID, category.UserID, category.Name, category.Type,
		category.Color, category.CreatedAt, category.UpdatedAt,
	)
	return err
}

func (r *CategoryRepository) FindByUser(ctx context.Context, userID, categoryType string) ([]domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE user_id = $1 AND deleted_at IS NULL`, categoryColumns)
	args := []interface{}{userID}
	if categoryType != "" {
		query += " AND type = $2"
		args = append(args, categoryType)
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByUserAndID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM categories WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, categoryColumns),
		categoryID, userID,
	)
	return scanCategory(row)
}

func (r *CategoryRepository) FindByUserAndName(ctx context.Context, userID, name, excludeID string) (*domain.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM categories WHERE user_id = $1 AND name = $2 AND deleted_at IS NULL`, categoryColumns)
	args := []interface{}{userID, name}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	return scanCategory(r.db.QueryRowContext(ctx, query, args...))
}

func (r *CategoryRepository) Update(ctx context.Context, categoryID string, update domain.CategoryUpdate) (*domain.Category, error) {
	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Type != nil {
		add("type", *update.Type)
	}
	if update.Color != nil {
		add("color", *update.Color)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, categoryID)

	query := fmt.Sprintf(
		`UPDATE categories SET %s WHERE id = $%d AND deleted_at IS NULL RETURNING %s`,
		strings.Join(sets, ", "), len(args), categoryColumns,
	)
	return scanCategory(r.db.QueryRowContext(ctx, query, args...))
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, categoryID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		categoryID,
	)
	return err
}
