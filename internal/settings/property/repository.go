package property

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Property is a system-wide named entity (a household, home, ...). It is not
// user-scoped; exactly one non-deleted property is the default at all times.
type Property struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	IsDefault bool       `json:"is_default"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// UpdateInput carries a partial update; nil fields stay untouched.
type UpdateInput struct {
	Name      *string `json:"name"`
	IsActive  *bool   `json:"is_active"`
	IsDefault *bool   `json:"is_default"`
}

type Repository interface {
	save(ctx context.Context, property Property) error
	findAll(ctx context.Context, includeDeleted bool) ([]Property, error)
	findByID(ctx context.Context, propertyID string) (*Property, error)
	findByName(ctx context.Context, name, excludeID string) (*Property, error)
	update(ctx context.Context, propertyID string, input UpdateInput) (*Property, error)
	// setDefault unsets every current default and sets the new one in a
	// single storage transaction, keeping the singleton invariant.
	setDefault(ctx context.Context, propertyID string) error
	softDelete(ctx context.Context, propertyID string) error
	getDefault(ctx context.Context) (*Property, error)
}

const propertyColumns = "id, name, is_active, is_default, created_at, updated_at, deleted_at"

type propertyRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &propertyRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*Property, error) {
	var property Property
	err := row.Scan(
		&property.ID, &property.Name, &property.IsActive, &property.IsDefault,
		&property.CreatedAt, &property.UpdatedAt, &property.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) save(ctx context.Context, property Property) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO properties (id, name, is_active, is_default, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		property.ID, property.Name, property.IsActive, property.IsDefault,
		property.CreatedAt, property.UpdatedAt,
	)
	return err
}

func (r *propertyRepository) findAll(ctx context.Context, includeDeleted bool) ([]Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties`, propertyColumns)
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *property)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) findByID(ctx context.Context, propertyID string) (*Property, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM properties WHERE id = $1 AND deleted_at IS NULL`, propertyColumns),
		propertyID,
	)
	return scanProperty(row)
}

func (r *propertyRepository) findByName(ctx context.Context, name, excludeID string) (*Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM properties WHERE name = $1 AND deleted_at IS NULL`, propertyColumns)
	args := []interface{}{name}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	return scanProperty(r.db.QueryRowContext(ctx, query, args...))
}

func (r *propertyRepository) update(ctx context.Context, propertyID string, input UpdateInput) (*Property, error) {
	var sets []string
	var args []interface{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.IsActive != nil {
		add("is_active", *input.IsActive)
	}
	if input.IsDefault != nil {
		add("is_default", *input.IsDefault)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, propertyID)

	query := fmt.Sprintf(
		`UPDATE properties SET %s WHERE id = $%d AND deleted_at IS NULL RETURNING %s`,
		strings.Join(sets, ", "), len(args), propertyColumns,
	)
	return scanProperty(r.db.QueryRowContext(ctx, query, args...))
}

func (r *propertyRepository) setDefault(ctx context.Context, propertyID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE properties SET is_default = false, updated_at = now()
         WHERE is_default = true AND deleted_at IS NULL`,
	); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE properties SET is_default = true, updated_at = now()
         WHERE id = $1 AND deleted_at IS NULL`,
		propertyID,
	); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *propertyRepository) softDelete(ctx context.Context, propertyID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE properties SET deleted_at = now(), is_default = false, updated_at = now()
         WHERE id = $1 AND deleted_at IS NULL`,
		propertyID,
	)
	return err
}

func (r *propertyRepository) getDefault(ctx context.Context) (*Property, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM properties WHERE is_default = true AND deleted_at IS NULL`, propertyColumns),
	)
	return scanProperty(row)
}
