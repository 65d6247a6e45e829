package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

const noteColumns = "id, user_id, domain, year, month, notes, created_at, updated_at, deleted_at"

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func scanNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	err := row.Scan(
		&note.ID, &note.UserID, &note.Domain, &note.Year, &note.Month,
		&note.Notes, &note.CreatedAt, &note.UpdatedAt, &note.DeletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Save(ctx context.Context, note domain.Note) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, user_id, domain, year, month, notes, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		note.ID, note.UserID, note.Domain, note.Year, note.Month,
		note.Notes, note.CreatedAt, note.UpdatedAt,
	)
	return err
}

func (r *NoteRepository) FindByUser(ctx context.Context, userID, domainName string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM notes
         WHERE user_id = $1 AND domain = $2 AND deleted_at IS NULL
         ORDER BY year DESC, month DESC NULLS FIRST`, noteColumns),
		userID, domainName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	return notes, rows.Err()
}

// A nil month selects the yearly row only; monthly rows never match it.
func (r *NoteRepository) FindByUserAndPeriod(ctx context.Context, userID, domainName string, year int, month *int) (*domain.Note, error) {
	query := fmt.Sprintf(`SELECT %s FROM notes
        WHERE user_id = $1 AND domain = $2 AND year = $3 AND deleted_at IS NULL`, noteColumns)
	args := []interface{}{userID, domainName, year}
	if month != nil {
		args = append(args, *month)
		query += fmt.Sprintf(" AND month = $%d", len(args))
	} else {
		query += " AND month IS NULL"
	}
	return scanNote(r.db.QueryRowContext(ctx, query, args...))
}

func (r *NoteRepository) FindByUserAndID(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM notes WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, noteColumns),
		noteID, userID,
	)
	return scanNote(row)
}

func (r *NoteRepository) UpdateText(ctx context.Context, noteID, notes string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`UPDATE notes SET notes = $1, updated_at = now()
         WHERE id = $2 AND deleted_at IS NULL RETURNING %s`, noteColumns),
		notes, noteID,
	)
	return scanNote(row)
}

func (r *NoteRepository) SoftDelete(ctx context.Context, noteID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notes SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		noteID,
	)
	return err
}
