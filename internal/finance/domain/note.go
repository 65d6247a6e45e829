package domain

import (
	"context"
	"strings"
	"time"

	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

// Note is a free-text note for a period. A nil month means a yearly note;
// yearly and monthly notes for the same year coexist.
type Note struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Domain    string     `json:"domain"`
	Year      int        `json:"year"`
	Month     *int       `json:"month,omitempty"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NoteInput is the upsert payload; the (domain, year, month) tuple selects
// the period, notes is the text to converge on.
type NoteInput struct {
	Domain string `json:"domain"`
	Year   int    `json:"year"`
	Month  *int   `json:"month"`
	Notes  string `json:"notes"`
}

type NoteRepository interface {
	Save(ctx context.Context, note Note) error
	FindByUser(ctx context.Context, userID, domain string) ([]Note, error)
	// FindByUserAndPeriod matches the exact (user, domain, year, month)
	// tuple; a nil month only matches yearly rows.
	FindByUserAndPeriod(ctx context.Context, userID, domain string, year int, month *int) (*Note, error)
	FindByUserAndID(ctx context.Context, userID, noteID string) (*Note, error)
	UpdateText(ctx context.Context, noteID, notes string) (*Note, error)
	SoftDelete(ctx context.Context, noteID string) error
}

func (n NoteInput) Validate() error {
	if strings.TrimSpace(n.Domain) == "" {
		return financeErrors.NewValidationError("Domain is required and cannot be empty")
	}
	if n.Year <= 0 {
		return financeErrors.NewValidationError("Year is required")
	}
	if n.Month != nil && (*n.Month < 1 || *n.Month > 12) {
		return financeErrors.NewValidationError("Month must be between 1 and 12")
	}
	if strings.TrimSpace(n.Notes) == "" {
		return financeErrors.NewValidationError("Notes text is required and cannot be empty")
	}
	return nil
}
