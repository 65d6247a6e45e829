package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

type NoteService struct {
	repo domain.NoteRepository
}

func NewNoteService(repo domain.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// CreateOrUpdateNote upserts by period: repeated calls for the same
// (domain, year, month) tuple converge to one row holding the latest text.
func (s *NoteService) CreateOrUpdateNote(ctx context.Context, userID string, input domain.NoteInput) (*domain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUserAndPeriod(ctx, userID, input.Domain, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.repo.UpdateText(ctx, existing.ID, input.Notes)
	}

	now := time.Now().UTC()
	note := domain.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Domain:    input.Domain,
		Year:      input.Year,
		Month:     input.Month,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) GetNotes(ctx context.Context, userID, domainName string) ([]domain.Note, error) {
	notes, err := s.repo.FindByUser(ctx, userID, domainName)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		return []domain.Note{}, nil
	}
	return notes, nil
}

// GetNote returns nil without error when no note exists for the period.
func (s *NoteService) GetNote(ctx context.Context, userID, domainName string, year int, month *int) (*domain.Note, error) {
	return s.repo.FindByUserAndPeriod(ctx, userID, domainName, year, month)
}

func (s *NoteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	note, err := s.repo.FindByUserAndID(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return financeErrors.ErrNoteNotFound
	}
	return s.repo.SoftDelete(ctx, noteID)
}
