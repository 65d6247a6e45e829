package infrastructure

import (
	"context"
	"time"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

type MockNoteRepository struct {
	Notes []domain.Note

	SaveErr error
}

func (m *MockNoteRepository) Save(_ context.Context, note domain.Note) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Notes = append(m.Notes, note)
	return nil
}

func (m *MockNoteRepository) FindByUser(_ context.Context, userID, domainName string) ([]domain.Note, error) {
	var notes []domain.Note
	for _, note := range m.Notes {
		if note.UserID == userID && note.Domain == domainName && note.DeletedAt == nil {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (m *MockNoteRepository) FindByUserAndPeriod(_ context.Context, userID, domainName string, year int, month *int) (*domain.Note, error) {
	for _, note := range m.Notes {
		if note.UserID != userID || note.Domain != domainName || note.Year != year || note.DeletedAt != nil {
			continue
		}
		if (note.Month == nil) != (month == nil) {
			continue
		}
		if month != nil && *note.Month != *month {
			continue
		}
		found := note
		return &found, nil
	}
	return nil, nil
}

func (m *MockNoteRepository) FindByUserAndID(_ context.Context, userID, noteID string) (*domain.Note, error) {
	for _, note := range m.Notes {
		if note.ID == noteID && note.UserID == userID && note.DeletedAt == nil {
			found := note
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockNoteRepository) UpdateText(_ context.Context, noteID, notes string) (*domain.Note, error) {
	for i := range m.Notes {
		if m.Notes[i].ID == noteID && m.Notes[i].DeletedAt == nil {
			m.Notes[i].Notes = notes
			m.Notes[i].UpdatedAt = time.Now().UTC()
			found := m.Notes[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockNoteRepository) SoftDelete(_ context.Context, noteID string) error {
	for i := range m.Notes {
		if m.Notes[i].ID == noteID && m.Notes[i].DeletedAt == nil {
			now := time.Now().UTC()
			m.Notes[i].DeletedAt = &now
			return nil
		}
	}
	return nil
}
