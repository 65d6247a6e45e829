package interfaces

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
)

type NoteServiceInterface interface {
	CreateOrUpdateNote(ctx context.Context, userID string, input domain.NoteInput) (*domain.Note, error)
	GetNotes(ctx context.Context, userID, domainName string) ([]domain.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) error
}

type NoteHandler struct {
	service      NoteServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewNoteHandler(
	service NoteServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *NoteHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &NoteHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// UpsertNote creates or overwrites the note for the given period.
func (h *NoteHandler) UpsertNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input domain.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.service.CreateOrUpdateNote(r.Context(), userID, input)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to save note")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Note successfully saved.",
		"data":    note,
	})
}

func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	notes, err := h.service.GetNotes(r.Context(), userID, r.URL.Query().Get("domain"))
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve notes")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Notes retrieved successfully.",
		"data":    notes,
	})
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.service.DeleteNote(r.Context(), userID, r.PathValue("id")); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete note")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Note successfully deleted.",
	})
}
