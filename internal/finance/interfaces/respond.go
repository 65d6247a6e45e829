package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

// errorStatus maps the service error kinds to HTTP statuses. The second
// return is false for errors the API should not leak to clients.
func errorStatus(err error) (int, bool) {
	switch {
	case financeErrors.IsValidationError(err), financeErrors.IsStateError(err):
		return http.StatusBadRequest, true
	case financeErrors.IsNotFoundError(err):
		return http.StatusNotFound, true
	case financeErrors.IsConflictError(err):
		return http.StatusConflict, true
	}
	return 0, false
}

func respondServiceError(
	respond func(w http.ResponseWriter, status int, message string),
	w http.ResponseWriter,
	err error,
	fallback string,
) {
	if status, ok := errorStatus(err); ok {
		respond(w, status, err.Error())
		return
	}
	log.Error().Err(err).Msg(fallback)
	respond(w, http.StatusInternalServerError, fallback)
}
