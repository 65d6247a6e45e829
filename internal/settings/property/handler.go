package property

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

type Handler struct {
	service      Service
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewHandler(
	service Service,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *Handler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &Handler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type createPropertyRequest struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

func (h *Handler) serviceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case financeErrors.IsNotFoundError(err):
		h.respondError(w, http.StatusNotFound, err.Error())
	case financeErrors.IsConflictError(err):
		h.respondError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg(fallback)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	property := &Property{Name: req.Name, IsDefault: req.IsDefault}
	if err := h.service.Create(r.Context(), property); err != nil {
		h.serviceError(w, err, "Failed to create property")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Property successfully created.",
		"data":    property,
	})
}

func (h *Handler) GetProperties(w http.ResponseWriter, r *http.Request) {
	includeDeleted := false
	if deletedStr := r.URL.Query().Get("include_deleted"); deletedStr != "" {
		parsed, err := strconv.ParseBool(deletedStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid include_deleted value")
			return
		}
		includeDeleted = parsed
	}

	properties, err := h.service.List(r.Context(), includeDeleted)
	if err != nil {
		h.serviceError(w, err, "Failed to retrieve properties")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Properties retrieved successfully.",
		"data":    properties,
	})
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.serviceError(w, err, "Failed to retrieve property")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Property retrieved successfully.",
		"data":    property,
	})
}

func (h *Handler) GetDefaultProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.service.GetDefault(r.Context())
	if err != nil {
		h.serviceError(w, err, "Failed to retrieve default property")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Default property retrieved successfully.",
		"data":    property,
	})
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	var input UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	property, err := h.service.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		h.serviceError(w, err, "Failed to update property")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Property successfully updated.",
		"data":    property,
	})
}

func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.serviceError(w, err, "Failed to delete property")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Property successfully deleted.",
	})
}
