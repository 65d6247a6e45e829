package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(context.WithValue(req.Context(), "userID", testUserID))
}

func TestCreateExpense_Success(t *testing.T) {
	req := authedRequest(http.MethodPost, "/expenses",
		`{"name":"Rent","amount":1200,"category_id":"cat-rent","day_of_month":1,"expense_type":"ongoing","start_date":"2026-01-01T00:00:00Z"}`)
	w := httptest.NewRecorder()

	mockService := &MockExpenseService{}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)
	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response["status"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "generated-id", data["id"])
	assert.Equal(t, testUserID, data["user_id"])
}

func TestCreateExpense_InvalidBody(t *testing.T) {
	req := authedRequest(http.MethodPost, "/expenses", `{not json`)
	w := httptest.NewRecorder()

	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)
	handler.CreateExpense(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestCreateExpense_ValidationError(t *testing.T) {
	req := authedRequest(http.MethodPost, "/expenses", `{"name":""}`)
	w := httptest.NewRecorder()

	mockService := &MockExpenseService{err: financeErrors.NewValidationError("Expense name is required")}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)
	handler.CreateExpense(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Expense name is required", response["message"])
}

func TestCreateExpense_Unauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)
	handler.CreateExpense(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Result().StatusCode)
}

func TestGetExpenses_InvalidActiveFilter(t *testing.T) {
	req := authedRequest(http.MethodGet, "/expenses?is_active=maybe", "")
	w := httptest.NewRecorder()

	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)
	handler.GetExpenses(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGetExpense_NotFound(t *testing.T) {
	req := authedRequest(http.MethodGet, "/expenses/missing", "")
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	mockService := &MockExpenseService{err: financeErrors.ErrExpenseNotFound}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)
	handler.GetExpense(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Expense not found", response["message"])
}

func TestGenerateTransaction_Success(t *testing.T) {
	req := authedRequest(http.MethodPost, "/expenses/exp-1/generate-transaction",
		`{"date":"2026-03-01"}`)
	req.SetPathValue("id", "exp-1")
	w := httptest.NewRecorder()

	mockService := &MockExpenseService{
		transaction: &domain.Transaction{ID: "txn-1", Amount: 1200, Description: "Rent"},
	}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)
	handler.GenerateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "2026-03-01", mockService.generatedDate.Format("2006-01-02"))

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "txn-1", data["id"])
}

func TestGenerateTransaction_EmptyBodyDefaultsToToday(t *testing.T) {
	req := authedRequest(http.MethodPost, "/expenses/exp-1/generate-transaction", "")
	req.SetPathValue("id", "exp-1")
	w := httptest.NewRecorder()

	mockService := &MockExpenseService{transaction: &domain.Transaction{ID: "txn-1"}}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)
	handler.GenerateTransaction(w, req)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	assert.False(t, mockService.generatedDate.IsZero())
}

func TestGenerateTransaction_InvalidDate(t *testing.T) {
	req := authedRequest(http.MethodPost, "/expenses/exp-1/generate-transaction",
		`{"date":"03/01/2026"}`)
	req.SetPathValue("id", "exp-1")
	w := httptest.NewRecorder()

	handler := NewExpenseHandler(&MockExpenseService{}, respondJSON, respondError)
	handler.GenerateTransaction(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestGenerateTransaction_InactiveExpense(t *testing.T) {
	req := authedRequest(http.MethodPost, "/expenses/exp-1/generate-transaction",
		`{"date":"2026-03-01"}`)
	req.SetPathValue("id", "exp-1")
	w := httptest.NewRecorder()

	mockService := &MockExpenseService{err: financeErrors.ErrExpenseInactive}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)
	handler.GenerateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Cannot generate transaction from inactive expense", response["message"])
}

func TestDeleteExpense_ServiceError(t *testing.T) {
	req := authedRequest(http.MethodDelete, "/expenses/exp-1", "")
	req.SetPathValue("id", "exp-1")
	w := httptest.NewRecorder()

	mockService := &MockExpenseService{shouldFail: true}
	handler := NewExpenseHandler(mockService, respondJSON, respondError)
	handler.DeleteExpense(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Failed to delete expense", response["message"])
}
