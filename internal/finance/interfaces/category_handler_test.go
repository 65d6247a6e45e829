package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pwolarz/HomeFinance/internal/finance/domain"
	financeErrors "github.com/pwolarz/HomeFinance/internal/finance/errors"
)

func TestGetCategories_ValidTypeIncome(t *testing.T) {
	req := authedRequest(http.MethodGet, "/categories?type=income", "")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{
		categories: []domain.Category{
			{ID: "cat-1", Name: "Salary", Type: "income"},
			{ID: "cat-2", Name: "Bonus", Type: "income"},
		},
	}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Len(t, response["data"], 2)
}

func TestGetCategories_InvalidType(t *testing.T) {
	req := authedRequest(http.MethodGet, "/categories?type=invalidType", "")
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid category type", response["message"])
}

func TestGetCategories_ErrorFromService(t *testing.T) {
	req := authedRequest(http.MethodGet, "/categories", "")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{shouldFail: true}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.GetCategories(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Failed to retrieve categories", response["message"])
}

func TestCreateCategory_Success(t *testing.T) {
	req := authedRequest(http.MethodPost, "/categories", `{"name":"Groceries","type":"expense","color":"#00FF00"}`)
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "generated-id", data["id"])
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	req := authedRequest(http.MethodPost, "/categories", `{"name":"Groceries","type":"expense"}`)
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.NewDuplicateNameError("Category", "Groceries")}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.CreateCategory(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Category with name 'Groceries' already exists", response["message"])
}

func TestUpdateCategory_NotFound(t *testing.T) {
	req := authedRequest(http.MethodPut, "/categories/missing", `{"name":"Food"}`)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	mockService := &MockCategoryService{err: financeErrors.ErrCategoryNotFound}
	handler := NewCategoryHandler(mockService, respondJSON, respondError)
	handler.UpdateCategory(w, req)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestDeleteCategory_Success(t *testing.T) {
	req := authedRequest(http.MethodDelete, "/categories/cat-1", "")
	req.SetPathValue("id", "cat-1")
	w := httptest.NewRecorder()

	handler := NewCategoryHandler(&MockCategoryService{}, respondJSON, respondError)
	handler.DeleteCategory(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
}
