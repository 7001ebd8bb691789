package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts_Success(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "GET", "/api/v1/products", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response ProductsResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Products) != 4 {
		t.Fatalf("Expected 4 products, got %d", len(response.Products))
	}
	if response.Products[0].Name != "T-Shirt" {
		t.Errorf("Expected first product T-Shirt, got %s", response.Products[0].Name)
	}
}

func TestGetProduct(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "GET", "/api/v1/products/p-2", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var p domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&p))
	assert.Equal(t, "Dress", p.Name)

	recorder = doRequest(t, h, "GET", "/api/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "not_found", decodeError(t, recorder).Code)
}

func TestCreateProduct(t *testing.T) {
	sf, h := newTestServer(t)

	recorder := doRequest(t, h, "POST", "/api/v1/products", map[string]interface{}{
		"name":  "Hat",
		"price": 12.5,
		"stock": "7",
		"image": "hat.jpg",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	var response struct {
		ActionResponse
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "Product added.", response.Status.Message)
	assert.True(t, response.Changed)
	assert.Equal(t, "p-5", response.Data.ID)
	assert.Equal(t, 7, response.Data.Stock)
	assert.Len(t, sf.Products(), 5)
}

func TestCreateProduct_ValidationError(t *testing.T) {
	sf, h := newTestServer(t)

	recorder := doRequest(t, h, "POST", "/api/v1/products", map[string]interface{}{"name": "Hat"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	response := decodeError(t, recorder)
	assert.Equal(t, "validation_failed", response.Code)
	assert.Contains(t, response.Details, "name and image are required")
	assert.Len(t, sf.Products(), 4)
}

func TestCreateProduct_InvalidJSON(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "POST", "/api/v1/products", "{not json")

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if response := decodeError(t, recorder); response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got '%s'", response.Code)
	}
}

func TestUpdateProduct(t *testing.T) {
	sf, h := newTestServer(t)

	recorder := doRequest(t, h, "PUT", "/api/v1/products/p-1", map[string]interface{}{
		"name":  "Tee",
		"price": "abc",
		"stock": -3,
		"image": "tee.jpg",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	p, err := sf.FindProduct("p-1")
	require.NoError(t, err)
	assert.Equal(t, "Tee", p.Name)
	assert.True(t, p.Price.IsZero())
	assert.Equal(t, 0, p.Stock)
}

func TestDeleteProduct(t *testing.T) {
	sf, h := newTestServer(t)

	recorder := doRequest(t, h, "DELETE", "/api/v1/products/p-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, sf.Products(), 3)

	recorder = doRequest(t, h, "DELETE", "/api/v1/products/p-1", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
