package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fjod/storefront/internal/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartResponse struct {
	ActionResponse
	Data storefront.CartView `json:"data"`
}

func TestGetCart_Empty(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "GET", "/api/v1/cart", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	var response storefront.CartView
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
	if !response.Totals.Total.IsZero() {
		t.Errorf("Expected zero total, got %s", response.Totals.Total)
	}
}

func TestAddItem_Success(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: "p-1"})

	require.Equal(t, http.StatusCreated, recorder.Code)
	var response cartResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Data.Items, 1)
	assert.Equal(t, 1, response.Data.Items[0].Qty, "quantity defaults to 1")
	assert.Equal(t, "19.99", response.Data.Totals.Total.String())
	assert.Equal(t, uint64(1), response.Version)
}

func TestAddItem_Errors(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		expectedCode int
		errorCode    string
	}{
		{"invalid json", "{", http.StatusBadRequest, "invalid_request"},
		{"missing product", map[string]interface{}{"quantity": 1}, http.StatusBadRequest, "invalid_product_id"},
		{"zero quantity", map[string]interface{}{"product_id": "p-1", "quantity": 0}, http.StatusBadRequest, "validation_failed"},
		{"unknown product", map[string]interface{}{"product_id": "nope"}, http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h := newTestServer(t)

			recorder := doRequest(t, h, "POST", "/api/v1/cart/items", tt.body)

			if recorder.Code != tt.expectedCode {
				t.Errorf("Expected status code %d, got %d", tt.expectedCode, recorder.Code)
			}
			if response := decodeError(t, recorder); response.Code != tt.errorCode {
				t.Errorf("Expected error code '%s', got '%s'", tt.errorCode, response.Code)
			}
		})
	}
}

func TestAddItem_NewLineStartsAtOne(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "POST", "/api/v1/cart/items", map[string]interface{}{"product_id": "p-1", "quantity": 3})

	require.Equal(t, http.StatusCreated, recorder.Code)
	var response cartResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Data.Items, 1)
	assert.Equal(t, 1, response.Data.Items[0].Qty)
}

func TestAddItem_OverStock(t *testing.T) {
	sf, h := newTestServer(t)
	doRequest(t, h, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: "p-4"})

	recorder := doRequest(t, h, "POST", "/api/v1/cart/items", map[string]interface{}{"product_id": "p-4", "quantity": 12})

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}
	if response := decodeError(t, recorder); response.Code != "insufficient_stock" {
		t.Errorf("Expected error code 'insufficient_stock', got '%s'", response.Code)
	}
	assert.Equal(t, 1, sf.Cart().Items[0].Qty)
}

func TestUpdateQuantity_Clamps(t *testing.T) {
	_, h := newTestServer(t)
	doRequest(t, h, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: "p-1"})

	recorder := doRequest(t, h, "PUT", "/api/v1/cart/items/p-1", UpdateQuantityRequestDTO{Quantity: 25})

	require.Equal(t, http.StatusOK, recorder.Code)
	var response cartResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, 20, response.Data.Items[0].Qty)
	assert.Contains(t, response.Status.Message, "Only 20")
}

func TestUpdateQuantity_NotInCart(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "PUT", "/api/v1/cart/items/p-1", UpdateQuantityRequestDTO{Quantity: 2})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestRemoveItemAndClearCart(t *testing.T) {
	sf, h := newTestServer(t)
	doRequest(t, h, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: "p-1"})
	doRequest(t, h, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: "p-2"})

	recorder := doRequest(t, h, "DELETE", "/api/v1/cart/items/p-1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Len(t, sf.Cart().Items, 1)

	recorder = doRequest(t, h, "DELETE", "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, sf.Cart().Items)
}
