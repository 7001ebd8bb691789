package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetState(t *testing.T) {
	_, h := newTestServer(t)
	doRequest(t, h, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: "p-3"})

	recorder := doRequest(t, h, "GET", "/api/v1/state", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response StateResponseDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, uint64(1), response.Version)
	assert.Len(t, response.Products, 4)
	assert.Len(t, response.Cart.Items, 1)
	assert.Equal(t, "Added Pant to cart.", response.Status.Message)
}

func TestGetState_Since(t *testing.T) {
	sf, h := newTestServer(t)
	doRequest(t, h, "POST", "/api/v1/cart/items", AddItemRequestDTO{ProductID: "p-3"})

	recorder := doRequest(t, h, "GET", fmt.Sprintf("/api/v1/state?since=%d", sf.Version()), nil)
	assert.Equal(t, http.StatusNotModified, recorder.Code)

	recorder = doRequest(t, h, "GET", "/api/v1/state?since=0", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(t, h, "GET", "/api/v1/state?since=latest", nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetState_ConsistentWhileActionsRun(t *testing.T) {
	_, h := newTestServer(t)

	const adds = 10
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range adds {
			body, _ := json.Marshal(AddItemRequestDTO{ProductID: "p-1"})
			request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(body))
			request.Header.Set("Content-Type", "application/json")
			h.ServeHTTP(httptest.NewRecorder(), request)
		}
	}()

	// every add succeeds, so the version always equals the quantity in the cart
	for range 50 {
		recorder := doRequest(t, h, "GET", "/api/v1/state", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		var response StateResponseDTO
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
		if response.Version == 0 {
			assert.Empty(t, response.Cart.Items)
			continue
		}
		require.Len(t, response.Cart.Items, 1)
		assert.Equal(t, int(response.Version), response.Cart.Items[0].Qty)
		assert.True(t, response.Status.OK)
	}
	wg.Wait()

	recorder := doRequest(t, h, "GET", fmt.Sprintf("/api/v1/state?since=%d", adds), nil)
	assert.Equal(t, http.StatusNotModified, recorder.Code)
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "GET", "/health", nil)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if recorder.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %s", recorder.Header().Get("Content-Type"))
	}
}
