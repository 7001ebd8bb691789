package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/idgen"
	"github.com/fjod/storefront/internal/storage"
	"github.com/fjod/storefront/internal/storefront"
)

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// newTestServer opens a storefront on the seed catalog (p-1 .. p-4).
func newTestServer(t *testing.T) (*storefront.Storefront, http.Handler) {
	t.Helper()
	sf, err := storefront.Open(context.Background(), storage.NewMemoryStore(), storefront.Options{
		IDs:   &idgen.Sequence{},
		Clock: func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("failed to open storefront: %v", err)
	}
	return sf, NewRouter(sf, nil, 5*time.Second)
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, request)
	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return response
}
