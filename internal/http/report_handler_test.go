package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fjod/storefront/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestReportSummary(t *testing.T) {
	_, h := newTestServer(t)
	placeOrder(t, h)

	recorder := doRequest(t, h, "GET", "/api/v1/reports/2024-01", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var summary report.Summary
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&summary))
	assert.Equal(t, 1, summary.OrderCount)
	assert.Equal(t, "39.98", summary.TotalSales.String())
	assert.Equal(t, map[string]int{"T-Shirt": 2}, summary.ItemCounts)

	recorder = doRequest(t, h, "GET", "/api/v1/reports/2024-02", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&summary))
	assert.Equal(t, 0, summary.OrderCount)
}

func TestReportSummary_CurrentMonth(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "GET", "/api/v1/reports/current", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var summary report.Summary
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&summary))
	assert.Equal(t, "2024-01", summary.Month)
}

func TestReportSummary_InvalidMonth(t *testing.T) {
	_, h := newTestServer(t)

	recorder := doRequest(t, h, "GET", "/api/v1/reports/january", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "validation_failed", decodeError(t, recorder).Code)
}

func TestReportExport(t *testing.T) {
	_, h := newTestServer(t)
	placeOrder(t, h)

	recorder := doRequest(t, h, "GET", "/api/v1/reports/2024-01/export", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, report.ContentTypeXLSX, recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "sales-2024-01.xlsx")

	file, err := xlsx.OpenBinary(recorder.Body.Bytes())
	require.NoError(t, err)
	items := file.Sheet["Items"]
	require.NotNil(t, items)
	assert.Equal(t, "T-Shirt", items.Rows[1].Cells[0].Value)
}
