package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fjod/storefront/internal/report"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"
)

type ReportHandler struct {
	sf      Storefront
	exports singleflight.Group
}

func NewReportHandler(sf Storefront) *ReportHandler {
	return &ReportHandler{sf: sf}
}

// month reads {month}; "current" means the storefront clock's month.
func (h *ReportHandler) month(r *http.Request) (report.YearMonth, error) {
	raw := chi.URLParam(r, "month")
	if raw == "" || raw == "current" {
		return h.sf.CurrentMonth(), nil
	}
	return report.ParseYearMonth(raw)
}

// GET /api/v1/reports/{month}
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ym, err := h.month(r)
	if err != nil {
		handleError(w, err, "")
		return
	}
	respondJSON(w, http.StatusOK, h.sf.Report(ym))
}

// GET /api/v1/reports/{month}/export
// Concurrent exports of the same month at the same state version share one
// workbook.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ym, err := h.month(r)
	if err != nil {
		handleError(w, err, "")
		return
	}

	key := ym.String() + "@" + strconv.FormatUint(h.sf.Version(), 10)
	v, err, _ := h.exports.Do(key, func() (interface{}, error) {
		var buf bytes.Buffer
		if err := report.WriteXLSX(&buf, h.sf.Report(ym)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		handleError(w, err, "")
		return
	}

	data := v.([]byte)
	w.Header().Set("Content-Type", report.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sales-%s.xlsx"`, ym))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
