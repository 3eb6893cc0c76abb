package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/results"
)

// SampleDetail is one sample with the URL of its composite
type SampleDetail struct {
	results.SampleRow
	CompositeURL string `json:"composite_url,omitempty"`
}

func (h *Handler) HandleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, ok := h.loadReportOrError(w)
	if !ok {
		return
	}
	h.writeJSON(w, report)
}

func (h *Handler) HandleSamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, ok := h.loadReportOrError(w)
	if !ok {
		return
	}

	rows := report.Rows()
	samples := make([]SampleDetail, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, newSampleDetail(row))
	}
	h.writeJSON(w, samples)
}

func (h *Handler) HandleSampleDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	index, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/samples/"))
	if err != nil {
		h.writeError(w, "Invalid sample index", http.StatusBadRequest)
		return
	}

	report, ok := h.loadReportOrError(w)
	if !ok {
		return
	}

	rows := report.Rows()
	if index < 0 || index >= len(rows) {
		h.writeError(w, "Sample not found", http.StatusNotFound)
		return
	}
	h.writeJSON(w, newSampleDetail(rows[index]))
}

func newSampleDetail(row results.SampleRow) SampleDetail {
	detail := SampleDetail{SampleRow: row}
	if row.Composite != "" {
		detail.CompositeURL = "/composites/" + row.Composite
	}
	return detail
}
