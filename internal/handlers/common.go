package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/results"
)

// Handler serves the output directory of a run: its composites and its report
type Handler struct {
	dir string
}

func New(dir string) *Handler {
	return &Handler{dir: dir}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// The report is read on every request so a run finishing while the server is up
// shows up without a restart.
func (h *Handler) loadReportOrError(w http.ResponseWriter) (*results.Report, bool) {
	report, err := results.LoadJSON(h.dir)
	if err != nil {
		h.writeError(w, "Results not found: "+err.Error(), http.StatusNotFound)
		return nil, false
	}
	return report, true
}
