package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/results"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>greeneye results</title></head>
<body>
<h1>Precision {{printf "%.3f" .Report.Result.Precision}}</h1>
<p>{{.Report.Result.TruePositive}} true positives, {{.Report.Result.FalsePositive}} false positives, generated {{.Report.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
{{range .Rows}}
<h2>{{.Index}}: {{.ID}} (TP={{.TruePositive}} FP={{.FalsePositive}})</h2>
{{if .Composite}}<img src="/composites/{{.Composite}}" alt="{{.ID}}" style="max-width:100%">{{end}}
{{end}}
</body>
</html>
`))

// HandleIndex renders a page with the overall precision and every composite
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	report, ok := h.loadReportOrError(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html")
	data := struct {
		Report *results.Report
		Rows   []results.SampleRow
	}{report, report.Rows()}
	if err := indexTemplate.Execute(w, data); err != nil {
		slog.Error("Unable to render index", "err", err)
	}
}

// HandleComposite serves a composite image from the output directory
func (h *Handler) HandleComposite(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/composites/")

	// Prevent directory traversal attacks
	if name == "" || strings.Contains(name, "..") || strings.ContainsRune(name, '/') {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		w.Header().Set("Content-Type", "image/jpeg")
	default:
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, name))
}

// Routes registers every handler on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/results", h.HandleResults)
	mux.HandleFunc("/api/samples", h.HandleSamples)
	mux.HandleFunc("/api/samples/", h.HandleSampleDetail)
	mux.HandleFunc("/composites/", h.HandleComposite)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
	mux.HandleFunc("/", h.HandleIndex)
	return mux
}
