package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/metrics"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/results"
)

func createTestOutput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	box := annotation.Polygon{{0, 0}, {4, 4}}
	groundTruth := []annotation.Sample{{ID: "a", Record: annotation.Record{"circle": {box}}}}
	prediction := []annotation.Sample{{ID: "a", Record: annotation.Record{"circle": {box, {{1, 1}, {2, 2}}}}}}

	result, err := metrics.CalculatePrecision(groundTruth, prediction)
	require.NoError(t, err, "CalculatePrecision failed")

	report := &results.Report{
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Result:      result,
		Composites:  []string{"0.jpg"},
	}
	require.NoError(t, report.SaveJSON(dir), "SaveJSON failed")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0.jpg"), []byte("jpeg bytes"), 0644), "Failed to write composite")

	return dir
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleResults(t *testing.T) {
	mux := New(createTestOutput(t)).Routes()

	rec := get(t, mux, "/api/results")
	require.Equal(t, http.StatusOK, rec.Code)

	var report results.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report), "Failed to decode response")
	require.NotNil(t, report.Result)
	assert.Equal(t, 0.5, report.Result.Precision)
}

func TestHandleSamples(t *testing.T) {
	mux := New(createTestOutput(t)).Routes()

	rec := get(t, mux, "/api/samples")
	var samples []SampleDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&samples), "Failed to decode response")
	require.Len(t, samples, 1)
	assert.Equal(t, "/composites/0.jpg", samples[0].CompositeURL)

	tests := []struct {
		path string
		code int
	}{
		{"/api/samples/0", http.StatusOK},
		{"/api/samples/1", http.StatusNotFound},
		{"/api/samples/x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, get(t, mux, tt.path).Code, tt.path)
	}
}

func TestHandleComposite(t *testing.T) {
	mux := New(createTestOutput(t)).Routes()

	rec := get(t, mux, "/composites/0.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg bytes", rec.Body.String())
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusBadRequest, get(t, mux, "/composites/results.json").Code,
		"Expected non-image files to be refused")

	// The mux cleans paths before routing, so call the handler directly
	h := New(t.TempDir())
	req := httptest.NewRequest(http.MethodGet, "/composites/0.jpg", nil)
	req.URL.Path = "/composites/../secret.jpg"
	rec = httptest.NewRecorder()
	h.HandleComposite(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "Expected traversal to be refused")
}

func TestHandleIndex(t *testing.T) {
	mux := New(createTestOutput(t)).Routes()

	rec := get(t, mux, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{"Precision 0.500", `src="/composites/0.jpg"`} {
		assert.Contains(t, body, want)
	}

	assert.Equal(t, http.StatusNotFound, get(t, mux, "/missing").Code, "Expected 404 for unknown path")
	assert.Equal(t, "OK", get(t, mux, "/healthcheck").Body.String())
}

func TestMissingResults(t *testing.T) {
	mux := New(t.TempDir()).Routes()

	assert.Equal(t, http.StatusNotFound, get(t, mux, "/api/results").Code, "Expected 404 without results.json")
}
