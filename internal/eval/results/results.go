package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/metrics"
)

// File names written into the output directory
const (
	JSONFile    = "results.json"
	YAMLFile    = "results.yaml"
	ParquetFile = "samples.parquet"
)

// RunConfig echoes the inputs of a run so a report can be traced back to its data
type RunConfig struct {
	OriginalPath    string `json:"original_path" yaml:"original_path"`
	GroundTruthPath string `json:"ground_truth_path" yaml:"ground_truth_path"`
	PredictionPath  string `json:"prediction_path" yaml:"prediction_path"`
	OutputPath      string `json:"output_path" yaml:"output_path"`
	NameFilter      string `json:"name_filter" yaml:"name_filter"`
}

// Report is everything an evaluation run produced
type Report struct {
	Config      RunConfig                `json:"config" yaml:"config"`
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
	Elapsed     string                   `json:"elapsed" yaml:"elapsed"`
	Result      *metrics.PrecisionResult `json:"result" yaml:"result"`
	Composites  []string                 `json:"composites" yaml:"composites"`
}

// SaveJSON writes the report to results.json in dir
func (r *Report) SaveJSON(dir string) error {
	file, err := os.Create(filepath.Join(dir, JSONFile))
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	return nil
}

// LoadJSON reads a report previously written by SaveJSON
func LoadJSON(dir string) (*Report, error) {
	file, err := os.Open(filepath.Join(dir, JSONFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	var report Report
	if err := json.NewDecoder(file).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	if report.Result == nil {
		return nil, fmt.Errorf("results file %s has no result section", filepath.Join(dir, JSONFile))
	}

	return &report, nil
}
