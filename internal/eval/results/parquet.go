package results

import (
	"fmt"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// SampleRow is one sample of a run as stored in samples.parquet
type SampleRow struct {
	Index         int64  `parquet:"index" json:"index"`
	ID            string `parquet:"id" json:"id"`
	TruePositive  int64  `parquet:"true_positive" json:"true_positive"`
	FalsePositive int64  `parquet:"false_positive" json:"false_positive"`
	GroundTruth   int64  `parquet:"ground_truth" json:"ground_truth"`
	Composite     string `parquet:"composite" json:"composite"`
}

// Rows flattens the per-sample statistics, attaching the composite file of each
// sample when one was written.
func (r *Report) Rows() []SampleRow {
	if r.Result == nil {
		return nil
	}

	rows := make([]SampleRow, 0, len(r.Result.Samples))
	for _, s := range r.Result.Samples {
		row := SampleRow{
			Index:         int64(s.Index),
			ID:            s.ID,
			TruePositive:  int64(s.TruePositive),
			FalsePositive: int64(s.FalsePositive),
			GroundTruth:   int64(s.GroundTruth),
		}
		if s.Index < len(r.Composites) {
			row.Composite = r.Composites[s.Index]
		}
		rows = append(rows, row)
	}
	return rows
}

// SaveParquet writes one row per sample to samples.parquet in dir
func (r *Report) SaveParquet(dir string) error {
	path := filepath.Join(dir, ParquetFile)
	if err := parquet.WriteFile(path, r.Rows()); err != nil {
		return fmt.Errorf("failed to write parquet file: %w", err)
	}
	return nil
}

// LoadParquet reads the rows written by SaveParquet
func LoadParquet(dir string) ([]SampleRow, error) {
	rows, err := parquet.ReadFile[SampleRow](filepath.Join(dir, ParquetFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file: %w", err)
	}
	return rows, nil
}
