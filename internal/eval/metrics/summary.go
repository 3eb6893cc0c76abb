package metrics

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// PrintSummary writes a human-readable summary of the precision result
func (r *PrecisionResult) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "GREENEYE PRECISION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Samples: %d\n", len(r.Samples))
	fmt.Fprintf(w, "Ground Truth Polygons: %d\n", r.GroundTruth)
	fmt.Fprintf(w, "Predicted Polygons: %d\n", r.Predicted())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PER-CATEGORY")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, c := range r.Categories {
		printCategoryStats(w, c)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERALL")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "True Positives: %d\n", r.TruePositive)
	fmt.Fprintf(w, "False Positives: %d\n", r.FalsePositive)
	fmt.Fprintf(w, "Precision: %.2f%% (%.3f)\n", r.Precision*100, r.Precision)
	fmt.Fprintf(w, "Recall: %.2f%% (%.3f)\n", r.Recall*100, r.Recall)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// printCategoryStats prints statistics for a single category
func printCategoryStats(w io.Writer, c CategoryStats) {
	fmt.Fprintf(w, "\n%s:\n", c.Category)
	fmt.Fprintf(w, "  Ground Truth: %d\n", c.GroundTruth)
	fmt.Fprintf(w, "  True Positives: %d\n", c.TruePositive)
	fmt.Fprintf(w, "  False Positives: %d\n", c.FalsePositive)
	if p, err := c.Precision(); err == nil {
		fmt.Fprintf(w, "  Precision: %.2f%% (%.3f)\n", p*100, p)
	} else {
		fmt.Fprintf(w, "  Precision: n/a (no predictions)\n")
	}
	fmt.Fprintf(w, "  Recall: %.2f%%\n", c.Recall()*100)
}

// SaveDetailedReport saves a per-sample report to a text file
func (r *PrecisionResult) SaveDetailedReport(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	separator := strings.Repeat("=", 80)
	fmt.Fprintf(file, "GREENEYE DETAILED REPORT\n")
	fmt.Fprintf(file, "%s\n\n", separator)

	for _, s := range r.Samples {
		fmt.Fprintf(file, "SAMPLE %d: %s\n", s.Index, s.ID)
		fmt.Fprintf(file, "  Ground Truth: %d, True Positives: %d, False Positives: %d\n",
			s.GroundTruth, s.TruePositive, s.FalsePositive)
	}

	fmt.Fprintf(file, "\n%s\n", separator)
	fmt.Fprintf(file, "Precision: %.4f\n", r.Precision)
	fmt.Fprintf(file, "Recall: %.4f\n", r.Recall)

	return nil
}
