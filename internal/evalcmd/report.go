package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/metrics"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/results"
)

func executeReport(resultsDir, format string, out io.Writer) error {
	// samples.parquet stands alone, so it can be read without results.json
	if format == "parquet" {
		return printParquetReport(resultsDir, out)
	}

	report, err := results.LoadJSON(resultsDir)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(report, out)
	case "json":
		return printJSONReport(report, out)
	case "csv":
		return printCSVReport(report, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(report *results.Report, out io.Writer) error {
	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintln(out, "Greeneye Evaluation Report")
	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintf(out, "Generated:    %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Elapsed:      %s\n", report.Elapsed)
	fmt.Fprintf(out, "Images:       %s\n", report.Config.OriginalPath)
	fmt.Fprintf(out, "Ground truth: %s\n", report.Config.GroundTruthPath)
	fmt.Fprintf(out, "Prediction:   %s\n", report.Config.PredictionPath)
	fmt.Fprintf(out, "Name filter:  %s\n", report.Config.NameFilter)

	report.Result.PrintSummary(out)

	fmt.Fprintln(out, "\nDetailed Results:")
	fmt.Fprintln(out, strings.Repeat("=", 70))

	for _, row := range report.Rows() {
		fmt.Fprintf(out, "[%d] %s\n", row.Index, row.ID)
		fmt.Fprintf(out, "  TP=%d FP=%d ground truth=%d\n", row.TruePositive, row.FalsePositive, row.GroundTruth)
		if row.Composite != "" {
			fmt.Fprintf(out, "  Composite: %s\n", row.Composite)
		}
	}

	return nil
}

func printJSONReport(report *results.Report, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func printCSVReport(report *results.Report, out io.Writer) error {
	writer := csv.NewWriter(out)

	header := []string{"index", "id", "true_positive", "false_positive", "ground_truth", "precision", "composite"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range report.Rows() {
		counts := metrics.Counts{
			TruePositive:  int(row.TruePositive),
			FalsePositive: int(row.FalsePositive),
			GroundTruth:   int(row.GroundTruth),
		}
		precision := ""
		if p, err := counts.Precision(); err == nil {
			precision = fmt.Sprintf("%.4f", p)
		}

		record := []string{
			strconv.FormatInt(row.Index, 10),
			row.ID,
			strconv.FormatInt(row.TruePositive, 10),
			strconv.FormatInt(row.FalsePositive, 10),
			strconv.FormatInt(row.GroundTruth, 10),
			precision,
			row.Composite,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func printParquetReport(resultsDir string, out io.Writer) error {
	rows, err := results.LoadParquet(resultsDir)
	if err != nil {
		return fmt.Errorf("failed to load sample table: %w", err)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tID\tTP\tFP\tGROUND TRUTH\tCOMPOSITE")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%s\n",
			row.Index, row.ID, row.TruePositive, row.FalsePositive, row.GroundTruth, row.Composite)
	}
	return w.Flush()
}
