package evalcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/greeneye/internal/config"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/dataset"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/metrics"
)

type inspectOptions struct {
	limit       int
	samples     bool
	interactive bool
}

func executeInspect(ctx context.Context, cfg *config.Config, opts inspectOptions, in io.Reader, out io.Writer) error {
	filter, err := cfg.Filter()
	if err != nil {
		return err
	}

	dirs := []struct {
		label string
		path  string
	}{
		{"Images", cfg.OriginalPath},
		{"Ground truth", cfg.GroundTruthPath},
		{"Prediction", cfg.PredictionPath},
	}

	fmt.Fprintf(out, "Name filter: %s\n", cfg.NameFilter)
	fmt.Fprintln(out, strings.Repeat("=", 80))

	for _, d := range dirs {
		if err := inspectDir(out, d.label, d.path, filter, opts.limit); err != nil {
			return err
		}
	}

	groundTruth, err := dataset.NewLoader(cfg.GroundTruthPath, filter).Load()
	if err != nil {
		return fmt.Errorf("failed to load ground truth: %w", err)
	}
	prediction, err := dataset.NewLoader(cfg.PredictionPath, filter).Load()
	if err != nil {
		return fmt.Errorf("failed to load predictions: %w", err)
	}

	fmt.Fprintln(out, "Polygons per category:")
	printCategoryCounts(out, "ground truth", dataset.Counts(groundTruth))
	printCategoryCounts(out, "prediction", dataset.Counts(prediction))
	printMissingCategories(out, "ground truth", groundTruth)
	printMissingCategories(out, "prediction", prediction)
	fmt.Fprintln(out)

	pairErr := metrics.CheckPairing("ground truth/prediction", ids(groundTruth), ids(prediction))
	if pairErr != nil {
		fmt.Fprintf(out, "Pairing: %v\n", pairErr)
	} else {
		fmt.Fprintln(out, "Pairing: OK")
	}

	if !opts.samples || pairErr != nil {
		return nil
	}

	fmt.Fprintln(out, strings.Repeat("=", 80))
	return walkSamples(ctx, groundTruth, prediction, opts, in, out)
}

func inspectDir(out io.Writer, label, path string, filter dataset.NameFilter, limit int) error {
	accepted, err := dataset.List(path, filter)
	if err != nil {
		return fmt.Errorf("failed to list %s directory: %w", strings.ToLower(label), err)
	}
	all, err := dataset.List(path, dataset.AcceptAll)
	if err != nil {
		return fmt.Errorf("failed to list %s directory: %w", strings.ToLower(label), err)
	}

	fmt.Fprintf(out, "%s: %s\n", label, path)
	fmt.Fprintf(out, "  Accepted: %d  Skipped: %d\n", len(accepted), len(all)-len(accepted))

	shown := accepted
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, entry := range shown {
		fmt.Fprintf(out, "  %s\n", entry)
	}
	if len(shown) < len(accepted) {
		fmt.Fprintf(out, "  [... %d more ...]\n", len(accepted)-len(shown))
	}
	fmt.Fprintln(out)

	return nil
}

func printCategoryCounts(out io.Writer, label string, counts map[string]int) {
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Fprintf(out, "  %s:", label)
	if len(categories) == 0 {
		fmt.Fprint(out, " none")
	}
	for _, c := range categories {
		fmt.Fprintf(out, " %s=%d", c, counts[c])
	}
	fmt.Fprintln(out)
}

// printMissingCategories warns about files that lack one of the default category
// keys. Scoring treats a missing key as empty, which can hide a broken export.
func printMissingCategories(out io.Writer, label string, samples []annotation.Sample) {
	missing := make(map[string]int)
	for _, s := range samples {
		for _, c := range s.Record.Missing(annotation.DefaultCategories) {
			missing[c]++
		}
	}
	for _, c := range annotation.DefaultCategories {
		if missing[c] > 0 {
			fmt.Fprintf(out, "  warning: %d %s file(s) have no %q key\n", missing[c], label, c)
		}
	}
}

func walkSamples(ctx context.Context, groundTruth, prediction []annotation.Sample, opts inspectOptions, in io.Reader, out io.Writer) error {
	n := len(groundTruth)
	if opts.limit > 0 && n > opts.limit {
		n = opts.limit
	}

	reader := bufio.NewReader(in)

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInspection interrupted.")
			return nil
		default:
		}

		fmt.Fprintf(out, "SAMPLE %d/%d: %s\n", i+1, len(groundTruth), groundTruth[i].ID)
		fmt.Fprintln(out, strings.Repeat("-", 80))

		counts := metrics.CountMatches(groundTruth[i].Record, prediction[i].Record)
		categories := make([]string, 0, len(counts))
		for c := range counts {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		for _, c := range categories {
			cc := counts[c]
			fmt.Fprintf(out, "  %-10s ground truth=%d  predicted=%d  TP=%d  FP=%d\n",
				c, cc.GroundTruth, cc.Predicted(), cc.TruePositive, cc.FalsePositive)
		}
		fmt.Fprintln(out)

		if !opts.interactive {
			continue
		}

		fmt.Fprint(out, "Press Enter to continue to next sample (or Ctrl+C to quit)...")

		inputCh := make(chan struct{})
		go func() {
			_, _ = reader.ReadString('\n')
			close(inputCh)
		}()

		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nInspection interrupted.")
			return nil
		case <-inputCh:
			fmt.Fprintln(out)
		}
	}

	return nil
}

func ids(samples []annotation.Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.ID
	}
	return out
}
