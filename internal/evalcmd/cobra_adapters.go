package evalcmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/greeneye/internal/config"
)

// configFlags are the flags shared by every command that reads a dataset.
// Flags that were set on the command line win over the config file and the environment.
type configFlags struct {
	configPath      string
	originalPath    string
	groundTruthPath string
	predictionPath  string
	outputPath      string
	nameFilter      string
	concurrency     int
	jpegQuality     int
	stamp           bool
	verbose         bool
}

func (f *configFlags) register(cmd *cobra.Command) {
	defaults := config.Default()

	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&f.originalPath, "images", defaults.OriginalPath, "Directory of source photos")
	cmd.Flags().StringVar(&f.groundTruthPath, "ground-truth", defaults.GroundTruthPath, "Directory of ground-truth annotation files")
	cmd.Flags().StringVar(&f.predictionPath, "prediction", defaults.PredictionPath, "Directory of prediction annotation files")
	cmd.Flags().StringVar(&f.outputPath, "output", defaults.OutputPath, "Directory for composites and results")
	cmd.Flags().StringVar(&f.nameFilter, "name-filter", defaults.NameFilter, "File name filter (marker:N[:c], length:N, pattern:<re>, all)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", defaults.Concurrency, "Number of samples processed in parallel")
	cmd.Flags().IntVar(&f.jpegQuality, "jpeg-quality", defaults.JPEGQuality, "JPEG quality of the composites (1-100)")
	cmd.Flags().BoolVar(&f.stamp, "stamp", defaults.StampNames, "Write each file name onto its photo")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Verbose logging")
}

// load builds the effective configuration: defaults, then the config file, then
// GREENEYE_* variables, then any flag given explicitly.
func (f *configFlags) load(cmd *cobra.Command) (*config.Config, error) {
	setupLogging(f.verbose)

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	overrides := map[string]func(){
		"images":       func() { cfg.OriginalPath = f.originalPath },
		"ground-truth": func() { cfg.GroundTruthPath = f.groundTruthPath },
		"prediction":   func() { cfg.PredictionPath = f.predictionPath },
		"output":       func() { cfg.OutputPath = f.outputPath },
		"name-filter":  func() { cfg.NameFilter = f.nameFilter },
		"concurrency":  func() { cfg.Concurrency = f.concurrency },
		"jpeg-quality": func() { cfg.JPEGQuality = f.jpegQuality },
		"stamp":        func() { cfg.StampNames = f.stamp },
	}
	for name, apply := range overrides {
		if flags.Changed(name) {
			apply()
		}
	}

	slog.Debug("Resolved configuration", "config", *cfg)

	return cfg, nil
}

// setupLogging sends slog output to stderr, at debug level when verbose is set.
// stdout is left for the precision line and reports.
func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draw annotations, score predictions and write comparison composites",
		Long: `Run the full evaluation.

Every photo in the images directory is paired by file name with one ground-truth
and one prediction annotation file. The ground truth is drawn onto a copy of the
photo, the predictions are drawn on top of that, and the original, ground-truth and
combined panels are written side by side to <output>/<index>.jpg.

Precision is the share of predicted polygons that appear verbatim in the ground
truth of the same photo and category. It is printed as a single line on stdout and
saved with the per-sample breakdown to results.json, results.yaml and samples.parquet.`,
		Example: `  # Evaluate the default img/, ground_truth/ and prediction/ directories
  greeneye run

  # Use a config file and four workers
  greeneye run --config greeneye.yaml --concurrency 4

  # Accept every file instead of the 36-character name filter
  greeneye run --name-filter all --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return executeRun(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)

	return cmd
}

// NewScoreCmd creates the score command
func NewScoreCmd() *cobra.Command {
	var flags configFlags
	var reportPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute precision from the annotation directories only",
		Long: `Score predictions against the ground truth without reading or writing any images.

Prints the precision line followed by a per-category summary.`,
		Example: `  greeneye score --ground-truth ./gt --prediction ./pred

  # Also write a per-sample text report
  greeneye score --report-file score.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return executeScore(cfg, reportPath, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&reportPath, "report-file", "", "Write a per-sample text report to this path")

	return cmd
}

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	var flags configFlags
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show which files are paired and what they contain",
		Long: `Inspect the dataset directories before running an evaluation.

Lists the files each directory contributes after the name filter, how many were
skipped, and the number of polygons per category. With --samples every paired
sample is shown with its per-category true and false positives.`,
		Example: `  # Summarise the three directories
  greeneye inspect

  # Walk through the first 5 samples one at a time
  greeneye inspect --samples --limit 5 --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return executeInspect(cmd.Context(), cfg, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&opts.limit, "limit", 10, "Number of files or samples to list (0 for all)")
	cmd.Flags().BoolVar(&opts.samples, "samples", false, "Show each paired sample")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "Pause after each sample (press Enter to continue)")

	return cmd
}

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	var resultsDir string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the results of a previous run",
		Long: `Load results.json from a run's output directory and print it as text, JSON or CSV.
The parquet format prints the per-sample table from samples.parquet instead.`,
		Example: `  greeneye report --results ./output

  # One CSV row per sample
  greeneye report --results ./output --format csv > samples.csv

  # Per-sample table written by the run's parquet export
  greeneye report --results ./output --format parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resultsDir == "" {
				return fmt.Errorf("--results is required")
			}
			return executeReport(resultsDir, format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&resultsDir, "results", "output", "Output directory of a previous run")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv, parquet)")

	return cmd
}
