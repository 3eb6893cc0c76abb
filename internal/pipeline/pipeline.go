// Package pipeline runs an evaluation end to end: load the photos and both annotation
// sets, draw the ground truth and then the predictions, score the predictions, compose
// the comparison images and write everything to the output directory.
//
// Every stage is exported so callers can run a subset, e.g. the score command only
// needs LoadAnnotations and ScoreStage.
package pipeline

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/lehigh-university-libraries/greeneye/internal/config"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/dataset"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/results"
	"github.com/lehigh-university-libraries/greeneye/internal/imaging"
)

// Pipeline holds a validated configuration and the values parsed from it
type Pipeline struct {
	cfg       *config.Config
	filter    dataset.NameFilter
	gtColor   color.NRGBA
	predColor color.NRGBA
	now       func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithClock replaces time.Now, used for report timestamps and timings
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New validates cfg and prepares a pipeline for it
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	gtColor, err := imaging.ParseColor(cfg.GroundTruthColor)
	if err != nil {
		return nil, err
	}
	predColor, err := imaging.ParseColor(cfg.PredictionColor)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		filter:    filter,
		gtColor:   gtColor,
		predColor: predColor,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the configuration the pipeline was built with
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// Run executes every stage in order and saves the report next to the composites.
//
// The stages are load, overlay (ground truth, then predictions on top), score,
// compose and persist. Any stage error aborts the run; files written before the
// failure are left on disk.
func (p *Pipeline) Run(ctx context.Context) (*results.Report, error) {
	start := p.now()
	slog.Info("Starting evaluation run",
		"images", p.cfg.OriginalPath,
		"ground_truth", p.cfg.GroundTruthPath,
		"prediction", p.cfg.PredictionPath,
		"output", p.cfg.OutputPath,
		"concurrency", p.cfg.Concurrency)

	in, err := p.LoadStage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inputs: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	overlays, err := p.OverlayStage(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to draw annotations: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.ScoreStage(in)
	if err != nil {
		return nil, fmt.Errorf("failed to score predictions: %w", err)
	}
	slog.Info("Scored predictions",
		"true_positive", result.TruePositive,
		"false_positive", result.FalsePositive,
		"precision", result.Precision)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	composites, err := p.ComposeStage(ctx, in, overlays)
	if err != nil {
		return nil, fmt.Errorf("failed to compose images: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := p.PersistStage(ctx, composites)
	if err != nil {
		return nil, fmt.Errorf("failed to save composites: %w", err)
	}

	report := &results.Report{
		Config: results.RunConfig{
			OriginalPath:    p.cfg.OriginalPath,
			GroundTruthPath: p.cfg.GroundTruthPath,
			PredictionPath:  p.cfg.PredictionPath,
			OutputPath:      p.cfg.OutputPath,
			NameFilter:      p.cfg.NameFilter,
		},
		GeneratedAt: start.UTC(),
		Elapsed:     p.now().Sub(start).Round(time.Millisecond).String(),
		Result:      result,
		Composites:  files,
	}

	if err := p.SaveReport(report); err != nil {
		return nil, err
	}

	slog.Info("Evaluation run finished", "samples", len(in.Originals), "elapsed", report.Elapsed)

	return report, nil
}

// SaveReport writes the report as JSON, YAML and Parquet into the output directory
func (p *Pipeline) SaveReport(report *results.Report) error {
	dir := p.cfg.OutputPath
	if err := report.SaveJSON(dir); err != nil {
		return err
	}
	if err := report.SaveYAML(dir); err != nil {
		return err
	}
	if err := report.SaveParquet(dir); err != nil {
		return err
	}
	slog.Debug("Saved report", "dir", dir, "files", []string{results.JSONFile, results.YAMLFile, results.ParquetFile})
	return nil
}
