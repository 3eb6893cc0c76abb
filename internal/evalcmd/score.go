package evalcmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lehigh-university-libraries/greeneye/internal/config"
	"github.com/lehigh-university-libraries/greeneye/internal/pipeline"
)

func executeScore(cfg *config.Config, reportPath string, out io.Writer) error {
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	slog.Info("Loading annotations", "ground_truth", cfg.GroundTruthPath, "prediction", cfg.PredictionPath)
	groundTruth, prediction, err := p.LoadAnnotations()
	if err != nil {
		return fmt.Errorf("failed to load annotations: %w", err)
	}

	result, err := p.ScoreStage(&pipeline.Inputs{GroundTruth: groundTruth, Prediction: prediction})
	if err != nil {
		return fmt.Errorf("failed to score predictions: %w", err)
	}

	fmt.Fprintf(out, "precision is: %v\n", result.Precision)
	result.PrintSummary(out)

	if reportPath != "" {
		if err := result.SaveDetailedReport(reportPath); err != nil {
			return err
		}
		slog.Info("Detailed report saved", "path", reportPath)
	}

	return nil
}
