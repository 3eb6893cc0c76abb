package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/lehigh-university-libraries/greeneye/internal/config"
	"github.com/lehigh-university-libraries/greeneye/internal/pipeline"
)

func executeRun(ctx context.Context, cfg *config.Config, out io.Writer) error {
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	report, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "precision is: %v\n", report.Result.Precision)

	slog.Info("Results saved", "dir", cfg.OutputPath, "composites", len(report.Composites))
	slog.Info("Generate a detailed report with", "command", "greeneye report --results "+cfg.OutputPath)

	return nil
}
