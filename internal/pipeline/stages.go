package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/dataset"
	"github.com/lehigh-university-libraries/greeneye/internal/eval/metrics"
	"github.com/lehigh-university-libraries/greeneye/internal/imaging"
)

// Inputs are the three index-aligned sequences a run works on
type Inputs struct {
	Originals   []imaging.Frame
	GroundTruth []annotation.Sample
	Prediction  []annotation.Sample
}

// Overlays are the outputs of the two drawing passes
type Overlays struct {
	// GroundTruth has the ground-truth polygons drawn on the originals
	GroundTruth []imaging.Frame
	// Both has the predictions drawn on top of GroundTruth
	Both []imaging.Frame
}

// LoadStage reads the photos and both annotation sets and checks that they pair up.
//
// All three directories must yield the same number of files after filtering, and
// the files at each index must share an ID.
func (p *Pipeline) LoadStage(ctx context.Context) (*Inputs, error) {
	started := p.now()

	originals, err := imaging.NewLoader(p.cfg.OriginalPath, p.filter, imaging.WithStamp(p.cfg.StampNames)).Load()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groundTruth, prediction, err := p.LoadAnnotations()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(originals))
	for i, f := range originals {
		ids[i] = f.ID
	}
	if err := metrics.CheckPairing("images/ground truth", ids, sampleIDs(groundTruth)); err != nil {
		return nil, err
	}

	slog.Info("Loaded inputs",
		"images", len(originals),
		"annotations", len(groundTruth),
		"elapsed", p.now().Sub(started).Round(time.Millisecond))

	return &Inputs{Originals: originals, GroundTruth: groundTruth, Prediction: prediction}, nil
}

// LoadAnnotations reads the ground-truth and prediction directories and checks that
// they pair up. It does not touch the photos.
func (p *Pipeline) LoadAnnotations() ([]annotation.Sample, []annotation.Sample, error) {
	groundTruth, err := dataset.NewLoader(p.cfg.GroundTruthPath, p.filter).Load()
	if err != nil {
		return nil, nil, err
	}
	prediction, err := dataset.NewLoader(p.cfg.PredictionPath, p.filter).Load()
	if err != nil {
		return nil, nil, err
	}

	if err := metrics.CheckPairing("ground truth/prediction", sampleIDs(groundTruth), sampleIDs(prediction)); err != nil {
		return nil, nil, err
	}

	return groundTruth, prediction, nil
}

// OverlayStage draws the ground truth onto copies of the originals, then the
// predictions onto copies of those. Neither pass modifies its input.
func (p *Pipeline) OverlayStage(ctx context.Context, in *Inputs) (*Overlays, error) {
	cfg := p.cfg

	if cfg.Concurrency <= 1 {
		gt, err := imaging.AddPolygons(in.Originals, in.GroundTruth, p.gtColor, cfg.GroundTruthWidth)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		both, err := imaging.AddPolygons(gt, in.Prediction, p.predColor, cfg.PredictionWidth)
		if err != nil {
			return nil, err
		}
		return &Overlays{GroundTruth: gt, Both: both}, nil
	}

	n := min(len(in.Originals), len(in.GroundTruth), len(in.Prediction))
	out := &Overlays{
		GroundTruth: make([]imaging.Frame, n),
		Both:        make([]imaging.Frame, n),
	}

	err := p.forEach(ctx, n, func(i int) error {
		gt, err := imaging.Overlay(in.Originals[i], in.GroundTruth[i].Record, p.gtColor, cfg.GroundTruthWidth)
		if err != nil {
			return imaging.WithSampleIndex(err, i)
		}
		both, err := imaging.Overlay(gt, in.Prediction[i].Record, p.predColor, cfg.PredictionWidth)
		if err != nil {
			return imaging.WithSampleIndex(err, i)
		}
		out.GroundTruth[i] = gt
		out.Both[i] = both
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ScoreStage computes precision of the predictions against the ground truth
func (p *Pipeline) ScoreStage(in *Inputs) (*metrics.PrecisionResult, error) {
	return metrics.CalculatePrecision(in.GroundTruth, in.Prediction)
}

// ComposeStage builds one three-panel composite per index
func (p *Pipeline) ComposeStage(ctx context.Context, in *Inputs, ov *Overlays) ([]imaging.Frame, error) {
	if p.cfg.Concurrency <= 1 {
		return imaging.Combine(in.Originals, ov.GroundTruth, ov.Both), nil
	}

	n := min(len(in.Originals), len(ov.GroundTruth), len(ov.Both))
	out := make([]imaging.Frame, n)

	err := p.forEach(ctx, n, func(i int) error {
		out[i] = imaging.Compose(in.Originals[i], ov.GroundTruth[i], ov.Both[i])
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// PersistStage writes composites[i] to <output>/<i>.jpg and returns the file names.
//
// A failure to create the output directory is only logged; the first save then
// reports the real problem.
func (p *Pipeline) PersistStage(ctx context.Context, composites []imaging.Frame) ([]string, error) {
	dir := p.cfg.OutputPath
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("Unable to create output directory", "dir", dir, "err", err)
	}

	names := make([]string, len(composites))
	err := p.forEach(ctx, len(composites), func(i int) error {
		name := imaging.CompositeName(i)
		if err := imaging.Save(composites[i].Image, filepath.Join(dir, name), p.cfg.JPEGQuality); err != nil {
			return err
		}
		slog.Debug("Saved composite", "index", i, "id", composites[i].ID, "file", name)
		names[i] = name
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Saved composites", "dir", dir, "count", len(names))

	return names, nil
}

// forEach calls fn for every index in [0, n) on at most Concurrency goroutines.
// It stops scheduling new indices after the first error or once ctx is done.
func (p *Pipeline) forEach(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Concurrency, 1))

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func sampleIDs(samples []annotation.Sample) []string {
	ids := make([]string, len(samples))
	for i, s := range samples {
		ids[i] = s.ID
	}
	return ids
}

