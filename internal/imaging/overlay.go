package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
)

// Overlay returns a copy of frame with every polygon of record drawn as an outlined rectangle.
//
// Each polygon is drawn as the bounding box of its points, so every category renders
// the same way regardless of its name. The outline is width pixels thick and grows
// inward from the box edge. Categories are drawn in sorted order, which only matters
// where outlines of different categories overlap.
//
// The input frame is never modified. A polygon with fewer than two points or a
// non-positive width yields a *RenderError.
func Overlay(frame Frame, record annotation.Record, c color.Color, width int) (Frame, error) {
	if width < 1 {
		return Frame{}, &RenderError{ID: frame.ID, Reason: "outline width must be at least 1"}
	}

	dst := imaging.Clone(frame.Image)

	for _, category := range record.Categories() {
		for _, poly := range record[category] {
			rect, err := polygonRect(poly, dst.Bounds(), width)
			if err != nil {
				return Frame{}, &RenderError{ID: frame.ID, Category: category, Polygon: poly, Reason: err.Error()}
			}
			drawRectangle(dst, rect, c, width)
		}
	}

	return Frame{ID: frame.ID, Image: dst}, nil
}

// AddPolygons draws samples[i] onto a copy of frames[i] for every index both sequences share.
//
// Extra elements in the longer sequence are dropped. The returned frames are new
// images in the same order as the input; frames itself is left untouched and can be
// used for another, independent pass.
func AddPolygons(frames []Frame, samples []annotation.Sample, c color.Color, width int) ([]Frame, error) {
	n := min(len(frames), len(samples))
	out := make([]Frame, 0, n)

	for i := 0; i < n; i++ {
		drawn, err := Overlay(frames[i], samples[i].Record, c, width)
		if err != nil {
			return nil, WithSampleIndex(err, i)
		}
		out = append(out, drawn)
	}

	return out, nil
}

// polygonRect converts a polygon to the inclusive pixel rectangle of its bounding box.
// The returned rectangle's Max is one past the last covered pixel.
//
// Coordinates are clamped to bounds grown by width+1 on each side before rounding.
// An edge that far out cannot reach the image with an inward stroke, so clamping
// changes nothing visible and keeps huge coordinates from overflowing int.
func polygonRect(poly annotation.Polygon, bounds image.Rectangle, width int) (image.Rectangle, error) {
	minX, minY, maxX, maxY, ok := poly.Bounds()
	if !ok {
		return image.Rectangle{}, errors.New("polygon needs at least two points")
	}
	for _, v := range []float64{minX, minY, maxX, maxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return image.Rectangle{}, errors.New("polygon has a non-finite coordinate")
		}
	}

	margin := float64(width + 1)
	loX, hiX := float64(bounds.Min.X)-margin, float64(bounds.Max.X)+margin
	loY, hiY := float64(bounds.Min.Y)-margin, float64(bounds.Max.Y)+margin

	return image.Rect(
		int(math.Round(clamp(minX, loX, hiX))),
		int(math.Round(clamp(minY, loY, hiY))),
		int(math.Round(clamp(maxX, loX, hiX)))+1,
		int(math.Round(clamp(maxY, loY, hiY)))+1,
	), nil
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// drawRectangle strokes the border of r, width pixels thick, clipped to the image
func drawRectangle(img *image.NRGBA, r image.Rectangle, c color.Color, width int) {
	bounds := img.Bounds()

	for k := 0; k < width; k++ {
		inner := image.Rect(r.Min.X+k, r.Min.Y+k, r.Max.X-k, r.Max.Y-k)
		if inner.Empty() {
			break
		}
		edges := []image.Rectangle{
			image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X, inner.Min.Y+1), // top
			image.Rect(inner.Min.X, inner.Max.Y-1, inner.Max.X, inner.Max.Y), // bottom
			image.Rect(inner.Min.X, inner.Min.Y, inner.Min.X+1, inner.Max.Y), // left
			image.Rect(inner.Max.X-1, inner.Min.Y, inner.Max.X, inner.Max.Y), // right
		}
		for _, edge := range edges {
			fillRect(img, edge.Intersect(bounds), c)
		}
	}
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}
