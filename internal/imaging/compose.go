package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PanelCount is the number of panels in a comparison composite
const PanelCount = 3

// Compose places three frames side by side on a new black canvas.
//
// The panel width W and height H are taken from original. The original is pasted at
// x=0, groundTruth at x=W and both at x=2W, all at y=0. Panels larger than W x H are
// clipped by the canvas.
func Compose(original, groundTruth, both Frame) Frame {
	w, h := original.Width(), original.Height()

	canvas := imaging.New(w*PanelCount, h, color.Black)
	for i, panel := range []Frame{original, groundTruth, both} {
		canvas = imaging.Paste(canvas, panel.Image, image.Pt(i*w, 0))
	}

	return Frame{ID: original.ID, Image: canvas}
}

// Combine composes the frames at each index of the three sequences.
//
// Only indices present in all three sequences are composed; the result has the
// length of the shortest input.
func Combine(originals, groundTruth, both []Frame) []Frame {
	n := min(len(originals), len(groundTruth), len(both))
	out := make([]Frame, 0, n)

	for i := 0; i < n; i++ {
		out = append(out, Compose(originals[i], groundTruth[i], both[i]))
	}

	return out
}
