package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/dataset"
)

// Frame is a decoded photo together with the identifier of the file it came from.
//
// Frames are values: functions in this package return new frames rather than
// drawing into the ones they are given.
type Frame struct {
	ID    string
	Image *image.NRGBA
}

// Width returns the frame width in pixels
func (f Frame) Width() int {
	return f.Image.Bounds().Dx()
}

// Height returns the frame height in pixels
func (f Frame) Height() int {
	return f.Image.Bounds().Dy()
}

// Loader reads the source photos of a dataset in the same order as the annotation loader.
//
// The photos are listed with dataset.List, so the name filter and the lexicographic
// ordering are shared with the annotation directories. Each decoded photo has its file
// name written into the top-left corner, which makes the composites traceable back to
// their source file.
type Loader struct {
	dir    string
	filter dataset.NameFilter
	stamp  bool
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithStamp enables or disables writing the file name onto each photo
func WithStamp(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.stamp = enabled
	}
}

// NewLoader creates a photo loader for dir. A nil filter accepts every file.
func NewLoader(dir string, filter dataset.NameFilter, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:    dir,
		filter: filter,
		stamp:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load decodes every accepted photo in name order.
//
// Returns:
//   - []Frame: photos converted to NRGBA, in dataset order.
//   - error: *dataset.IOError if the directory or a file cannot be read,
//     *DecodeError if a file is not a supported image.
func (l *Loader) Load() ([]Frame, error) {
	entries, err := dataset.List(l.dir, l.filter)
	if err != nil {
		return nil, err
	}

	frames := make([]Frame, 0, len(entries))
	for _, entry := range entries {
		frame, err := l.loadFrame(entry)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	slog.Debug("Finished reading images", "dir", l.dir, "total_images", len(frames))

	return frames, nil
}

func (l *Loader) loadFrame(entry dataset.Entry) (Frame, error) {
	f, err := os.Open(entry.Path)
	if err != nil {
		return Frame{}, &dataset.IOError{Path: entry.Path, Err: err}
	}
	defer f.Close()

	src, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return Frame{}, &DecodeError{File: entry.Path, Err: err}
	}

	img := imaging.Clone(src)
	if l.stamp {
		drawLabel(img, 0, 0, entry.Name, color.White)
	}

	slog.Debug("Loaded image", "name", entry.Name, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	return Frame{ID: entry.ID, Image: img}, nil
}

// drawLabel writes text with its top-left corner at (x, y) using the built-in 7x13 face
func drawLabel(img draw.Image, x, y int, text string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}
