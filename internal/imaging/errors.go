package imaging

import (
	"errors"
	"fmt"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
)

// DecodeError reports an image file that could not be decoded
type DecodeError struct {
	File string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RenderError reports a polygon that could not be drawn
type RenderError struct {
	Index    int
	ID       string
	Category string
	Polygon  annotation.Polygon
	Reason   string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to draw %s polygon %v on sample %d (%s): %s",
		e.Category, e.Polygon, e.Index, e.ID, e.Reason)
}

// WithSampleIndex records index on err when it is a *RenderError, then returns err.
// Overlay only knows the frame it draws on, so callers iterating over a sequence
// use this to name the position of the failing sample.
func WithSampleIndex(err error, index int) error {
	var renderErr *RenderError
	if errors.As(err, &renderErr) {
		renderErr.Index = index
	}
	return err
}
