package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when no quality is configured
const DefaultJPEGQuality = 95

// CompositeName returns the output file name for the composite at index
func CompositeName(index int) string {
	return strconv.Itoa(index) + ".jpg"
}

// Save writes img to path. The format is taken from the file extension; JPEG files
// are written with the given quality.
func Save(img image.Image, path string, quality int) error {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", filepath.Base(path), err)
	}
	return nil
}
