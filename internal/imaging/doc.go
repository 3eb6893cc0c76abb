// Package imaging renders annotation overlays and comparison panels for inspection photos.
//
// It covers the raster side of an evaluation run: loading the source photos in dataset
// order, drawing ground-truth and predicted polygons on copies of those photos, and
// placing the original and both overlays side by side in one wide composite.
//
// # Coordinate System
//
// Coordinates follow the image convention used by the annotation files:
//   - (0,0) is the top-left corner
//   - X increases rightward, Y increases downward
//   - Rectangle corners are inclusive on both ends, so the box (0,0)-(10,10)
//     covers 11x11 pixels
//
// # Copy-on-write
//
// No function in this package mutates an image it receives. Overlay and AddPolygons
// draw on a clone, and Compose builds a fresh canvas, so the same original may be
// passed to several independent overlay passes, including concurrently.
//
// # Error Handling
//
// Loading errors are reported as *dataset.IOError (unreadable directory or file) or
// *DecodeError (not a PNG, JPEG or GIF). Drawing errors are reported as *RenderError
// and name the sample, category and polygon that could not be drawn.
package imaging
