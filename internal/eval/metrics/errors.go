package metrics

import (
	"errors"
	"fmt"
)

// ErrUndefinedPrecision is returned when there are no predictions at all, so
// TP + FP is zero and precision has no value.
var ErrUndefinedPrecision = errors.New("precision is undefined: no predicted polygons (true_positive + false_positive = 0)")

// LengthMismatchError reports two sequences that must be index-aligned but differ in length
type LengthMismatchError struct {
	What  string
	Left  int
	Right int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch for %s: %d vs %d", e.What, e.Left, e.Right)
}

// CorrespondenceError reports an index where paired sequences come from differently named files
type CorrespondenceError struct {
	Index   int
	LeftID  string
	RightID string
}

func (e *CorrespondenceError) Error() string {
	return fmt.Sprintf("sample %d does not correspond: %q vs %q", e.Index, e.LeftID, e.RightID)
}

// CheckPairing verifies that two identifier sequences describe the same samples in the
// same order. Empty identifiers are not compared.
func CheckPairing(what string, left, right []string) error {
	if len(left) != len(right) {
		return &LengthMismatchError{What: what, Left: len(left), Right: len(right)}
	}
	for i := range left {
		if left[i] == "" || right[i] == "" {
			continue
		}
		if left[i] != right[i] {
			return &CorrespondenceError{Index: i, LeftID: left[i], RightID: right[i]}
		}
	}
	return nil
}
