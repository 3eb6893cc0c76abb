package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMarkerOffset is the position of the extension dot in the UUID-named files
// produced by the inspection camera (36 character base name followed by ".json"/".png").
const DefaultMarkerOffset = 36

// DefaultNameFilter is the filter spec used when none is configured
const DefaultNameFilter = "marker:36"

// NameFilter decides whether a directory entry belongs to the dataset.
// It receives the bare file name, never the full path.
type NameFilter func(name string) bool

// MarkerAt accepts names whose character at offset equals marker. Offsets count
// characters (runes), not bytes. Names too short to have a character at offset
// are rejected.
//
// With offset 36 and marker '.', "<36 chars>.json" is accepted while a
// duplicate such as "<36 chars>(1).json" is not.
func MarkerAt(offset int, marker rune) NameFilter {
	return func(name string) bool {
		if offset < 0 {
			return false
		}
		i := 0
		for _, r := range name {
			if i == offset {
				return r == marker
			}
			i++
		}
		return false
	}
}

// BaseNameLength accepts names whose extension starts exactly after n characters
func BaseNameLength(n int) NameFilter {
	return MarkerAt(n, '.')
}

// Pattern accepts names matching re
func Pattern(re *regexp.Regexp) NameFilter {
	return func(name string) bool {
		return re.MatchString(name)
	}
}

// AcceptAll accepts every name
func AcceptAll(string) bool {
	return true
}

// ParseNameFilter builds a NameFilter from its textual form:
//
//	marker:36        character at offset 36 is '.'
//	marker:36:_      character at offset 36 is '_'
//	length:36        base name is exactly 36 characters long
//	pattern:<regexp> name matches the regular expression
//	all              accept everything
func ParseNameFilter(spec string) (NameFilter, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "all" {
		return AcceptAll, nil
	}

	kind, arg, found := strings.Cut(spec, ":")
	if !found {
		return nil, fmt.Errorf("invalid name filter %q: expected kind:argument", spec)
	}

	switch kind {
	case "marker":
		offsetStr, markerStr, hasMarker := strings.Cut(arg, ":")
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid marker offset %q in name filter %q", offsetStr, spec)
		}
		marker := '.'
		if hasMarker {
			if utf8.RuneCountInString(markerStr) != 1 {
				return nil, fmt.Errorf("marker must be a single character in name filter %q", spec)
			}
			marker, _ = utf8.DecodeRuneInString(markerStr)
		}
		return MarkerAt(offset, marker), nil
	case "length":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid base name length %q in name filter %q", arg, spec)
		}
		return BaseNameLength(n), nil
	case "pattern":
		re, err := regexp.Compile(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern in name filter %q: %w", spec, err)
		}
		return Pattern(re), nil
	default:
		return nil, fmt.Errorf("unknown name filter kind %q (supported: marker, length, pattern, all)", kind)
	}
}
