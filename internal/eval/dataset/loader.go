package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
)

// Entry is a dataset file that passed the name filter
type Entry struct {
	// Name is the bare file name, e.g. "3f2a...c9.json"
	Name string
	// Path is the directory joined with Name
	Path string
	// ID is Name without its extension. Files in the image and annotation
	// directories that describe the same sample share an ID.
	ID string
}

// List returns the regular files in dir accepted by filter, sorted by name.
//
// The lexicographic order is the pairing contract between the image directory and
// the annotation directories, so every loader must go through List.
func List(dir string, filter NameFilter) ([]Entry, error) {
	if filter == nil {
		filter = AcceptAll
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if !filter(name) {
			slog.Debug("Skipping file rejected by name filter", "dir", dir, "name", name)
			continue
		}
		entries = append(entries, Entry{
			Name: name,
			Path: filepath.Join(dir, name),
			ID:   strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}

	return entries, nil
}

// Loader reads annotation records from a directory of JSON documents
type Loader struct {
	dir    string
	filter NameFilter
}

// NewLoader creates a new annotation loader. A nil filter accepts every file.
func NewLoader(dir string, filter NameFilter) *Loader {
	if filter == nil {
		filter = AcceptAll
	}
	return &Loader{
		dir:    dir,
		filter: filter,
	}
}

// Load reads every accepted annotation file in name order
func (l *Loader) Load() ([]annotation.Sample, error) {
	return l.LoadSample(-1)
}

// LoadSample reads at most limit annotation files in name order. A negative limit reads all.
func (l *Loader) LoadSample(limit int) ([]annotation.Sample, error) {
	slog.Debug("Listing annotation directory", "dir", l.dir)

	entries, err := List(l.dir, l.filter)
	if err != nil {
		return nil, err
	}

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	samples := make([]annotation.Sample, 0, len(entries))
	for _, entry := range entries {
		record, err := loadRecord(entry.Path)
		if err != nil {
			return nil, err
		}
		samples = append(samples, annotation.Sample{ID: entry.ID, Record: record})
	}

	slog.Debug("Finished reading annotations", "dir", l.dir, "total_records", len(samples))

	return samples, nil
}

func loadRecord(path string) (annotation.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer file.Close()

	record, err := annotation.Decode(file)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}

	return record, nil
}

// Counts summarises a loaded annotation set per category
func Counts(samples []annotation.Sample) map[string]int {
	counts := make(map[string]int)
	for _, s := range samples {
		for category, polys := range s.Record {
			counts[category] += len(polys)
		}
	}
	return counts
}

// String renders a one-line description, used by the inspect command
func (e Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.ID, e.Name)
}
