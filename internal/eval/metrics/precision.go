package metrics

import (
	"sort"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/annotation"
)

// Counts holds exact-match statistics for a group of predictions
type Counts struct {
	TruePositive  int `json:"true_positive" yaml:"true_positive"`
	FalsePositive int `json:"false_positive" yaml:"false_positive"`
	GroundTruth   int `json:"ground_truth" yaml:"ground_truth"`
}

// Predicted returns the number of predicted polygons counted
func (c Counts) Predicted() int {
	return c.TruePositive + c.FalsePositive
}

// Precision returns TP / (TP + FP), or ErrUndefinedPrecision when nothing was predicted
func (c Counts) Precision() (float64, error) {
	if c.Predicted() == 0 {
		return 0, ErrUndefinedPrecision
	}
	return float64(c.TruePositive) / float64(c.Predicted()), nil
}

// Recall returns TP / ground truth total, or 0 when there is no ground truth
func (c Counts) Recall() float64 {
	if c.GroundTruth == 0 {
		return 0
	}
	return float64(c.TruePositive) / float64(c.GroundTruth)
}

func (c *Counts) add(other Counts) {
	c.TruePositive += other.TruePositive
	c.FalsePositive += other.FalsePositive
	c.GroundTruth += other.GroundTruth
}

// CategoryStats is the breakdown for one shape category
type CategoryStats struct {
	Category string `json:"category" yaml:"category"`
	Counts   `yaml:",inline"`
}

// SampleStats is the breakdown for one image
type SampleStats struct {
	Index  int    `json:"index" yaml:"index"`
	ID     string `json:"id" yaml:"id"`
	Counts `yaml:",inline"`
}

// PrecisionResult is the outcome of scoring a prediction set against ground truth
type PrecisionResult struct {
	Counts     `yaml:",inline"`
	Precision  float64         `json:"precision" yaml:"precision"`
	Recall     float64         `json:"recall" yaml:"recall"`
	Categories []CategoryStats `json:"categories" yaml:"categories"`
	Samples    []SampleStats   `json:"samples" yaml:"samples"`
}

// Category returns the stats for category, or zero counts if it never appeared
func (r *PrecisionResult) Category(category string) CategoryStats {
	for _, c := range r.Categories {
		if c.Category == category {
			return c
		}
	}
	return CategoryStats{Category: category}
}

// CountMatches scores the predictions for a single image.
//
// Every polygon under every category of prediction is a true positive when an
// identical polygon exists under the same category of groundTruth, otherwise a
// false positive. A category missing from groundTruth counts as empty.
// The result is keyed by category and includes ground-truth-only categories.
func CountMatches(groundTruth, prediction annotation.Record) map[string]Counts {
	counts := make(map[string]Counts)

	for category, polys := range groundTruth {
		c := counts[category]
		c.GroundTruth += len(polys)
		counts[category] = c
	}

	for _, category := range prediction.Categories() {
		c := counts[category]
		for _, poly := range prediction[category] {
			if groundTruth.Contains(category, poly) {
				c.TruePositive++
			} else {
				c.FalsePositive++
			}
		}
		counts[category] = c
	}

	return counts
}

// CalculatePrecision scores prediction against groundTruth.
//
// Both sets must have the same length and, where identifiers are present, the same
// identifier at each index. Otherwise a *LengthMismatchError or *CorrespondenceError
// is returned before anything is counted. ErrUndefinedPrecision is returned when
// there are no predicted polygons at all.
func CalculatePrecision(groundTruth, prediction []annotation.Sample) (*PrecisionResult, error) {
	if err := CheckPairing("ground truth and prediction", sampleIDs(groundTruth), sampleIDs(prediction)); err != nil {
		return nil, err
	}

	result := &PrecisionResult{
		Samples: make([]SampleStats, 0, len(groundTruth)),
	}
	perCategory := make(map[string]*Counts)

	for i := range groundTruth {
		sample := SampleStats{Index: i, ID: groundTruth[i].ID}
		for category, c := range CountMatches(groundTruth[i].Record, prediction[i].Record) {
			sample.add(c)
			if perCategory[category] == nil {
				perCategory[category] = &Counts{}
			}
			perCategory[category].add(c)
		}
		result.add(sample.Counts)
		result.Samples = append(result.Samples, sample)
	}

	categories := make([]string, 0, len(perCategory))
	for category := range perCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		result.Categories = append(result.Categories, CategoryStats{Category: category, Counts: *perCategory[category]})
	}

	precision, err := result.Counts.Precision()
	if err != nil {
		return nil, err
	}
	result.Precision = precision
	result.Recall = result.Counts.Recall()

	return result, nil
}

func sampleIDs(samples []annotation.Sample) []string {
	ids := make([]string, len(samples))
	for i, s := range samples {
		ids[i] = s.ID
	}
	return ids
}
