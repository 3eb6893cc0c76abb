package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/greeneye/internal/eval/dataset"
	"github.com/lehigh-university-libraries/greeneye/internal/imaging"
)

// Config holds the settings of an evaluation run
type Config struct {
	OriginalPath    string `yaml:"original_path"`
	GroundTruthPath string `yaml:"ground_truth_path"`
	PredictionPath  string `yaml:"prediction_path"`
	OutputPath      string `yaml:"output_path"`

	// NameFilter selects dataset files, see dataset.ParseNameFilter
	NameFilter string `yaml:"name_filter"`

	GroundTruthColor string `yaml:"ground_truth_color"`
	GroundTruthWidth int    `yaml:"ground_truth_width"`
	PredictionColor  string `yaml:"prediction_color"`
	PredictionWidth  int    `yaml:"prediction_width"`

	JPEGQuality int  `yaml:"jpeg_quality"`
	Concurrency int  `yaml:"concurrency"`
	StampNames  bool `yaml:"stamp_names"`
}

// Default returns the settings used by the inspection team's directory layout
func Default() *Config {
	return &Config{
		OriginalPath:     "img",
		GroundTruthPath:  "ground_truth",
		PredictionPath:   "prediction",
		OutputPath:       "output",
		NameFilter:       dataset.DefaultNameFilter,
		GroundTruthColor: "blue",
		GroundTruthWidth: 3,
		PredictionColor:  "yellow",
		PredictionWidth:  2,
		JPEGQuality:      95,
		Concurrency:      1,
		StampNames:       true,
	}
}

// Load returns the defaults overlaid with the YAML file at path (if any) and then
// with GREENEYE_* environment variables. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	overrides := map[string]*string{
		"GREENEYE_ORIGINAL_PATH":     &c.OriginalPath,
		"GREENEYE_GROUND_TRUTH_PATH": &c.GroundTruthPath,
		"GREENEYE_PREDICTION_PATH":   &c.PredictionPath,
		"GREENEYE_OUTPUT_PATH":       &c.OutputPath,
		"GREENEYE_NAME_FILTER":       &c.NameFilter,
	}
	for key, dst := range overrides {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("GREENEYE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GREENEYE_CONCURRENCY %q: %w", v, err)
		}
		c.Concurrency = n
	}

	return nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	paths := []struct {
		name  string
		value string
	}{
		{"original_path", c.OriginalPath},
		{"ground_truth_path", c.GroundTruthPath},
		{"prediction_path", c.PredictionPath},
		{"output_path", c.OutputPath},
	}
	for _, p := range paths {
		if p.value == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", p.name))
		}
	}

	if _, err := dataset.ParseNameFilter(c.NameFilter); err != nil {
		errs = append(errs, err)
	}
	for name, value := range map[string]string{"ground_truth_color": c.GroundTruthColor, "prediction_color": c.PredictionColor} {
		if _, err := imaging.ParseColor(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.GroundTruthWidth < 1 {
		errs = append(errs, fmt.Errorf("ground_truth_width must be at least 1, got %d", c.GroundTruthWidth))
	}
	if c.PredictionWidth < 1 {
		errs = append(errs, fmt.Errorf("prediction_width must be at least 1, got %d", c.PredictionWidth))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}

	return errors.Join(errs...)
}

// Filter returns the parsed name filter
func (c *Config) Filter() (dataset.NameFilter, error) {
	return dataset.ParseNameFilter(c.NameFilter)
}
