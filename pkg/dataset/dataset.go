// Package dataset loads region indicator files for batch evaluation.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Region is one named region together with its development indicators.
// Metrics uses the canonical indicator keys (poverty_index,
// project_impact, environmental_score, corruption_risk); missing keys
// fall back to the evaluator defaults.
type Region struct {
	Name    string             `json:"name" yaml:"name"`
	Metrics map[string]float64 `json:"metrics" yaml:"metrics"`
}

// file is the wrapped on-disk shape. Both a bare list and a wrapped
// {"regions": [...]} document are accepted.
type file struct {
	Regions []Region `json:"regions" yaml:"regions"`
}

// Load reads a dataset from path. The format is chosen by extension:
// .yaml and .yml are parsed as YAML, everything else as JSON.
func Load(path string) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) ([]Region, error) {
	var regions []Region
	if err := json.Unmarshal(data, &regions); err == nil {
		return validate(regions)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return validate(f.Regions)
}

func parseYAML(data []byte) ([]Region, error) {
	var regions []Region
	if err := yaml.Unmarshal(data, &regions); err == nil && regions != nil {
		return validate(regions)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return validate(f.Regions)
}

func validate(regions []Region) ([]Region, error) {
	if len(regions) == 0 {
		return nil, errors.New("dataset contains no regions")
	}
	for i, r := range regions {
		if r.Name == "" {
			return nil, fmt.Errorf("region %d has no name", i)
		}
	}
	return regions, nil
}
