// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ReadOverridesFile loads a YAML file of verification parameter
// overrides into the dotted-path map consumed by LoadWithOverrides.
// Sections may be nested or written as flat dotted keys:
//
//	citationGrounding:
//	  minKeywordOverlap: 0.4
//	hallucination.lowRiskThreshold: 0.25
//
// Every leaf must be numeric.
func ReadOverridesFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing overrides file %s: %w", path, err)
	}

	overrides := make(map[string]float64, len(raw))
	if err := flattenOverrides("", raw, overrides); err != nil {
		return nil, fmt.Errorf("overrides file %s: %w", path, err)
	}
	return overrides, nil
}

// flattenOverrides walks nested maps, joining keys with dots.
func flattenOverrides(prefix string, node map[string]any, out map[string]float64) error {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			if err := flattenOverrides(path, v, out); err != nil {
				return err
			}
		case int:
			out[path] = float64(v)
		case int64:
			out[path] = float64(v)
		case float64:
			out[path] = v
		default:
			return fmt.Errorf("%s: expected a number, got %T", path, value)
		}
	}
	return nil
}
