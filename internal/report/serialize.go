package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivmazurenko/membench/internal/harness"
)

// WriteJSON serializes a suite result as indented JSON.
func WriteJSON(w io.Writer, result *harness.SuiteResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// WriteYAML serializes a suite result as YAML.
func WriteYAML(w io.Writer, result *harness.SuiteResult) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

// LoadJSON reads a previously saved suite result.
func LoadJSON(path string) (*harness.SuiteResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	var result harness.SuiteResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse results file %s: %w", path, err)
	}
	return &result, nil
}
