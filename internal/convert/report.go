// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/jpegify/pkg/types"
)

// Report is the YAML document written after a run when a report path is
// configured. Only files needing attention are listed.
type Report struct {
	types.RunSummary `yaml:",inline"`

	Problems []ReportEntry `yaml:"problems,omitempty"`
}

// ReportEntry describes one failed, skipped, or delete-failed file.
type ReportEntry struct {
	Source string           `yaml:"source"`
	Output string           `yaml:"output,omitempty"`
	Status types.FileStatus `yaml:"status"`
	Kind   types.ErrorKind  `yaml:"kind"`
	Stage  types.Stage      `yaml:"stage"`
	Error  string           `yaml:"error"`
}

// NewReport builds the report for result.
func NewReport(result BatchResult) Report {
	rep := Report{RunSummary: result.Summary}
	for _, r := range result.Results {
		if r.Err == nil {
			continue
		}
		rep.Problems = append(rep.Problems, ReportEntry{
			Source: r.Source,
			Output: r.Output,
			Status: r.Status,
			Kind:   r.Kind,
			Stage:  r.Stage,
			Error:  r.ErrorMessage(),
		})
	}
	return rep
}

// WriteReport marshals the report for result to path, creating parent
// directories as needed.
func WriteReport(path string, result BatchResult) error {
	data, err := yaml.Marshal(NewReport(result))
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
