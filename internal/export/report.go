// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// ReconcileReport is the optional YAML run report of a reconciliation,
// recording which titles could not be matched so the operator can fix the
// reference table and re-run.
type ReconcileReport struct {
	GeneratedAt string   `yaml:"generated_at"`
	Outline     string   `yaml:"outline"`
	References  string   `yaml:"references"`
	Total       int      `yaml:"total"`
	Resolved    int      `yaml:"resolved"`
	Unresolved  []string `yaml:"unresolved,omitempty"`
}

// WriteReconcileReport writes the report to path as YAML, stamping
// GeneratedAt if unset.
func WriteReconcileReport(path string, report ReconcileReport) error {
	if report.GeneratedAt == "" {
		report.GeneratedAt = time.Now().Format(time.RFC3339)
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
