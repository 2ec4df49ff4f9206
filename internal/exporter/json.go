package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"attendcli/pkg/contracts/domain"
)

// WriteJSON writes the full report, indented, to path
func WriteJSON(path string, report *domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
