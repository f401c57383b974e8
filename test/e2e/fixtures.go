package e2e

import (
	"fmt"
	"path/filepath"

	"github.com/hyperjump/kue/internal/dataset"
	"github.com/hyperjump/kue/internal/models"
)

// SupportedDatasetExtensions is the list of dataset formats used in file-based tests.
// Covers: YAML (.yaml, .yml), JSON (.json) and Excel workbooks (.xlsx).
var SupportedDatasetExtensions = []string{".yaml", ".yml", ".json", ".xlsx"}

// WriteDatasetFile writes r into dir as network<ext> and returns the path.
func WriteDatasetFile(dir, ext string, r *models.Records) (string, error) {
	path := filepath.Join(dir, "network"+ext)
	if err := dataset.WriteRecords(path, r); err != nil {
		return "", fmt.Errorf("write %s dataset: %w", ext, err)
	}
	return path, nil
}
