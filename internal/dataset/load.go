package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/kue/internal/models"
)

// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// LoadFile reads and validates the records at path and builds a Dataset.
func LoadFile(path string) (*Dataset, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}
	return New(records), nil
}

// ReadRecords reads records from a .yaml, .yml, .json or .xlsx file.
func ReadRecords(path string) (*models.Records, error) {
	var (
		records *models.Records
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dataset: %w", err)
		}
		records, err = DecodeRecords(data)
	case ".xlsx":
		records, err = ReadWorkbook(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if err := models.ValidateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeRecords parses YAML or JSON (a YAML subset) into records.
func DecodeRecords(data []byte) (*models.Records, error) {
	var r models.Records
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &r, nil
}

// WriteRecords writes r to path in the format implied by its extension.
func WriteRecords(path string, r *models.Records) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
	case ".xlsx":
		return WriteWorkbook(path, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}
