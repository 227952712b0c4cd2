package taxtable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/kanpu/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadFromFile reads and validates a tax table dataset from a YAML or JSON file
func LoadFromFile(filename string) (*domain.TaxTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		format = "json"
	}
	return Parse(data, format)
}

// Parse decodes and validates a dataset in the given format ("yaml" or "json")
func Parse(data []byte, format string) (*domain.TaxTables, error) {
	var tables domain.TaxTables
	switch format {
	case "json":
		if err := json.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &tables); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported table format: %s", format)
	}

	if err := Validate(&tables); err != nil {
		return nil, fmt.Errorf("tax table validation failed: %w", err)
	}
	return &tables, nil
}

// Marshal encodes a dataset as "yaml" or "json"
func Marshal(t *domain.TaxTables, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(t, "", "  ")
	case "yaml", "yml", "":
		return yaml.Marshal(t)
	default:
		return nil, fmt.Errorf("unsupported table format: %s", format)
	}
}
