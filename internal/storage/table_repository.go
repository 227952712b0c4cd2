package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgehrsitz/kanpu/internal/calculation"
	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/rgehrsitz/kanpu/internal/taxtable"
)

const (
	tablesDir     = "tables"
	tableFileExt  = ".yaml"
	staleAfterYrs = 1
)

// TableRepository stores tax table datasets keyed by version
type TableRepository struct {
	dir    string
	logger calculation.Logger
}

// NewTableRepository creates a repository rooted at dir
func NewTableRepository(dir string, logger calculation.Logger) *TableRepository {
	return &TableRepository{dir: filepath.Join(dir, tablesDir), logger: loggerOrNop(logger)}
}

func (r *TableRepository) path(version string) (string, error) {
	if version == "" || strings.ContainsAny(version, `/\`) || version == "." || version == ".." {
		return "", fmt.Errorf("invalid table version %q", version)
	}
	return filepath.Join(r.dir, version+tableFileExt), nil
}

// Save stores tables under their version, replacing any existing copy
func (r *TableRepository) Save(tables *domain.TaxTables) error {
	if err := taxtable.Validate(tables); err != nil {
		return fmt.Errorf("refusing to save invalid tables: %w", err)
	}
	path, err := r.path(tables.Version)
	if err != nil {
		return err
	}
	if err := writeYAML(path, tables); err != nil {
		return fmt.Errorf("failed to save tax tables %s: %w", tables.Version, err)
	}
	return nil
}

// Get returns the tables for version, or the most recently updated tables
// when version is empty. It returns nil, nil when nothing is stored.
func (r *TableRepository) Get(version string) (*domain.TaxTables, error) {
	if version != "" {
		path, err := r.path(version)
		if err != nil {
			return nil, err
		}
		return r.load(path)
	}

	all, err := r.List()
	if err != nil {
		return nil, err
	}
	var latest *domain.TaxTables
	for _, t := range all {
		if latest == nil || t.LastUpdated.After(latest.LastUpdated) {
			latest = t
		}
	}
	return latest, nil
}

// List returns every readable stored dataset. Unreadable files are logged and skipped.
func (r *TableRepository) List() ([]*domain.TaxTables, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tax tables: %w", err)
	}

	var result []*domain.TaxTables
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != tableFileExt {
			continue
		}
		t, err := r.load(filepath.Join(r.dir, e.Name()))
		if err != nil {
			r.logger.Warnf("skipping %s: %v", e.Name(), err)
			continue
		}
		if t != nil {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *TableRepository) load(path string) (*domain.TaxTables, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return taxtable.Parse(data, "yaml")
}

// IsStale reports whether the given version (or the latest when empty) is
// missing, unreadable, or was last updated more than a year before now
func (r *TableRepository) IsStale(version string, now time.Time) bool {
	t, err := r.Get(version)
	if err != nil {
		r.logger.Warnf("treating tax tables as stale: %v", err)
		return true
	}
	if t == nil {
		return true
	}
	return t.LastUpdated.Before(now.AddDate(-staleAfterYrs, 0, 0))
}

// Delete removes one version
func (r *TableRepository) Delete(version string) error {
	path, err := r.path(version)
	if err != nil {
		return err
	}
	if err := removeIfExists(path); err != nil {
		return fmt.Errorf("failed to delete tax tables %s: %w", version, err)
	}
	return nil
}

// Clear removes every stored version
func (r *TableRepository) Clear() error {
	if err := os.RemoveAll(r.dir); err != nil {
		return fmt.Errorf("failed to clear tax tables: %w", err)
	}
	return nil
}
