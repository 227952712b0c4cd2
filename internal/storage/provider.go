package storage

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/kanpu/internal/calculation"
	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/rgehrsitz/kanpu/internal/taxtable"
)

// TableProvider supplies the active tax tables, seeding the repository with
// the built-in dataset when it is empty or stale
type TableProvider struct {
	Repo     *TableRepository
	Fallback func() *domain.TaxTables
	Logger   calculation.Logger
}

// NewTableProvider creates a provider backed by repo and the built-in dataset
func NewTableProvider(repo *TableRepository, logger calculation.Logger) *TableProvider {
	return &TableProvider{Repo: repo, Fallback: taxtable.Default, Logger: loggerOrNop(logger)}
}

// Current returns the newest stored tables, or refreshes them from the
// fallback when nothing fresh is stored. A failed save still returns the
// fallback tables.
func (p *TableProvider) Current(now time.Time) (*domain.TaxTables, error) {
	stored, err := p.Repo.Get("")
	if err != nil {
		p.Logger.Warnf("failed to read stored tax tables: %v", err)
	}
	if stored != nil && !p.Repo.IsStale(stored.Version, now) {
		p.Logger.Debugf("using stored tax tables %s (updated %s)", stored.Version, stored.LastUpdated.Format(time.DateOnly))
		return stored, nil
	}
	return p.Refresh(now)
}

// Refresh replaces the stored fallback version with a copy stamped now
func (p *TableProvider) Refresh(now time.Time) (*domain.TaxTables, error) {
	tables := p.Fallback()
	if tables == nil {
		return nil, fmt.Errorf("no fallback tax tables available")
	}
	tables.LastUpdated = now.UTC().Truncate(time.Second)

	if err := p.Repo.Save(tables); err != nil {
		p.Logger.Errorf("failed to store tax tables: %v", err)
		return tables, nil
	}
	p.Logger.Infof("stored tax tables %s", tables.Version)
	return tables, nil
}
