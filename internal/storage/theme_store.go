package storage

import (
	"fmt"
	"path/filepath"

	"github.com/rgehrsitz/kanpu/internal/calculation"
)

const themeFile = "theme.yaml"

// Theme is the user's color preference
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

type themeRecord struct {
	Theme Theme `yaml:"theme"`
}

// ThemeStore persists the theme preference
type ThemeStore struct {
	dir    string
	logger calculation.Logger
}

// NewThemeStore creates a theme store rooted at dir
func NewThemeStore(dir string, logger calculation.Logger) *ThemeStore {
	return &ThemeStore{dir: dir, logger: loggerOrNop(logger)}
}

// Save stores the preference
func (s *ThemeStore) Save(theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return writeYAML(filepath.Join(s.dir, themeFile), themeRecord{Theme: theme})
}

// Load returns the stored preference, falling back to ThemeSystem
func (s *ThemeStore) Load() Theme {
	var rec themeRecord
	found, err := readYAML(filepath.Join(s.dir, themeFile), &rec)
	if err != nil {
		s.logger.Warnf("failed to load theme: %v", err)
		return ThemeSystem
	}
	if !found || !rec.Theme.Valid() {
		return ThemeSystem
	}
	return rec.Theme
}
