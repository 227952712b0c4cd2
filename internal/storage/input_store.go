package storage

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/kanpu/internal/calculation"
	"github.com/rgehrsitz/kanpu/internal/domain"
)

const inputFile = "input.yaml"

// InputStore keeps the last entered deduction input between sessions.
// Failures are logged and never fatal.
type InputStore struct {
	dir    string
	logger calculation.Logger
}

// NewInputStore creates an input store rooted at dir
func NewInputStore(dir string, logger calculation.Logger) *InputStore {
	return &InputStore{dir: dir, logger: loggerOrNop(logger)}
}

func (s *InputStore) path() string {
	return filepath.Join(s.dir, inputFile)
}

// Save writes input, replacing any previous copy
func (s *InputStore) Save(input *domain.DeductionInput) {
	if input == nil {
		return
	}
	if err := writeYAML(s.path(), input); err != nil {
		s.logger.Errorf("failed to save input: %v", err)
	}
}

// Load returns the saved input, or nil if there is none or it cannot be read
func (s *InputStore) Load() *domain.DeductionInput {
	var doc yaml.Node
	found, err := readYAML(s.path(), &doc)
	if err != nil {
		s.logger.Errorf("failed to load input: %v", err)
		return nil
	}
	if !found {
		return nil
	}
	if !hasKey(&doc, "salary") {
		s.logger.Warnf("ignoring saved input without salary")
		return nil
	}

	var input domain.DeductionInput
	if err := doc.Decode(&input); err != nil {
		s.logger.Errorf("failed to load input: %v", err)
		return nil
	}
	return &input
}

// hasKey reports whether a YAML document is a mapping containing key
func hasKey(doc *yaml.Node, key string) bool {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Clear removes the saved input
func (s *InputStore) Clear() {
	if err := removeIfExists(s.path()); err != nil {
		s.logger.Errorf("failed to clear input: %v", err)
	}
}

// HasData reports whether a saved input exists
func (s *InputStore) HasData() bool {
	_, err := os.Stat(s.path())
	return err == nil
}
