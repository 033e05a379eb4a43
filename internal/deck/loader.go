// Package deck provides the built-in slide deck and YAML deck loading.
package deck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opskit/slipway/pkg/domain"
)

// File is the on-disk deck format.
type File struct {
	Entry  string         `yaml:"entry"`
	Slides []domain.Slide `yaml:"slides"`
}

// Load reads a deck definition from a YAML file. It only decodes; structural
// validation (navigate targets, duplicate IDs) happens in wizard.NewDeck.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse deck file %s: %w", path, err)
	}
	if f.Entry == "" && len(f.Slides) > 0 {
		f.Entry = f.Slides[0].ID
	}
	return &f, nil
}
