// Package forecast loads pre-trained per-product demand models from disk
// and evaluates them. Models are trained out-of-band; this package has no
// fitting logic of its own.
package forecast

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// ErrModelNotFound means no model artifact exists for the product. This is
// a recoverable outcome, not a failure; callers report "no forecast
// available".
var ErrModelNotFound = errors.New("forecast model not found")

// Store resolves model artifacts by SKU. One YAML file per product,
// uppercased SKU as the file name.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads and parses the model artifact for a SKU.
func (s *Store) Load(sku string) (*Model, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, ErrModelNotFound
	}

	path := filepath.Join(s.dir, sku+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}

	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	m.SKU = sku
	return &m, nil
}
