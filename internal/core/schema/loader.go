package schema

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// rawModel is the on-disk YAML shape of a model definition.
type rawModel struct {
	Model      string `yaml:"model"`
	Table      string `yaml:"table"`
	Properties []struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"properties"`
}

// LoadDir eagerly loads every *.yaml model definition in dir into a catalog.
// Each file contains exactly one model at the top level. Returns an error if
// any definition is malformed; an absent directory yields an empty catalog
// (zero models configured).
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return NewCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dir: %w", err)
	}

	var models []*Model
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading model file %s: %w", path, err)
		}

		m, err := parseModel(data)
		if err != nil {
			return nil, fmt.Errorf("model file %s: %w", path, err)
		}
		if m == nil {
			continue // empty / comment-only file
		}
		models = append(models, m)
	}

	return NewCatalog(models...)
}

// parseModel decodes one YAML model definition and fingerprints it.
// Returns (nil, nil) for files with no model declared.
func parseModel(data []byte) (*Model, error) {
	var raw rawModel
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing model definition: %w", err)
	}
	if raw.Model == "" {
		return nil, nil
	}

	props := make([]Property, 0, len(raw.Properties))
	for _, p := range raw.Properties {
		props = append(props, Property{Name: p.Name, Kind: Kind(p.Type)})
	}

	m, err := NewModel(raw.Model, raw.Table, props)
	if err != nil {
		return nil, err
	}
	m.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))
	return m, nil
}
