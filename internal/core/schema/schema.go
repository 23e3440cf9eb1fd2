package schema

import (
	"fmt"
	"sort"
)

// Kind is the declared storage type of a property.
type Kind string

const (
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindDecimal  Kind = "decimal"
	KindString   Kind = "string"
	KindBoolean  Kind = "boolean"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindDateTime Kind = "datetime"
)

// Kinds lists every supported storage type. Catalog loading rejects
// anything outside this set.
var Kinds = map[Kind]bool{
	KindInteger:  true,
	KindFloat:    true,
	KindDecimal:  true,
	KindString:   true,
	KindBoolean:  true,
	KindDate:     true,
	KindTime:     true,
	KindDateTime: true,
}

// Property is a named, typed attribute of a model. Properties are owned by
// the catalog and immutable after load.
type Property struct {
	Model string
	Name  string
	Kind  Kind
}

// Model is a registered model definition: a logical name, the backing
// table, and its property set. Fingerprint is the SHA-256 of the raw
// definition file, computed at load time.
type Model struct {
	Name        string
	Table       string
	Fingerprint string

	properties map[string]Property
	order      []string // declaration order, for stable listings
}

// NewModel builds a model from an ordered property list. Property names
// must be unique within the model.
func NewModel(name, table string, props []Property) (*Model, error) {
	if name == "" {
		return nil, fmt.Errorf("model name must not be empty")
	}
	if table == "" {
		table = name
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("model %q: property list must not be empty", name)
	}

	m := &Model{
		Name:       name,
		Table:      table,
		properties: make(map[string]Property, len(props)),
		order:      make([]string, 0, len(props)),
	}
	for _, p := range props {
		if p.Name == "" {
			return nil, fmt.Errorf("model %q: property name must not be empty", name)
		}
		if !Kinds[p.Kind] {
			return nil, fmt.Errorf("model %q: property %q has unsupported kind %q", name, p.Name, p.Kind)
		}
		if _, exists := m.properties[p.Name]; exists {
			return nil, fmt.Errorf("model %q: duplicate property %q", name, p.Name)
		}
		p.Model = name
		m.properties[p.Name] = p
		m.order = append(m.order, p.Name)
	}
	return m, nil
}

// Resolve returns the property with the given name, or *UnknownPropertyError.
func (m *Model) Resolve(name string) (Property, error) {
	p, ok := m.properties[name]
	if !ok {
		return Property{}, &UnknownPropertyError{Model: m.Name, Property: name}
	}
	return p, nil
}

// Properties returns the model's properties in declaration order.
func (m *Model) Properties() []Property {
	out := make([]Property, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.properties[name])
	}
	return out
}

// Catalog is the read-only registry of all loaded models. Lookups are safe
// for concurrent use as long as the catalog is not mutated after load.
type Catalog struct {
	models map[string]*Model
}

// NewCatalog builds a catalog from the given models.
func NewCatalog(models ...*Model) (*Catalog, error) {
	c := &Catalog{models: make(map[string]*Model, len(models))}
	for _, m := range models {
		if _, exists := c.models[m.Name]; exists {
			return nil, fmt.Errorf("duplicate model %q in catalog", m.Name)
		}
		c.models[m.Name] = m
	}
	return c, nil
}

// Model returns the model with the given name, or *UnknownModelError.
func (c *Catalog) Model(name string) (*Model, error) {
	m, ok := c.models[name]
	if !ok {
		return nil, &UnknownModelError{Model: name}
	}
	return m, nil
}

// Models returns all registered models sorted by name.
func (c *Catalog) Models() []*Model {
	out := make([]*Model, 0, len(c.models))
	for _, m := range c.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
