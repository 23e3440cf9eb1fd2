package schema

import "fmt"

// UnknownPropertyError is returned when a property name does not resolve
// against a model's property set.
type UnknownPropertyError struct {
	Model    string
	Property string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property %q on model %q", e.Property, e.Model)
}

// UnknownModelError is returned when a model name is not in the catalog.
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("unknown model %q", e.Model)
}
