package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/strata-lab/strata/internal/core/schema"
)

// Caller-input errors. All are deterministic functions of the arguments
// and the loaded catalog; none are retried.
var (
	// ErrInvalidField marks a value that is not a valid field token, or a
	// token whose property name does not resolve against the catalog.
	ErrInvalidField = errors.New("invalid field token")

	// ErrMissingProperty marks a scalar aggregate invoked without a
	// property argument.
	ErrMissingProperty = errors.New("property name must not be empty")

	// ErrEmptyProjection marks a request whose normalized field list came
	// out empty.
	ErrEmptyProjection = errors.New("query fields must not be empty")
)

// TypeMismatchError is returned when a property's storage kind is outside
// the allowed set for the requested aggregate operator.
type TypeMismatchError struct {
	Property string
	Kind     schema.Kind
	Allowed  []schema.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("property %q must be of type %s, but is %s",
		e.Property, joinOr(e.Allowed), e.Kind)
}

// joinOr renders a kind list as "a, b or c".
func joinOr(kinds []schema.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
