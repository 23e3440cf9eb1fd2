package query

import (
	"fmt"

	"github.com/strata-lab/strata/internal/core/schema"
)

// Normalizer converts field tokens into canonical Fields bound to a real
// property of one model. It is a pure translation: no state, no side
// effects, safe for concurrent use.
type Normalizer struct {
	model *schema.Model
}

// NewNormalizer binds a normalizer to a model.
func NewNormalizer(model *schema.Model) Normalizer {
	return Normalizer{model: model}
}

// Normalize canonicalizes one field token.
//
// Already-normalized Fields pass through unchanged, so normalization is
// idempotent. Wildcard count refs never touch the catalog. Named refs
// resolve against the model; an unresolvable name is a fatal input error,
// never silently dropped.
func (n Normalizer) Normalize(tok Token) (Field, error) {
	switch t := tok.(type) {
	case Field:
		return t, nil

	case Ref:
		if t.Name == Wildcard {
			if t.Op != OpCount {
				return Field{}, fmt.Errorf("%w: wildcard is only valid with count, got %q", ErrInvalidField, t.Op)
			}
			return Field{All: true, Op: OpCount}, nil
		}
		if t.Name == "" {
			return Field{}, fmt.Errorf("%w: empty property name", ErrInvalidField)
		}
		if t.Op != "" && !Operators[t.Op] {
			return Field{}, fmt.Errorf("%w: unsupported operator %q", ErrInvalidField, t.Op)
		}

		prop, err := n.model.Resolve(t.Name)
		if err != nil {
			return Field{}, fmt.Errorf("%w: %w", ErrInvalidField, err)
		}
		return Field{Prop: prop, Op: t.Op}, nil

	default:
		return Field{}, fmt.Errorf("%w: %T is not a field token", ErrInvalidField, tok)
	}
}

// NormalizeAll canonicalizes a token list, collapsing duplicates while
// preserving first-seen order.
func (n Normalizer) NormalizeAll(tokens []Token) ([]Field, error) {
	fields := make([]Field, 0, len(tokens))
	seen := make(map[Field]bool, len(tokens))
	for _, tok := range tokens {
		f, err := n.Normalize(tok)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}
	return fields, nil
}
