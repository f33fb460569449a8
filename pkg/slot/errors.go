package slot

import (
	"errors"
	"fmt"
)

// ErrUnknownFeature is returned when a feature name is not defined in
// the library.
var ErrUnknownFeature = errors.New("unknown feature")

// ErrUnknownVariant is returned when a variant name has no definition.
var ErrUnknownVariant = errors.New("unknown variant")

// PlacementError reports feature placement parameters that collide with
// the base shell's bounds. It indicates a configuration defect; the
// placement is never silently clamped.
type PlacementError struct {
	Feature Name
	Detail  string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("invalid placement for feature %q: %s", e.Feature, e.Detail)
}

// CompositionError wraps a feature application failure during variant
// composition, carrying the variant and feature for traceability.
type CompositionError struct {
	Variant Variant
	Feature Name
	Err     error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("compose variant %q: feature %q: %v", e.Variant, e.Feature, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
