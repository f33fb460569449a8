package slot

import (
	"fmt"

	"github.com/mhartig/hexhub/pkg/kernel"
)

// Variant names one of the slot configurations. Variants differ only in
// which features are present; they are composition over a fixed ordered
// feature list, not a hierarchy.
type Variant string

const (
	Basic      Variant = "basic"
	Controller Variant = "controller"
	USB        Variant = "usb"
)

// variantFeatures maps each variant to its ordered feature list. Every
// list starts with the base shell; Controller and USB are strict
// supersets of Basic. Additive bosses precede the subtractive wall
// cutout so a boss is never carved into a cutout region.
var variantFeatures = map[Variant][]Name{
	Basic: {
		BaseShell,
		FloorHoles,
		MagnetBosses,
		PogoBosses,
	},
	Controller: {
		BaseShell,
		FloorHoles,
		MagnetBosses,
		PogoBosses,
		ControllerBosses,
	},
	USB: {
		BaseShell,
		FloorHoles,
		MagnetBosses,
		PogoBosses,
		USBBosses,
		USBCutout,
	},
}

// Variants returns the defined variant names in a fixed order.
func Variants() []Variant {
	return []Variant{Basic, Controller, USB}
}

// Features returns the variant's ordered feature list.
func (v Variant) Features() ([]Name, error) {
	names, ok := variantFeatures[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	out := make([]Name, len(names))
	copy(out, names)
	return out, nil
}

// Composer assembles slot variants from the feature library. Composed
// bodies are cached: solids are immutable, so one body per variant can
// be shared across grid positions and generation runs.
type Composer struct {
	lib   *Library
	cache map[Variant]kernel.Solid
}

// NewComposer returns a Composer over the given library.
func NewComposer(lib *Library) *Composer {
	return &Composer{lib: lib, cache: make(map[Variant]kernel.Solid)}
}

// Compose builds the solid body for a variant by applying its feature
// list in order, base shell first. Composing the same variant twice
// yields the same immutable solid.
func (c *Composer) Compose(v Variant) (kernel.Solid, error) {
	if body, ok := c.cache[v]; ok {
		return body, nil
	}
	names, ok := variantFeatures[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}

	var body kernel.Solid
	for _, name := range names {
		next, err := c.lib.Apply(body, name)
		if err != nil {
			return nil, &CompositionError{Variant: v, Feature: name, Err: err}
		}
		body = next
	}

	c.cache[v] = body
	return body, nil
}
