// Package slot builds the solid body of a single hub slot: a hexagonal
// shell plus the mounting and connector features that distinguish the
// slot variants. All geometry is expressed against the abstract kernel;
// nothing here touches a kernel backend directly.
package slot

import (
	"fmt"
	"math"

	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/kernel"
)

// Kind classifies what a feature does to the body.
type Kind int

const (
	// KindBaseShell creates the slot body; it must be first in every
	// variant's feature list.
	KindBaseShell Kind = iota
	// KindAdditive adds material (boss patterns).
	KindAdditive
	// KindSubtractive removes material (cutouts).
	KindSubtractive
)

func (k Kind) String() string {
	switch k {
	case KindBaseShell:
		return "base-shell"
	case KindAdditive:
		return "additive"
	case KindSubtractive:
		return "subtractive"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Name identifies a feature in the library.
type Name string

const (
	BaseShell        Name = "base-shell"
	FloorHoles       Name = "floor-holes"
	MagnetBosses     Name = "magnet-bosses"
	PogoBosses       Name = "pogo-bosses"
	ControllerBosses Name = "controller-bosses"
	USBBosses        Name = "usb-bosses"
	USBCutout        Name = "usb-cutout"
)

// applyFunc performs a feature's geometric operation. It never mutates
// the input body; it returns a new solid.
type applyFunc func(body kernel.Solid) (kernel.Solid, error)

// Feature is a named, parametrized geometric operation. Features are
// immutable once defined; the library creates them all at construction.
type Feature struct {
	name  Name
	kind  Kind
	apply applyFunc
}

// Name returns the feature's library name.
func (f *Feature) Name() Name { return f.name }

// Kind returns whether the feature is the base shell, additive, or
// subtractive.
func (f *Feature) Kind() Kind { return f.kind }

// Library holds the slot feature definitions. It is read-only after
// construction and shared by all generation runs.
type Library struct {
	k        kernel.Kernel
	p        config.Params
	features map[Name]*Feature
}

// NewLibrary defines every slot feature against the given kernel and
// parameter set.
func NewLibrary(k kernel.Kernel, p config.Params) *Library {
	l := &Library{k: k, p: p, features: make(map[Name]*Feature)}
	l.define(BaseShell, KindBaseShell, l.applyBaseShell)
	l.define(FloorHoles, KindSubtractive, l.applyFloorHoles)
	l.define(MagnetBosses, KindAdditive, l.applyMagnetBosses)
	l.define(PogoBosses, KindAdditive, l.applyPogoBosses)
	l.define(ControllerBosses, KindAdditive, l.applyControllerBosses)
	l.define(USBBosses, KindAdditive, l.applyUSBBosses)
	l.define(USBCutout, KindSubtractive, l.applyUSBCutout)
	return l
}

func (l *Library) define(name Name, kind Kind, apply applyFunc) {
	l.features[name] = &Feature{name: name, kind: kind, apply: apply}
}

// Feature looks up a feature by name.
func (l *Library) Feature(name Name) (*Feature, error) {
	f, ok := l.features[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
	}
	return f, nil
}

// Names returns the defined feature names. Order is unspecified.
func (l *Library) Names() []Name {
	names := make([]Name, 0, len(l.features))
	for n := range l.features {
		names = append(names, n)
	}
	return names
}

// Apply applies the named feature to body and returns the new body.
// The base shell feature ignores body and creates the slot from scratch.
func (l *Library) Apply(body kernel.Solid, name Name) (kernel.Solid, error) {
	f, err := l.Feature(name)
	if err != nil {
		return nil, err
	}
	return f.apply(body)
}

// insideInnerHex reports whether a point, grown by margin, stays inside
// the shell's inner cavity hexagon. Used to validate boss and hole
// placements before any geometry is requested.
func (l *Library) insideInnerHex(x, y, margin float64) bool {
	limit := l.p.Hub.InnerFlatToFlat()/2 - margin
	if limit <= 0 {
		return false
	}
	// Distance to each of the three wall-normal axis pairs.
	d := math.Abs(y)
	if v := math.Abs(math.Sqrt(3)*x+y) / 2; v > d {
		d = v
	}
	if v := math.Abs(math.Sqrt(3)*x-y) / 2; v > d {
		d = v
	}
	return d <= limit
}
