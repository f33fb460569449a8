package assembly

import (
	"fmt"

	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/kernel"
	"github.com/mhartig/hexhub/pkg/slot"
)

// Generator runs the full generation pipeline for one assembly type:
// feature library -> variant composer -> grid layout -> channel
// synthesis. The pipeline is single-threaded and fail-fast: the kernel
// is shared mutable state, so all geometry requests happen in one
// fixed serial order, and any failure aborts the run with no partial
// output.
type Generator struct {
	k     kernel.Kernel
	p     config.Params
	res   *Resolver
	chans *Synthesizer
}

// NewGenerator wires the pipeline over a kernel and parameter set. The
// feature library and variant definitions are built once here and
// shared by every Generate call.
func NewGenerator(k kernel.Kernel, p config.Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	lib := slot.NewLibrary(k, p)
	res := NewResolver(k, p, slot.NewComposer(lib))
	return &Generator{
		k:     k,
		p:     p,
		res:   res,
		chans: NewSynthesizer(k, p, res.Grid()),
	}, nil
}

// Generate produces the complete assembly for one type.
func (g *Generator) Generate(t Type) (*Assembly, error) {
	placements, err := g.res.Resolve(t)
	if err != nil {
		return nil, err
	}
	edges, err := g.chans.Cut(placements)
	if err != nil {
		return nil, fmt.Errorf("assembly type %s: %w", t, err)
	}
	return &Assembly{Type: t, Placements: placements, Edges: edges}, nil
}
