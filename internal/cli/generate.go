package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mhartig/hexhub/pkg/assembly"
	"github.com/mhartig/hexhub/pkg/config"
	"github.com/mhartig/hexhub/pkg/export"
	"github.com/mhartig/hexhub/pkg/kernel/sdfx"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	hubType    string // assembly type: "A", "B", or "both"
	configPath string // optional TOML parameter overlay
	outDir     string // output directory for STL files
	meshCells  int    // marching cubes resolution
}

// newGenerateCmd creates the generate command. It resolves one or both
// assembly types, cuts the cable channels, and writes one STL per
// printable part (slot bodies and print modifiers) into the output
// directory, one subdirectory per type.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{
		hubType:   "both",
		outDir:    "out",
		meshCells: sdfx.DefaultMeshCells,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate hub assembly STL files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := parseTypes(opts.hubType)
			if err != nil {
				return err
			}
			return runGenerate(cmd, types, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.hubType, "type", "t", opts.hubType, "assembly type: A, B, or both")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML parameter file overriding the defaults")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", opts.outDir, "output directory")
	cmd.Flags().IntVar(&opts.meshCells, "mesh-cells", opts.meshCells, "marching cubes cells along the longest axis")

	return cmd
}

// parseTypes parses the --type flag into the list of assembly types to
// generate. "both" expands to all types.
func parseTypes(s string) ([]assembly.Type, error) {
	if strings.EqualFold(s, "both") {
		return assembly.Types(), nil
	}
	t, err := assembly.ParseType(s)
	if err != nil {
		return nil, err
	}
	return []assembly.Type{t}, nil
}

func runGenerate(cmd *cobra.Command, types []assembly.Type, opts *generateOpts) error {
	logger := loggerFromContext(cmd.Context()).With("run", uuid.NewString()[:8])

	params := config.Default()
	if opts.configPath != "" {
		var err error
		params, err = config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Debug("loaded parameter overlay", "path", opts.configPath)
	}

	k := sdfx.NewWithResolution(opts.meshCells)
	gen, err := assembly.NewGenerator(k, params)
	if err != nil {
		return err
	}

	for _, t := range types {
		p := newProgress(logger)
		logger.Info("resolving assembly", "type", t)

		a, err := gen.Generate(t)
		if err != nil {
			return fmt.Errorf("generate type %s: %w", t, err)
		}
		for _, e := range a.Edges {
			logger.Debug("channel", "edge", e.String())
		}

		dir := filepath.Join(opts.outDir, fmt.Sprintf("type_%s", t))
		logger.Info("writing meshes", "dir", dir, "parts", 2*len(a.Placements))
		if err := export.WriteAssembly(k, a, dir); err != nil {
			return fmt.Errorf("export type %s: %w", t, err)
		}
		p.done(fmt.Sprintf("Generated type %s (%d slots, %d channels)", t, len(a.Placements), len(a.Edges)))
	}
	return nil
}
