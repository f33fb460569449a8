// Package export writes generated assemblies to print-mesh files.
// It operates on the kernel-agnostic triangle meshes; the kernel
// backend is only needed to tessellate the solids.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mhartig/hexhub/pkg/assembly"
	"github.com/mhartig/hexhub/pkg/kernel"
)

// stlTriangleSize is the on-disk size of one binary STL triangle:
// normal + 3 vertices (12 floats) + attribute word.
const stlTriangleSize = 50

// WriteSTL writes a mesh as binary STL.
func WriteSTL(m *kernel.Mesh, w io.Writer) error {
	if m.IsEmpty() {
		return fmt.Errorf("mesh %q is empty", m.PartName)
	}

	bw := bufio.NewWriter(w)
	var header [80]byte
	copy(header[:], "hexhub "+m.PartName)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	triCount := m.TriangleCount()
	if err := binary.Write(bw, binary.LittleEndian, uint32(triCount)); err != nil {
		return err
	}

	for t := 0; t < triCount; t++ {
		i0 := m.Indices[t*3]
		// Per-triangle normal; ToMesh emits one normal per corner but
		// they are identical within a face.
		if err := binary.Write(bw, binary.LittleEndian, m.Normals[i0*3:i0*3+3]); err != nil {
			return err
		}
		for j := 0; j < 3; j++ {
			vi := m.Indices[t*3+j]
			if err := binary.Write(bw, binary.LittleEndian, m.Vertices[vi*3:vi*3+3]); err != nil {
				return err
			}
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSTLFile writes a mesh as binary STL at the given path.
func WriteSTLFile(m *kernel.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSTL(m, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteAssembly tessellates every placement of an assembly and writes
// one STL per part into dir: slot_N.stl for the body and
// slot_N_modifier.stl for the print modifier. Any failure aborts;
// partial assemblies are not valid output.
func WriteAssembly(k kernel.Kernel, a *assembly.Assembly, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, pl := range a.Placements {
		parts := []struct {
			name  string
			solid kernel.Solid
		}{
			{fmt.Sprintf("slot_%d", pl.Slot), pl.Body},
			{fmt.Sprintf("slot_%d_modifier", pl.Slot), pl.Modifier},
		}
		for _, part := range parts {
			mesh, err := k.ToMesh(part.solid)
			if err != nil {
				return fmt.Errorf("tessellate %s: %w", part.name, err)
			}
			mesh.PartName = part.name
			path := filepath.Join(dir, part.name+".stl")
			if err := WriteSTLFile(mesh, path); err != nil {
				return err
			}
		}
	}
	return nil
}
