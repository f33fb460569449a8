// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx) provide solid modeling and boolean operations
// behind this interface. The kernel abstraction allows swapping backends
// without changing the rest of the system.
package kernel

// Vec2 is a point of a planar profile, in mm.
type Vec2 struct {
	X, Y float64
}

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation. Solids are
// immutable: every kernel operation returns a new handle.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
//
// All primitives sit on the z=0 plane with their axis on Z: Box, Cylinder
// and Cone are centered in XY with the base at z=0; Extrude takes its
// profile coordinates literally in XY and extrudes from z=0 to z=height.
// Kernel implementations are not assumed safe for concurrent use.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	Cone(height, baseRadius, topRadius float64) Solid
	Extrude(profile []Vec2, height float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Evaluate returns the signed distance from a point to the solid's
	// surface: negative inside, positive outside.
	Evaluate(s Solid, x, y, z float64) float64

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
