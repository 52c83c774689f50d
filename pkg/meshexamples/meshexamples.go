// Package meshexamples provides fixture meshes for tests and demos: a
// literal hand-authored unit cube and an irregular, high-poly mesh
// rendered through sdfx's marching-cubes pipeline.
package meshexamples

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/mesh-3d-utils/core/pkg/mesh"
	"github.com/mesh-3d-utils/core/pkg/meshmap"
)

// UnitCube returns the axis-aligned unit cube used throughout this
// module's tests: 8 vertices, 6 consistently-oriented quad faces (each
// pair of adjacent faces traverses their shared edge in opposite
// directions).
func UnitCube() *mesh.Mesh {
	m := mesh.NewPacked()
	corners := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for _, c := range corners {
		m.X = append(m.X, c[0])
		m.Y = append(m.Y, c[1])
		m.Z = append(m.Z, c[2])
	}
	faces := [][]int{
		{0, 1, 2, 3}, // bottom (z=0)
		{5, 4, 7, 6}, // top (z=1)
		{1, 0, 4, 5}, // front (y=0)
		{3, 2, 6, 7}, // back (y=1)
		{2, 1, 5, 6}, // right (x=1)
		{0, 3, 7, 4}, // left (x=0)
	}
	for _, f := range faces {
		m.AppendFace(f)
	}
	return m
}

// marchingCubesCells controls marching-cubes tessellation resolution,
// kept low since this fixture only needs to exercise triangulation and
// subdivision on a non-platonic input, not to render at production
// quality.
const marchingCubesCells = 40

// MarchingCubesBox renders a unit box through sdfx's marching-cubes
// pipeline and welds the resulting triangle soup into an indexed
// *mesh.Mesh. Marching cubes emits one independent vertex per triangle
// corner; triangulation and subdivision need shared vertices to see any
// topology, so corners that land on the same interpolated grid-edge
// position are merged into one vertex.
func MarchingCubesBox() (*mesh.Mesh, error) {
	solid, err := sdf.Box3D(v3.Vec{X: 1, Y: 1, Z: 1}, 0)
	if err != nil {
		return nil, err
	}
	renderer := render.NewMarchingCubesUniform(marchingCubesCells)
	triangles := render.ToTriangles(solid, renderer)

	m := mesh.NewPacked()
	type key [3]float64
	seen := make(map[key]int)

	weld := func(v v3.Vec) int {
		k := key{v.X, v.Y, v.Z}
		if idx, ok := seen[k]; ok {
			return idx
		}
		idx := m.AppendVertex(meshmap.Vec3{X: v.X, Y: v.Y, Z: v.Z})
		seen[k] = idx
		return idx
	}

	for _, tri := range triangles {
		verts := [3]int{}
		for j := 0; j < 3; j++ {
			verts[j] = weld(tri[j])
		}
		if verts[0] == verts[1] || verts[1] == verts[2] || verts[0] == verts[2] {
			continue // degenerate triangle collapsed by welding, skip it
		}
		m.AppendFace(verts[:])
	}
	return m, nil
}
