// Package geometry implements the geometry graph: a derived geometry
// references its base plus a vertex map and a face map, and Update
// re-runs the derivation.
package geometry

import (
	"github.com/mesh-3d-utils/core/pkg/mesh"
	"github.com/mesh-3d-utils/core/pkg/meshmap"
)

// Geometry bundles a mesh, a base reference, and the vertex/face maps
// relating it to that base. The chain rooted at a MeshGeometry forms a
// tree, never a cycle.
type Geometry interface {
	Mesh() *mesh.Mesh
	Base() Geometry
	VertexMap() meshmap.Map
	FaceMap() meshmap.Map
}

// MeshGeometry is the root of a geometry chain: its own base, with
// identity vertex and face maps.
type MeshGeometry struct {
	mesh *mesh.Mesh
}

// NewMeshGeometry wraps m as a root geometry.
func NewMeshGeometry(m *mesh.Mesh) *MeshGeometry {
	return &MeshGeometry{mesh: m}
}

func (g *MeshGeometry) Mesh() *mesh.Mesh { return g.mesh }

// Base returns g itself, per the base==self root sentinel.
func (g *MeshGeometry) Base() Geometry { return g }

func (g *MeshGeometry) VertexMap() meshmap.Map { return meshmap.NewIdentity(g.mesh.VertexCount()) }
func (g *MeshGeometry) FaceMap() meshmap.Map   { return meshmap.NewIdentity(g.mesh.FaceCount()) }

// Deriver produces a new mesh and its vertex/face maps relative to base.
// triangulate.Triangulate has this signature; catmullclark.Refine fits it
// through a closure that fixes its Options and drops its Stats.
type Deriver func(base *mesh.Mesh) (out *mesh.Mesh, vertexMap, faceMap meshmap.Map, err error)

// Derived is a geometry whose mesh and maps come from running a Deriver
// over a base geometry's current mesh.
type Derived struct {
	base    Geometry
	deriver Deriver

	mesh      *mesh.Mesh
	vertexMap meshmap.Map
	faceMap   meshmap.Map
}

// NewDerived constructs a Derived geometry and runs its first update.
func NewDerived(base Geometry, deriver Deriver) (*Derived, error) {
	d := &Derived{base: base, deriver: deriver}
	if err := d.Update(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Derived) Mesh() *mesh.Mesh       { return d.mesh }
func (d *Derived) Base() Geometry         { return d.base }
func (d *Derived) VertexMap() meshmap.Map { return d.vertexMap }
func (d *Derived) FaceMap() meshmap.Map   { return d.faceMap }

// Update re-runs the derivation against the base's current mesh and
// replaces this geometry's mesh and maps. Callers must not hold views
// into the previous mesh's buffers across this call.
func (d *Derived) Update() error {
	m, vm, fm, err := d.deriver(d.base.Mesh())
	if err != nil {
		return err
	}
	d.mesh, d.vertexMap, d.faceMap = m, vm, fm
	return nil
}

// CompileToAncestor walks base pointers from g up to ancestor (found by
// identity; must appear in g's base chain), compiling the intermediate
// vertex maps into a single effective map, and likewise for face maps.
func CompileToAncestor(g, ancestor Geometry) (vertexMap, faceMap meshmap.Map, err error) {
	var chain []Geometry
	for cur := g; cur != ancestor; {
		chain = append(chain, cur)
		if cur.Base() == cur {
			break // reached a root without finding ancestor
		}
		cur = cur.Base()
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	vertexMaps := make([]meshmap.Map, len(chain))
	faceMaps := make([]meshmap.Map, len(chain))
	for i, gi := range chain {
		vertexMaps[i] = gi.VertexMap()
		faceMaps[i] = gi.FaceMap()
	}

	vertexMap, err = meshmap.CompileChain(vertexMaps, ancestor.Mesh().VertexCount())
	if err != nil {
		return nil, nil, err
	}
	faceMap, err = meshmap.CompileChain(faceMaps, ancestor.Mesh().FaceCount())
	if err != nil {
		return nil, nil, err
	}
	return vertexMap, faceMap, nil
}
