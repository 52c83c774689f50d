// Package mesh implements the packed polygonal mesh store and the
// topology queries over it: face lookup, adjacent-face-across-edge,
// edges incident to a vertex, and the ordered vertex-neighbor fan.
package mesh

import "github.com/mesh-3d-utils/core/pkg/meshmap"

// edgeKey is a packed undirected-edge key: min(u,v)<<32 | max(u,v), an
// allocation-free 64-bit key that is a pure function of the unordered
// vertex pair.
type edgeKey uint64

func makeEdgeKey(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey(uint64(uint32(u))<<32 | uint64(uint32(v)))
}

// Mesh is the triple <positions, faces, creased-edges>. A single Go
// slice-backed representation serves both the "packed" and "modifiable"
// flavors: Go slices are already contiguous and already growable, so the
// distinction that matters is behavioral, not structural — see
// Modifiable and Accelerated.
type Mesh struct {
	X, Y, Z []float64

	// Indices is the packed vertex-index buffer; IndicesOffset1 is the
	// 1-based end-offset sequence (face f occupies
	// Indices[faceStart(f):IndicesOffset1[f]]).
	Indices        []int
	IndicesOffset1 []int

	// Creased holds the canonical keys of user-flagged sharp edges.
	Creased map[edgeKey]struct{}

	// Modifiable marks a mesh as the growable flavor used as a scratch
	// buffer during Catmull-Clark refinement. It is informational: Go
	// slices support append() regardless of this flag, but a modifiable
	// mesh is not considered safe to hand out as a long-lived view (see
	// Accelerated).
	Modifiable bool

	// edgeIndex and vertexIndex are lazily-built topology caches (see
	// topology.go); *Valid tracks whether they still reflect the current
	// Indices buffer.
	edgeIndex        map[edgeKey][]FaceEdge
	edgeIndexValid   bool
	vertexIndex      map[int][]OrientedFaceEdge
	vertexIndexValid bool
}

// NewPacked returns an empty packed mesh ready to be populated (e.g. by
// pkg/hostio.IngestTriangleList or a literal fixture).
func NewPacked() *Mesh {
	return &Mesh{Creased: make(map[edgeKey]struct{})}
}

// NewModifiable returns an empty modifiable mesh, the scratch
// representation used while building a subdivision result.
func NewModifiable() *Mesh {
	return &Mesh{Creased: make(map[edgeKey]struct{}), Modifiable: true}
}

// VertexCount returns the number of vertices V.
func (m *Mesh) VertexCount() int { return len(m.X) }

// FaceCount returns the number of faces F.
func (m *Mesh) FaceCount() int { return len(m.IndicesOffset1) }

// Vertex returns the position of vertex i.
func (m *Mesh) Vertex(i int) (meshmap.Vec3, error) {
	if i < 0 || i >= m.VertexCount() {
		return meshmap.Vec3{}, &Error{Kind: OutOfBounds, Message: "vertex index out of range"}
	}
	return meshmap.Vec3{X: m.X[i], Y: m.Y[i], Z: m.Z[i]}, nil
}

func (m *Mesh) faceStart(f int) int {
	if f == 0 {
		return 0
	}
	return m.IndicesOffset1[f-1]
}

// Face returns a read-only view of face f. The Vertices slice aliases the
// mesh's own Indices buffer and is invalidated by any subsequent mutation
// of that buffer.
func (m *Mesh) Face(f int) (Face, error) {
	if f < 0 || f >= m.FaceCount() {
		return Face{}, &Error{Kind: OutOfBounds, Message: "face index out of range"}
	}
	start := m.faceStart(f)
	end := m.IndicesOffset1[f]
	return Face{
		Index:    f,
		Start:    start,
		End:      end,
		Vertices: m.Indices[start:end],
	}, nil
}

// CreaseEdge flags the undirected edge (u,v) as sharp.
func (m *Mesh) CreaseEdge(u, v int) {
	m.Creased[makeEdgeKey(u, v)] = struct{}{}
}

// IsCreased reports whether the undirected edge (u,v) is flagged sharp.
func (m *Mesh) IsCreased(u, v int) bool {
	_, ok := m.Creased[makeEdgeKey(u, v)]
	return ok
}

// AppendVertex appends a new vertex and returns its index. Intended for
// modifiable meshes under construction.
func (m *Mesh) AppendVertex(p meshmap.Vec3) int {
	m.X = append(m.X, p.X)
	m.Y = append(m.Y, p.Y)
	m.Z = append(m.Z, p.Z)
	return len(m.X) - 1
}

// AppendFace appends a new face from a vertex-index slice.
func (m *Mesh) AppendFace(vertices []int) {
	m.Indices = append(m.Indices, vertices...)
	m.IndicesOffset1 = append(m.IndicesOffset1, len(m.Indices))
	m.edgeIndexValid = false
	m.vertexIndexValid = false
}

// Clone deep-copies the mesh into the requested flavor.
func (m *Mesh) Clone(modifiable bool) *Mesh {
	out := &Mesh{
		X:              append([]float64{}, m.X...),
		Y:              append([]float64{}, m.Y...),
		Z:              append([]float64{}, m.Z...),
		Indices:        append([]int{}, m.Indices...),
		IndicesOffset1: append([]int{}, m.IndicesOffset1...),
		Creased:        make(map[edgeKey]struct{}, len(m.Creased)),
		Modifiable:     modifiable,
	}
	for k := range m.Creased {
		out.Creased[k] = struct{}{}
	}
	return out
}

// Accelerated returns a packed view of the mesh: if m is already packed
// (not Modifiable), it returns m itself (O(1)); otherwise it returns a
// frozen packed clone.
func (m *Mesh) Accelerated() *Mesh {
	if !m.Modifiable {
		return m
	}
	return m.Clone(false)
}

// Face is a read-only {index, degree, vertices-slice, [start,end)}
// projection of one face. It is a view, not a copy: Vertices shares
// storage with the mesh's own Indices buffer.
type Face struct {
	Index    int
	Start    int
	End      int
	Vertices []int
}

// Degree returns the number of vertices (and edges) of the face.
func (f Face) Degree() int { return f.End - f.Start }

// FaceCentroid returns the mean position of face f's vertices.
func (m *Mesh) FaceCentroid(f int) (meshmap.Vec3, error) {
	face, err := m.Face(f)
	if err != nil {
		return meshmap.Vec3{}, err
	}
	var sum meshmap.Vec3
	for _, vi := range face.Vertices {
		p, err := m.Vertex(vi)
		if err != nil {
			return meshmap.Vec3{}, err
		}
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(face.Vertices))), nil
}

// FaceNormal returns the unnormalized Newell-like normal of face f: the
// cross product of its 0->1 and 0->2 edges.
func (m *Mesh) FaceNormal(f int) (meshmap.Vec3, error) {
	face, err := m.Face(f)
	if err != nil {
		return meshmap.Vec3{}, err
	}
	if face.Degree() < 3 {
		return meshmap.Vec3{}, nil
	}
	p0, err := m.Vertex(face.Vertices[0])
	if err != nil {
		return meshmap.Vec3{}, err
	}
	p1, err := m.Vertex(face.Vertices[1])
	if err != nil {
		return meshmap.Vec3{}, err
	}
	p2, err := m.Vertex(face.Vertices[2])
	if err != nil {
		return meshmap.Vec3{}, err
	}
	return p1.Sub(p0).Cross(p2.Sub(p0)), nil
}

// AggregateFaces computes the mean centroid and mean normal over a set of
// face indices. Used by the subdivision pass to build local frames at a
// vertex from its incident faces.
func (m *Mesh) AggregateFaces(faceIndices []int) (meanCentroid, meanNormal meshmap.Vec3, err error) {
	if len(faceIndices) == 0 {
		return meshmap.Vec3{}, meshmap.Vec3{}, nil
	}
	var sumC, sumN meshmap.Vec3
	for _, f := range faceIndices {
		c, err := m.FaceCentroid(f)
		if err != nil {
			return meshmap.Vec3{}, meshmap.Vec3{}, err
		}
		n, err := m.FaceNormal(f)
		if err != nil {
			return meshmap.Vec3{}, meshmap.Vec3{}, err
		}
		sumC = sumC.Add(c)
		sumN = sumN.Add(n)
	}
	inv := 1 / float64(len(faceIndices))
	return sumC.Scale(inv), sumN.Scale(inv), nil
}
