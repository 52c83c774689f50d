// Package hostio implements the module's external interfaces:
// de-interleaving an indexed triangle list from a host into a
// *mesh.Mesh, re-interleaving a mesh back into flat host buffers, the
// mesh-level options struct that selects a refinement method, and a
// narrow event registry replacing the dropped desktop-UI binding layer.
package hostio

import (
	"log"

	"github.com/mesh-3d-utils/core/pkg/catmullclark"
	"github.com/mesh-3d-utils/core/pkg/mesh"
)

// IngestTriangleList de-interleaves a flat (x,y,z,x,y,z,...) position
// buffer and a flat triangle index buffer into a packed *mesh.Mesh.
func IngestTriangleList(positions []float64, indices []uint32) (*mesh.Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, &Error{Kind: ShapeMismatch, Message: "positions length is not a multiple of 3"}
	}
	if len(indices)%3 != 0 {
		return nil, &Error{Kind: ShapeMismatch, Message: "indices length is not a multiple of 3"}
	}

	m := mesh.NewPacked()
	vertexCount := len(positions) / 3
	m.X = make([]float64, vertexCount)
	m.Y = make([]float64, vertexCount)
	m.Z = make([]float64, vertexCount)
	for i := 0; i < vertexCount; i++ {
		m.X[i] = positions[3*i]
		m.Y[i] = positions[3*i+1]
		m.Z[i] = positions[3*i+2]
	}

	for i := 0; i < len(indices); i += 3 {
		m.AppendFace([]int{int(indices[i]), int(indices[i+1]), int(indices[i+2])})
	}
	return m, nil
}

// TriangleBuffers is the re-interleaved wire shape PublishTriangleList
// fills in: per-vertex position and normal, flat triangle indices.
// Host-agnostic: no JSON tags, no UI-binding annotations, mirroring the
// teacher's MeshData struct with the frontend-specific fields (PartName,
// Color) stripped out — those belong to the host, not to this module.
type TriangleBuffers struct {
	Vertices []float32
	Normals  []float32
	Indices  []uint32
}

func growFloat32(dst []float32, need int) []float32 {
	if cap(dst) >= need {
		return dst[:need]
	}
	return make([]float32, need)
}

func growUint32(dst []uint32, need int) []uint32 {
	if cap(dst) >= need {
		return dst[:need]
	}
	return make([]uint32, need)
}

// PublishTriangleList re-interleaves m, which must be all-triangle
// faces (the output of pkg/triangulate, or an already-triangulated
// ingest), into dst, growing dst's backing arrays only when their
// current capacity is insufficient. dst may be nil, in which case a
// fresh TriangleBuffers is allocated. Per-vertex normals are the mean of
// the vertex's incident face normals.
func PublishTriangleList(m *mesh.Mesh, dst *TriangleBuffers) (*TriangleBuffers, error) {
	if dst == nil {
		dst = &TriangleBuffers{}
	}

	vertexToFaces := make([][]int, m.VertexCount())
	indexCount := 0
	for f := 0; f < m.FaceCount(); f++ {
		face, err := m.Face(f)
		if err != nil {
			return nil, err
		}
		if face.Degree() != 3 {
			return nil, &Error{Kind: ShapeMismatch, Message: "mesh is not all-triangle, cannot publish a flat triangle list"}
		}
		for _, v := range face.Vertices {
			vertexToFaces[v] = append(vertexToFaces[v], f)
		}
		indexCount += 3
	}

	vertexCount := m.VertexCount()
	dst.Vertices = growFloat32(dst.Vertices, vertexCount*3)
	dst.Normals = growFloat32(dst.Normals, vertexCount*3)
	dst.Indices = growUint32(dst.Indices, indexCount)

	for v := 0; v < vertexCount; v++ {
		p, err := m.Vertex(v)
		if err != nil {
			return nil, err
		}
		dst.Vertices[3*v] = float32(p.X)
		dst.Vertices[3*v+1] = float32(p.Y)
		dst.Vertices[3*v+2] = float32(p.Z)

		_, meanNormal, err := m.AggregateFaces(vertexToFaces[v])
		if err != nil {
			return nil, err
		}
		n, ok := meanNormal.Normalized()
		if !ok {
			n = meanNormal
		}
		dst.Normals[3*v] = float32(n.X)
		dst.Normals[3*v+1] = float32(n.Y)
		dst.Normals[3*v+2] = float32(n.Z)
	}

	for f := 0; f < m.FaceCount(); f++ {
		face, err := m.Face(f)
		if err != nil {
			return nil, err
		}
		dst.Indices[3*f] = uint32(face.Vertices[0])
		dst.Indices[3*f+1] = uint32(face.Vertices[1])
		dst.Indices[3*f+2] = uint32(face.Vertices[2])
	}

	return dst, nil
}

// Method selects a mesh-level refinement algorithm.
type Method int

const (
	// MethodCatmullClark runs pkg/catmullclark.Refine.
	MethodCatmullClark Method = iota
)

// Options is the host-facing, mesh-level options struct: which method to
// run and the parameters it takes.
type Options struct {
	BoundaryAsCrease bool
	Iterations       uint
	Method           Method
}

// Refine dispatches opts.Method against base. MethodCatmullClark is
// currently the only implemented method; any other value is an
// UnknownMethod error.
func Refine(base *mesh.Mesh, opts Options) (*mesh.Mesh, catmullclark.Stats, error) {
	switch opts.Method {
	case MethodCatmullClark:
		out, _, _, stats, err := catmullclark.Refine(base, catmullclark.Options{
			BoundaryAsCrease: opts.BoundaryAsCrease,
			Iterations:       opts.Iterations,
		})
		return out, stats, err
	default:
		return nil, catmullclark.Stats{}, &Error{Kind: UnknownMethod, Message: "unrecognized refinement method"}
	}
}

// EventName identifies one of the three host notifications this module
// fires.
type EventName string

const (
	EventGeometryReassigned     EventName = "geometry reassigned"
	EventDerivedGeometryUpdated EventName = "derived geometry updated"
	EventHostBuffersRewritten   EventName = "host buffers rewritten"
)

// Events is a narrow fire-and-forget registry: any number of listeners
// may subscribe to a name, and Dispatch fans out to all of them
// synchronously. Replaces the dropped Wails binding layer, the way
// app.go's methods used to push updates across that boundary.
type Events struct {
	listeners map[EventName][]func(EventName, any)
}

// NewEvents returns an empty event registry.
func NewEvents() *Events {
	return &Events{listeners: make(map[EventName][]func(EventName, any))}
}

// On registers fn to be called whenever name is dispatched.
func (e *Events) On(name EventName, fn func(EventName, any)) {
	e.listeners[name] = append(e.listeners[name], fn)
}

// Dispatch fans payload out to every listener registered for name. If no
// listener is registered, the event is logged instead of silently
// dropped, mirroring app.go's log.Printf on fatal evaluation errors.
func (e *Events) Dispatch(name EventName, payload any) {
	ls := e.listeners[name]
	if len(ls) == 0 {
		log.Printf("hostio: event %q dispatched with no listeners (payload=%v)", name, payload)
		return
	}
	for _, fn := range ls {
		fn(name, payload)
	}
}
