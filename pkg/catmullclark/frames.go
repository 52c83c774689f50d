package catmullclark

import (
	"github.com/mesh-3d-utils/core/pkg/mesh"
	"github.com/mesh-3d-utils/core/pkg/meshmap"
)

// faceFrame builds the local orthonormal frame at face f's centroid:
// normal from the sum of the face's fan-triangle normals, tangent from
// its first edge.
func faceFrame(m *mesh.Mesh, f int) (meshmap.Frame, error) {
	face, err := m.Face(f)
	if err != nil {
		return meshmap.Frame{}, err
	}
	origin, err := m.FaceCentroid(f)
	if err != nil {
		return meshmap.Frame{}, err
	}
	d := face.Degree()
	v0, err := m.Vertex(face.Vertices[0])
	if err != nil {
		return meshmap.Frame{}, err
	}
	var tangent meshmap.Vec3
	var normal meshmap.Vec3
	if d >= 2 {
		v1, err := m.Vertex(face.Vertices[1])
		if err != nil {
			return meshmap.Frame{}, err
		}
		tangent = v1.Sub(v0)
	}
	for k := 1; k < d-1; k++ {
		vk, err := m.Vertex(face.Vertices[k])
		if err != nil {
			return meshmap.Frame{}, err
		}
		vk1, err := m.Vertex(face.Vertices[k+1])
		if err != nil {
			return meshmap.Frame{}, err
		}
		normal = normal.Add(vk.Sub(v0).Cross(vk1.Sub(v0)))
	}
	return meshmap.NewFrame(origin, normal, tangent), nil
}

// vertexFrame builds the local orthonormal frame at vertex v: normal
// from the mean of the incident faces' normals
// (mesh.Mesh.AggregateFaces), tangent supplied by the caller (the
// direction to the vertex's first incident edge/edge-point, in whichever
// mesh m is).
func vertexFrame(m *mesh.Mesh, v int, incidentFaces []int, tangent meshmap.Vec3) (meshmap.Frame, error) {
	origin, err := m.Vertex(v)
	if err != nil {
		return meshmap.Frame{}, err
	}
	_, meanNormal, err := m.AggregateFaces(incidentFaces)
	if err != nil {
		return meshmap.Frame{}, err
	}
	return meshmap.NewFrame(origin, meanNormal, tangent), nil
}
