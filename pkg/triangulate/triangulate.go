// Package triangulate implements fan triangulation: the canonical
// exercise of the mapping machinery, since it preserves vertices
// exactly (identity vertex map) while emitting a nontrivial
// many-to-many face map.
package triangulate

import (
	"github.com/mesh-3d-utils/core/pkg/mesh"
	"github.com/mesh-3d-utils/core/pkg/meshmap"
)

// Triangulate fan-triangulates every face of base from its local vertex
// 0 and returns the triangulated mesh plus its vertex map (Identity,
// since vertices are preserved) and face map (an Array map recording,
// for each base face, the contiguous run of triangle indices it
// produced).
func Triangulate(base *mesh.Mesh) (*mesh.Mesh, meshmap.Map, meshmap.Map, error) {
	upperBound := len(base.Indices) - base.FaceCount() - 1
	if upperBound < 0 {
		upperBound = 0
	}

	out := mesh.NewPacked()
	out.X = append([]float64{}, base.X...)
	out.Y = append([]float64{}, base.Y...)
	out.Z = append([]float64{}, base.Z...)
	out.Indices = make([]int, 0, upperBound*3)
	out.IndicesOffset1 = make([]int, 0, upperBound)

	fromBase := meshmap.NewArrayBuilder()
	toBaseIndices := make([]int, 0, upperBound)
	toBaseOffset1 := make([]int, 0, upperBound)
	identityXform := meshmap.Identity4()

	for f := 0; f < base.FaceCount(); f++ {
		face, err := base.Face(f)
		if err != nil {
			return nil, nil, nil, err
		}
		d := face.Degree()
		v0 := face.Vertices[0]

		triRun := make([]int, 0, d-2)
		triXforms := make([]meshmap.Mat4, 0, d-2)
		for k := 1; k < d-1; k++ {
			out.AppendFace([]int{v0, face.Vertices[k], face.Vertices[k+1]})
			t := len(out.IndicesOffset1) - 1
			triRun = append(triRun, t)
			triXforms = append(triXforms, identityXform)

			toBaseIndices = append(toBaseIndices, f)
			toBaseOffset1 = append(toBaseOffset1, len(toBaseIndices))
		}
		fromBase.AppendRun(triRun, triXforms)
	}

	toBaseXforms := make([]meshmap.Mat4, len(toBaseIndices))
	for i := range toBaseXforms {
		toBaseXforms[i] = identityXform
	}

	fbOffset1, fbIndices, fbXforms := fromBase.Build()
	faceMap := meshmap.NewArray(base.FaceCount(), out.FaceCount(),
		fbOffset1, fbIndices, fbXforms,
		toBaseOffset1, toBaseIndices, toBaseXforms)

	vertexMap := meshmap.NewIdentity(out.VertexCount())
	return out, vertexMap, faceMap, nil
}
