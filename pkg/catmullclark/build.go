package catmullclark

import (
	"github.com/mesh-3d-utils/core/pkg/mesh"
	"github.com/mesh-3d-utils/core/pkg/meshmap"
)

// buildVertexMap assembles the vertex map between a base mesh and its
// refined self: every original vertex maps to itself (repositioned) plus
// every face point and edge point of its incident faces/edges; every
// face point and edge point maps back to the base vertices (and, for
// edge points, the two endpoints) that produced it.
func buildVertexMap(
	base *mesh.Mesh, V, F, E int,
	vertexToFaces [][]int, vertexToEdges [][]edgeKey,
	edges map[edgeKey]*edgeInfo, edgeOrder []edgeKey, edgeIndexOf map[edgeKey]int,
	facePointIndex, edgePointIndex func(int) int,
	beforeFrame, afterFrame []meshmap.Frame,
) (meshmap.Map, error) {
	id := meshmap.Identity4()
	selfLen := V + F + E

	fromBuilder := meshmap.NewArrayBuilder()
	for v := 0; v < V; v++ {
		idx := []int{v}
		xforms := []meshmap.Mat4{afterFrame[v].FromFrame(beforeFrame[v])}
		for _, f := range vertexToFaces[v] {
			idx = append(idx, facePointIndex(f))
			xforms = append(xforms, id)
		}
		for _, ek := range vertexToEdges[v] {
			idx = append(idx, edgePointIndex(edgeIndexOf[ek]))
			xforms = append(xforms, id)
		}
		fromBuilder.AppendRun(idx, xforms)
	}

	toBuilder := meshmap.NewArrayBuilder()
	for v := 0; v < V; v++ {
		toBuilder.AppendRun([]int{v}, []meshmap.Mat4{beforeFrame[v].FromFrame(afterFrame[v])})
	}
	for f := 0; f < F; f++ {
		face, err := base.Face(f)
		if err != nil {
			return nil, err
		}
		idx := append([]int{}, face.Vertices...)
		toBuilder.AppendRun(idx, identityXforms(len(idx), id))
	}
	for _, ek := range edgeOrder {
		info := edges[ek]
		toBuilder.AppendRun([]int{info.u, info.v}, identityXforms(2, id))
	}

	fo, fi, fx := fromBuilder.Build()
	to, ti, tx := toBuilder.Build()
	return meshmap.NewArray(V, selfLen, fo, fi, fx, to, ti, tx), nil
}

// buildFaceMap assembles the face map between a base mesh and its refined
// self: every base face maps to the run of quads it produced (one per
// corner), transform-linked through their local frames; every quad maps
// back to its single parent face.
func buildFaceMap(F, quadCount int, quadsOfFace [][]int, quadToFace map[int]int,
	parentFaceFrame, childQuadFrame []meshmap.Frame,
) meshmap.Map {
	fromBuilder := meshmap.NewArrayBuilder()
	for f := 0; f < F; f++ {
		quads := quadsOfFace[f]
		xforms := make([]meshmap.Mat4, len(quads))
		for i, q := range quads {
			xforms[i] = childQuadFrame[q].FromFrame(parentFaceFrame[f])
		}
		fromBuilder.AppendRun(quads, xforms)
	}

	toBuilder := meshmap.NewArrayBuilder()
	for q := 0; q < quadCount; q++ {
		f := quadToFace[q]
		toBuilder.AppendRun([]int{f}, []meshmap.Mat4{parentFaceFrame[f].FromFrame(childQuadFrame[q])})
	}

	fo, fi, fx := fromBuilder.Build()
	to, ti, tx := toBuilder.Build()
	return meshmap.NewArray(F, quadCount, fo, fi, fx, to, ti, tx)
}
