// Package catmullclark implements one-iteration Catmull-Clark
// subdivision: face points, edge points honoring user-flagged and
// boundary creases, repositioned original vertices, and rebuilt quad
// faces, together with the vertex and face maps relating the refined
// mesh back to its base.
package catmullclark

import (
	"github.com/mesh-3d-utils/core/pkg/mesh"
	"github.com/mesh-3d-utils/core/pkg/meshmap"
)

type edgeKey uint64

func makeEdgeKey(u, v int) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey(uint64(uint32(u))<<32 | uint64(uint32(v)))
}

type edgeInfo struct {
	u, v  int // canonical endpoints, u<v
	faces []int
}

// Stats reports non-fatal observability counters from one refinement
// iteration. A non-manifold edge falls back to a best-effort midpoint
// rather than failing the whole refinement.
type Stats struct {
	NonManifoldEdges int
}

// Options controls one or more refinement iterations.
type Options struct {
	BoundaryAsCrease bool
	Iterations       uint
}

// Refine runs Options.Iterations passes of subdivision over base,
// composing the per-iteration vertex and face maps into a single pair of
// maps relative to base. The first pass's vertex map is kept with its
// frame transforms; later passes compose into it by index only (see
// composeVertexMapIndicesOnly).
func Refine(base *mesh.Mesh, opts Options) (*mesh.Mesh, meshmap.Map, meshmap.Map, Stats, error) {
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = 1
	}

	cur := base
	var total Stats
	var vertexMap meshmap.Map = meshmap.NewIdentity(base.VertexCount())
	var faceMap meshmap.Map = meshmap.NewIdentity(base.FaceCount())

	for i := uint(0); i < iterations; i++ {
		next, stepVertexMap, stepFaceMap, stepStats, err := step(cur, opts.BoundaryAsCrease)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		total.NonManifoldEdges += stepStats.NonManifoldEdges

		if i == 0 {
			vertexMap = stepVertexMap
		} else {
			vertexMap, err = composeVertexMapIndicesOnly(vertexMap, stepVertexMap)
			if err != nil {
				return nil, nil, nil, Stats{}, err
			}
		}
		faceMap, err = meshmap.Compile(faceMap, stepFaceMap)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}

		cur = next
	}
	return cur, vertexMap, faceMap, total, nil
}

// composeVertexMapIndicesOnly fuses two adjacent vertex maps the way
// meshmap.Compile does for indices, but stamps every composed
// correspondence with the identity transform rather than multiplying the
// two transforms together. A vertex's local frame is re-derived from
// scratch each iteration and is not guaranteed stable under repeated
// averaging the way a face's child-quad frame is within one step, so
// composing those frames across iterations would accumulate unverified
// error. Only the face map's transforms compose.
func composeVertexMapIndicesOnly(a, b meshmap.Map) (meshmap.Map, error) {
	_, aSelf := a.Lengths()
	bBase, _ := b.Lengths()
	if aSelf != bBase {
		return nil, &meshmap.Error{Kind: meshmap.LengthMismatch, Message: "vertex map compose: A.self and B.base lengths differ"}
	}
	aBase, _ := a.Lengths()
	_, bSelf := b.Lengths()
	id := meshmap.Identity4()

	fromBuilder := meshmap.NewArrayBuilder()
	for x := 0; x < aBase; x++ {
		axys, err := a.FromBase(x)
		if err != nil {
			return nil, err
		}
		var idx []int
		for _, axy := range axys {
			byzs, err := b.FromBase(axy.Index)
			if err != nil {
				return nil, err
			}
			for _, byz := range byzs {
				idx = append(idx, byz.Index)
			}
		}
		fromBuilder.AppendRun(idx, identityXforms(len(idx), id))
	}

	toBuilder := meshmap.NewArrayBuilder()
	for z := 0; z < bSelf; z++ {
		bzys, err := b.ToBase(z)
		if err != nil {
			return nil, err
		}
		var idx []int
		for _, bzy := range bzys {
			ayxs, err := a.ToBase(bzy.Index)
			if err != nil {
				return nil, err
			}
			for _, ayx := range ayxs {
				idx = append(idx, ayx.Index)
			}
		}
		toBuilder.AppendRun(idx, identityXforms(len(idx), id))
	}

	fo, fi, fx := fromBuilder.Build()
	to, ti, tx := toBuilder.Build()
	return meshmap.NewArray(aBase, bSelf, fo, fi, fx, to, ti, tx), nil
}

func identityXforms(n int, id meshmap.Mat4) []meshmap.Mat4 {
	out := make([]meshmap.Mat4, n)
	for i := range out {
		out[i] = id
	}
	return out
}
