package catmullclark

import (
	"github.com/mesh-3d-utils/core/pkg/mesh"
	"github.com/mesh-3d-utils/core/pkg/meshmap"
)

func otherEndpoint(info *edgeInfo, v int) (int, bool) {
	switch v {
	case info.u:
		return info.v, true
	case info.v:
		return info.u, true
	default:
		return 0, false
	}
}

// step runs one Catmull-Clark refinement pass over base and returns the
// refined mesh together with its vertex and face maps relative to base.
func step(base *mesh.Mesh, boundaryAsCrease bool) (*mesh.Mesh, meshmap.Map, meshmap.Map, Stats, error) {
	V := base.VertexCount()
	F := base.FaceCount()

	// Adjacency, built in base-face order for determinism.
	edges := map[edgeKey]*edgeInfo{}
	var edgeOrder []edgeKey
	edgeIndexOf := map[edgeKey]int{}
	vertexToFaces := make([][]int, V)
	vertexToEdges := make([][]edgeKey, V)
	seenVF := make([]map[int]bool, V)

	for f := 0; f < F; f++ {
		face, err := base.Face(f)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		d := face.Degree()
		for i := 0; i < d; i++ {
			v := face.Vertices[i]
			if seenVF[v] == nil {
				seenVF[v] = map[int]bool{}
			}
			if !seenVF[v][f] {
				seenVF[v][f] = true
				vertexToFaces[v] = append(vertexToFaces[v], f)
			}
			u, w := face.Vertices[i], face.Vertices[(i+1)%d]
			k := makeEdgeKey(u, w)
			info, ok := edges[k]
			if !ok {
				lo, hi := u, w
				if lo > hi {
					lo, hi = hi, lo
				}
				info = &edgeInfo{u: lo, v: hi}
				edges[k] = info
				edgeIndexOf[k] = len(edgeOrder)
				edgeOrder = append(edgeOrder, k)
				vertexToEdges[lo] = append(vertexToEdges[lo], k)
				vertexToEdges[hi] = append(vertexToEdges[hi], k)
			}
			info.faces = append(info.faces, f)
		}
	}
	E := len(edgeOrder)

	sharp := make([]bool, E)
	for idx, k := range edgeOrder {
		info := edges[k]
		if base.IsCreased(info.u, info.v) {
			sharp[idx] = true
		} else if boundaryAsCrease && len(info.faces) == 1 {
			sharp[idx] = true
		}
	}

	facePointIndex := func(f int) int { return V + f }
	edgePointIndex := func(idx int) int { return V + F + idx }

	out := mesh.NewModifiable()
	out.X = make([]float64, V+F+E)
	out.Y = make([]float64, V+F+E)
	out.Z = make([]float64, V+F+E)

	// Step 1: face points.
	for f := 0; f < F; f++ {
		c, err := base.FaceCentroid(f)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		p := facePointIndex(f)
		out.X[p], out.Y[p], out.Z[p] = c.X, c.Y, c.Z
	}

	// Step 2: edge points.
	stats := Stats{}
	for idx, k := range edgeOrder {
		info := edges[k]
		pu, err := base.Vertex(info.u)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		pv, err := base.Vertex(info.v)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		var pos meshmap.Vec3
		switch {
		case sharp[idx]:
			pos = pu.Add(pv).Scale(0.5)
		case len(info.faces) == 2:
			c0, err := base.FaceCentroid(info.faces[0])
			if err != nil {
				return nil, nil, nil, Stats{}, err
			}
			c1, err := base.FaceCentroid(info.faces[1])
			if err != nil {
				return nil, nil, nil, Stats{}, err
			}
			pos = pu.Add(pv).Add(c0).Add(c1).Scale(0.25)
		default:
			if len(info.faces) != 1 {
				stats.NonManifoldEdges++
			}
			pos = pu.Add(pv).Scale(0.5)
		}
		p := edgePointIndex(idx)
		out.X[p], out.Y[p], out.Z[p] = pos.X, pos.Y, pos.Z
	}

	// Step 3: reposition original vertices.
	newPos := make([]meshmap.Vec3, V)
	for v := 0; v < V; v++ {
		p, err := base.Vertex(v)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		edgesAtV := vertexToEdges[v]
		facesAtV := vertexToFaces[v]
		n := len(edgesAtV)
		m := len(facesAtV)

		var sharpAtV []edgeKey
		for _, k := range edgesAtV {
			if sharp[edgeIndexOf[k]] {
				sharpAtV = append(sharpAtV, k)
			}
		}

		switch {
		case len(sharpAtV) < 2:
			var fbar, ebar meshmap.Vec3
			for _, f := range facesAtV {
				fp, err := base.FaceCentroid(f)
				if err != nil {
					return nil, nil, nil, Stats{}, err
				}
				fbar = fbar.Add(fp)
			}
			for _, ek := range edgesAtV {
				other, ok := otherEndpoint(edges[ek], v)
				if !ok {
					continue
				}
				op, err := base.Vertex(other)
				if err != nil {
					return nil, nil, nil, Stats{}, err
				}
				ebar = ebar.Add(p.Add(op).Scale(0.5))
			}
			if n == 0 {
				newPos[v] = p
				break
			}
			if m > 0 {
				fbar = fbar.Scale(1 / float64(m))
			}
			ebar = ebar.Scale(1 / float64(n))
			newPos[v] = fbar.Add(ebar.Scale(2)).Add(p.Scale(float64(n - 3))).Scale(1 / float64(n))
		case len(sharpAtV) == 2:
			a, aOk := otherEndpoint(edges[sharpAtV[0]], v)
			b, bOk := otherEndpoint(edges[sharpAtV[1]], v)
			if !aOk || !bOk {
				newPos[v] = p // degenerate: no opposite vertex, fall back to corner
				break
			}
			pa, err := base.Vertex(a)
			if err != nil {
				return nil, nil, nil, Stats{}, err
			}
			pb, err := base.Vertex(b)
			if err != nil {
				return nil, nil, nil, Stats{}, err
			}
			newPos[v] = pa.Add(p.Scale(6)).Add(pb).Scale(1.0 / 8)
		default:
			newPos[v] = p
		}
	}
	for v := 0; v < V; v++ {
		out.X[v], out.Y[v], out.Z[v] = newPos[v].X, newPos[v].Y, newPos[v].Z
	}

	// Step 4: rebuild faces, base-face order then within-face corner
	// order.
	quadsOfFace := make([][]int, F)
	quadToFace := make(map[int]int)
	quadsTouchingVertex := make([][]int, V)

	for f := 0; f < F; f++ {
		face, err := base.Face(f)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		d := face.Degree()
		fp := facePointIndex(f)
		for i := 0; i < d; i++ {
			vi := face.Vertices[i]
			vNext := face.Vertices[(i+1)%d]
			vPrev := face.Vertices[(i-1+d)%d]
			eNext := edgePointIndex(edgeIndexOf[makeEdgeKey(vi, vNext)])
			ePrev := edgePointIndex(edgeIndexOf[makeEdgeKey(vPrev, vi)])
			out.AppendFace([]int{vi, eNext, fp, ePrev})
			q := out.FaceCount() - 1
			quadsOfFace[f] = append(quadsOfFace[f], q)
			quadToFace[q] = f
			quadsTouchingVertex[vi] = append(quadsTouchingVertex[vi], q)
		}
	}

	// Local frames.
	beforeFrame := make([]meshmap.Frame, V)
	afterFrame := make([]meshmap.Frame, V)
	for v := 0; v < V; v++ {
		bf, err := vertexFrame(base, v, vertexToFaces[v], vertexEdgeTangent(base, edges, vertexToEdges[v], v))
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		beforeFrame[v] = bf

		afterTangent := meshmap.Vec3{}
		if len(vertexToEdges[v]) > 0 {
			ep, err := out.Vertex(edgePointIndex(edgeIndexOf[vertexToEdges[v][0]]))
			if err != nil {
				return nil, nil, nil, Stats{}, err
			}
			afterTangent = ep.Sub(newPos[v])
		}
		af, err := vertexFrame(out, v, quadsTouchingVertex[v], afterTangent)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		afterFrame[v] = af
	}

	parentFaceFrame := make([]meshmap.Frame, F)
	for f := 0; f < F; f++ {
		fr, err := faceFrame(base, f)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		parentFaceFrame[f] = fr
	}
	childQuadFrame := make([]meshmap.Frame, out.FaceCount())
	for q := 0; q < out.FaceCount(); q++ {
		fr, err := faceFrame(out, q)
		if err != nil {
			return nil, nil, nil, Stats{}, err
		}
		childQuadFrame[q] = fr
	}

	vertexMap, err := buildVertexMap(base, V, F, E, vertexToFaces, vertexToEdges, edges, edgeOrder, edgeIndexOf, facePointIndex, edgePointIndex, beforeFrame, afterFrame)
	if err != nil {
		return nil, nil, nil, Stats{}, err
	}
	faceMap := buildFaceMap(F, out.FaceCount(), quadsOfFace, quadToFace, parentFaceFrame, childQuadFrame)

	return out.Accelerated(), vertexMap, faceMap, stats, nil
}

// vertexEdgeTangent returns the direction from v to the other endpoint of
// its first incident edge (insertion order), or the zero vector if v has
// no incident edges.
func vertexEdgeTangent(m *mesh.Mesh, edges map[edgeKey]*edgeInfo, edgesAtV []edgeKey, v int) meshmap.Vec3 {
	if len(edgesAtV) == 0 {
		return meshmap.Vec3{}
	}
	other, ok := otherEndpoint(edges[edgesAtV[0]], v)
	if !ok {
		return meshmap.Vec3{}
	}
	origin, err := m.Vertex(v)
	if err != nil {
		return meshmap.Vec3{}
	}
	target, err := m.Vertex(other)
	if err != nil {
		return meshmap.Vec3{}
	}
	return target.Sub(origin)
}
