package mesh

// FaceEdge identifies one edge of one face by its starting local vertex
// position: edge Edge of face Face connects
// face.Vertices[Edge] to face.Vertices[(Edge+1)%face.Degree()].
type FaceEdge struct {
	Face int
	Edge int
}

// OrientedFaceEdge anchors a FaceEdge at one of its two endpoint
// vertices. EdgesWith returns, for a vertex v, every FaceEdge touching v
// anchored at v — two per incident face, one where v is the edge's start
// and one where v is the edge's end.
type OrientedFaceEdge struct {
	FaceEdge
	From int
}

func (m *Mesh) edgeEndpoints(fe FaceEdge) (u, v int, err error) {
	face, err := m.Face(fe.Face)
	if err != nil {
		return 0, 0, err
	}
	d := face.Degree()
	if fe.Edge < 0 || fe.Edge >= d {
		return 0, 0, &Error{Kind: OutOfBounds, Message: "edge index out of range for face"}
	}
	return face.Vertices[fe.Edge], face.Vertices[(fe.Edge+1)%d], nil
}

// other returns the endpoint of fe that is not anchor.
func (m *Mesh) other(fe FaceEdge, anchor int) (int, error) {
	u, v, err := m.edgeEndpoints(fe)
	if err != nil {
		return 0, err
	}
	switch anchor {
	case u:
		return v, nil
	case v:
		return u, nil
	default:
		return 0, &Error{Kind: SeedMismatch, Message: "anchor vertex not incident to edge"}
	}
}

func (m *Mesh) ensureEdgeIndex() {
	if m.edgeIndexValid {
		return
	}
	idx := make(map[edgeKey][]FaceEdge)
	for f := 0; f < m.FaceCount(); f++ {
		face, _ := m.Face(f)
		d := face.Degree()
		for e := 0; e < d; e++ {
			k := makeEdgeKey(face.Vertices[e], face.Vertices[(e+1)%d])
			idx[k] = append(idx[k], FaceEdge{Face: f, Edge: e})
		}
	}
	m.edgeIndex = idx
	m.edgeIndexValid = true
}

func (m *Mesh) ensureVertexIndex() {
	if m.vertexIndexValid {
		return
	}
	idx := make(map[int][]OrientedFaceEdge)
	for f := 0; f < m.FaceCount(); f++ {
		face, _ := m.Face(f)
		d := face.Degree()
		for e := 0; e < d; e++ {
			fe := FaceEdge{Face: f, Edge: e}
			u, v := face.Vertices[e], face.Vertices[(e+1)%d]
			idx[u] = append(idx[u], OrientedFaceEdge{FaceEdge: fe, From: u})
			idx[v] = append(idx[v], OrientedFaceEdge{FaceEdge: fe, From: v})
		}
	}
	m.vertexIndex = idx
	m.vertexIndexValid = true
}

// FaceAdjacent returns the face-edge on the other side of fe's undirected
// edge. ok is false when the edge is a boundary edge (incident to only
// one face). An edge incident to more than two faces is non-manifold and
// reported as an error.
func (m *Mesh) FaceAdjacent(fe FaceEdge) (twin FaceEdge, ok bool, err error) {
	u, v, err := m.edgeEndpoints(fe)
	if err != nil {
		return FaceEdge{}, false, err
	}
	m.ensureEdgeIndex()
	incident := m.edgeIndex[makeEdgeKey(u, v)]
	if len(incident) > 2 {
		return FaceEdge{}, false, &Error{Kind: NonManifoldEdge, Message: "edge incident to more than two faces"}
	}
	for _, other := range incident {
		if other != fe {
			return other, true, nil
		}
	}
	return FaceEdge{}, false, nil
}

// EdgesWith returns every face-edge incident to vertex v, anchored at v.
func (m *Mesh) EdgesWith(v int) ([]OrientedFaceEdge, error) {
	if v < 0 || v >= m.VertexCount() {
		return nil, &Error{Kind: OutOfBounds, Message: "vertex index out of range"}
	}
	m.ensureVertexIndex()
	out := make([]OrientedFaceEdge, len(m.vertexIndex[v]))
	copy(out, m.vertexIndex[v])
	return out, nil
}

// VertexNeighbor is one entry of a vertex's neighbor fan: the adjacent
// vertex, together with the face lying between it and the *next* entry
// in Fan.Neighbors. Face is -1 for the last entry of an open fan, where
// there is no such face (see Fan.Continuous); for a closed fan Face
// wraps, with the last entry's Face linking back to the first.
type VertexNeighbor struct {
	Vertex int
	Face   int
}

// Fan is the ordered result of VertexNeighbors. A closed (interior)
// vertex's fan forms an unbroken ring of faces around it and has
// Continuous set to true. An open (boundary) vertex's fan is a simple
// path of faces with one more neighbor than face; its last entry's Face
// is -1.
//
// Discontinuity is non-nil only when VertexNeighbors was called with
// noteDiscontinuity set. It holds the index in Neighbors that separates
// the entries reached by the backward walk (following incoming edges)
// from those reached by the forward walk (following outgoing edges),
// both walks starting at v's first incident face; for a continuous fan
// that index is always len(Neighbors), since there is no boundary to
// mark. Its presence, not its value, is the signal: callers that asked
// for it can tell a fan with no boundary from one they didn't ask
// about.
type Fan struct {
	Neighbors     []VertexNeighbor
	Continuous    bool
	Discontinuity *int
}

type vertexFaceTouch struct {
	face           int
	prev, next     int
	incoming       FaceEdge // edge (prev -> v), i.e. Vertices[e]=prev, Vertices[e+1]=v
	outgoing       FaceEdge // edge (v -> next)
	haveIn, haveOut bool
}

// VertexNeighbors walks the ring of faces around vertex v and returns its
// neighbor fan. v must have at least one incident face.
//
// seed, if non-nil, must be a face-edge of one of v's incident faces,
// either its outgoing edge (v -> next) or its incoming edge (prev -> v).
// The returned fan is rotated (and, if seed names the incoming edge,
// mirrored) so that its first entry is the vertex seed points at. A
// closed fan can always be rotated to any seed; an open fan can only
// honor a seed that already names its first entry once any required
// mirroring is applied, since a path has no wraparound to rotate
// through. A seed that isn't one of v's incident edges, or that an open
// fan can't honor, is reported as SeedMismatch.
//
// If noteDiscontinuity is true, Fan.Discontinuity is set to the index in
// Neighbors that separates the backward-walk entries from the
// forward-walk entries. Both walks start at v's first incident face
// (lowest face index), whatever the seed; the seed only rotates or
// mirrors the result. For a closed fan that index is always
// len(Neighbors).
func (m *Mesh) VertexNeighbors(v int, seed *FaceEdge, noteDiscontinuity bool) (Fan, error) {
	edges, err := m.EdgesWith(v)
	if err != nil {
		return Fan{}, err
	}
	if len(edges) == 0 {
		return Fan{}, nil
	}

	touches := make(map[int]*vertexFaceTouch)
	for _, oe := range edges {
		face, err := m.Face(oe.Face)
		if err != nil {
			return Fan{}, err
		}
		d := face.Degree()
		t := touches[oe.Face]
		if t == nil {
			t = &vertexFaceTouch{face: oe.Face}
			touches[oe.Face] = t
		}
		if face.Vertices[oe.Edge] == v {
			t.next = face.Vertices[(oe.Edge+1)%d]
			t.outgoing = oe.FaceEdge
			t.haveOut = true
		} else {
			t.prev = face.Vertices[oe.Edge]
			t.incoming = oe.FaceEdge
			t.haveIn = true
		}
	}

	pool := make(map[int]*vertexFaceTouch, len(touches))
	for f, t := range touches {
		pool[f] = t
	}

	anchor := touches[edges[0].Face]
	delete(pool, anchor.face)

	// Forward walk: follow each face's outgoing edge (v -> next) to the
	// face on the other side, accumulating new "next" vertices.
	forwardVerts := []int{anchor.next}
	var forwardFaces []int
	closed := false
	cur := anchor
	for cur.haveOut {
		twin, ok, err := m.FaceAdjacent(cur.outgoing)
		if err != nil {
			return Fan{}, err
		}
		if !ok {
			break
		}
		if twin.Face == anchor.face {
			forwardFaces = append(forwardFaces, anchor.face)
			closed = true
			break
		}
		next, present := pool[twin.Face]
		if !present {
			break
		}
		delete(pool, twin.Face)
		forwardFaces = append(forwardFaces, twin.Face)
		forwardVerts = append(forwardVerts, next.next)
		cur = next
	}

	if closed {
		neighbors := make([]VertexNeighbor, len(forwardVerts))
		for i, vv := range forwardVerts {
			neighbors[i] = VertexNeighbor{Vertex: vv, Face: forwardFaces[i]}
		}
		return applySeed(neighbors, true, len(neighbors), touches, seed, noteDiscontinuity)
	}

	// Open fan: walk the other direction from the anchor via incoming
	// edges, then stitch reverse(backward) ++ forward together with the
	// anchor's own face linking anchor.prev to anchor.next.
	backVerts := []int{anchor.prev}
	var backFaces []int
	cur = anchor
	for cur.haveIn {
		twin, ok, err := m.FaceAdjacent(cur.incoming)
		if err != nil {
			return Fan{}, err
		}
		if !ok {
			break
		}
		next, present := pool[twin.Face]
		if !present {
			break
		}
		delete(pool, twin.Face)
		backFaces = append(backFaces, twin.Face)
		backVerts = append(backVerts, next.prev)
		cur = next
	}

	n := len(backVerts) + 1 + len(forwardVerts)
	neighbors := make([]VertexNeighbor, 0, n)
	for i := len(backVerts) - 1; i >= 0; i-- {
		face := anchor.face
		if i > 0 {
			face = backFaces[i-1]
		}
		neighbors = append(neighbors, VertexNeighbor{Vertex: backVerts[i], Face: face})
	}
	for i, vv := range forwardVerts {
		face := -1
		if i < len(forwardFaces) {
			face = forwardFaces[i]
		}
		neighbors = append(neighbors, VertexNeighbor{Vertex: vv, Face: face})
	}

	return applySeed(neighbors, false, len(backVerts), touches, seed, noteDiscontinuity)
}

// mirrorFan reverses a neighbor fan in place of direction, keeping each
// Face attached to the edge it actually describes.
func mirrorFan(neighbors []VertexNeighbor, closed bool) []VertexNeighbor {
	n := len(neighbors)
	out := make([]VertexNeighbor, n)
	if closed {
		for k := 0; k < n; k++ {
			out[k] = VertexNeighbor{
				Vertex: neighbors[(n-k)%n].Vertex,
				Face:   neighbors[(n-1-k+n)%n].Face,
			}
		}
		return out
	}
	for k := 0; k < n; k++ {
		face := -1
		if k < n-1 {
			face = neighbors[n-2-k].Face
		}
		out[k] = VertexNeighbor{Vertex: neighbors[n-1-k].Vertex, Face: face}
	}
	return out
}

// rotateClosedFan cyclically shifts a closed fan so that index start
// becomes index 0.
func rotateClosedFan(neighbors []VertexNeighbor, start int) []VertexNeighbor {
	n := len(neighbors)
	out := make([]VertexNeighbor, n)
	for k := 0; k < n; k++ {
		out[k] = neighbors[(start+k)%n]
	}
	return out
}

// applySeed optionally rotates/mirrors a freshly-walked fan to start at
// seed, and optionally records where the forward/backward boundary ends
// up, turning the raw walk result into the Fan VertexNeighbors returns.
// rawBoundary is len(neighbors) for a closed fan (the boundary is
// nominal, since there isn't one) or the number of backward-walk
// vertices for an open one.
func applySeed(neighbors []VertexNeighbor, closed bool, rawBoundary int, touches map[int]*vertexFaceTouch, seed *FaceEdge, noteDiscontinuity bool) (Fan, error) {
	n := len(neighbors)
	boundary := rawBoundary

	if seed != nil {
		t, ok := touches[seed.Face]
		if !ok {
			return Fan{}, &Error{Kind: SeedMismatch, Message: "seed face is not incident to the vertex"}
		}

		var desiredStart int
		var mirror bool
		switch {
		case t.haveOut && t.outgoing == *seed:
			desiredStart = t.next
		case t.haveIn && t.incoming == *seed:
			desiredStart = t.prev
			mirror = true
		default:
			return Fan{}, &Error{Kind: SeedMismatch, Message: "seed edge does not touch the vertex on its incident face"}
		}

		if mirror {
			neighbors = mirrorFan(neighbors, closed)
			if !closed {
				boundary = n - boundary
			}
		}

		start := -1
		for i, nb := range neighbors {
			if nb.Vertex == desiredStart {
				start = i
				break
			}
		}
		if start == -1 {
			return Fan{}, &Error{Kind: SeedMismatch, Message: "seed vertex not found in neighbor fan"}
		}

		if closed {
			neighbors = rotateClosedFan(neighbors, start)
		} else if start != 0 {
			return Fan{}, &Error{Kind: SeedMismatch, Message: "open fan cannot be rotated to start at this seed"}
		}
	}

	if closed {
		boundary = len(neighbors)
	}

	fan := Fan{Neighbors: neighbors, Continuous: closed}
	if noteDiscontinuity {
		b := boundary
		fan.Discontinuity = &b
	}
	return fan, nil
}
