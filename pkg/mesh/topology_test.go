package mesh

import "testing"

func singleQuad() *Mesh {
	m := NewPacked()
	pts := [4][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, p := range pts {
		m.X = append(m.X, p[0])
		m.Y = append(m.Y, p[1])
		m.Z = append(m.Z, p[2])
	}
	m.AppendFace([]int{0, 1, 2, 3})
	return m
}

func TestFaceAdjacentAroundCubeBottomFace(t *testing.T) {
	c := unitCube()
	want := []FaceEdge{
		{Face: 2, Edge: 0},
		{Face: 4, Edge: 0},
		{Face: 3, Edge: 0},
		{Face: 5, Edge: 0},
	}
	for e, w := range want {
		twin, ok, err := c.FaceAdjacent(FaceEdge{Face: 0, Edge: e})
		if err != nil {
			t.Fatalf("FaceAdjacent(edge %d): %v", e, err)
		}
		if !ok {
			t.Fatalf("edge %d: expected a twin", e)
		}
		if twin != w {
			t.Errorf("FaceAdjacent({0,%d}) = %+v, want %+v", e, twin, w)
		}
	}
}

func TestFaceAdjacentSymmetric(t *testing.T) {
	c := unitCube()
	for e := 0; e < 4; e++ {
		fe := FaceEdge{Face: 0, Edge: e}
		twin, ok, err := c.FaceAdjacent(fe)
		if err != nil || !ok {
			t.Fatalf("FaceAdjacent({0,%d}): ok=%v err=%v", e, ok, err)
		}
		back, ok, err := c.FaceAdjacent(twin)
		if err != nil || !ok {
			t.Fatalf("FaceAdjacent(twin of {0,%d}): ok=%v err=%v", e, ok, err)
		}
		if back != fe {
			t.Errorf("adjacency not symmetric: {0,%d} -> %+v -> %+v", e, twin, back)
		}
	}
}

func TestFaceAdjacentBoundary(t *testing.T) {
	q := singleQuad()
	_, ok, err := q.FaceAdjacent(FaceEdge{Face: 0, Edge: 0})
	if err != nil {
		t.Fatalf("FaceAdjacent: %v", err)
	}
	if ok {
		t.Error("single quad has no twin across any edge")
	}
}

func TestEdgesWithValence(t *testing.T) {
	c := unitCube()
	edges, err := c.EdgesWith(0)
	if err != nil {
		t.Fatalf("EdgesWith: %v", err)
	}
	// corner vertex touches 3 faces, 2 oriented edges per face.
	if len(edges) != 6 {
		t.Errorf("len(edges) = %d, want 6", len(edges))
	}
	for _, oe := range edges {
		if oe.From != 0 {
			t.Errorf("oriented edge anchored at %d, want 0", oe.From)
		}
	}
}

func TestVertexNeighborsClosedFan(t *testing.T) {
	c := unitCube()
	fan, err := c.VertexNeighbors(0, nil, false)
	if err != nil {
		t.Fatalf("VertexNeighbors: %v", err)
	}
	if !fan.Continuous {
		t.Fatal("cube corner vertex should have a continuous fan")
	}
	want := []VertexNeighbor{{Vertex: 1, Face: 2}, {Vertex: 4, Face: 5}, {Vertex: 3, Face: 0}}
	if len(fan.Neighbors) != len(want) {
		t.Fatalf("Neighbors = %+v, want %+v", fan.Neighbors, want)
	}
	for i := range want {
		if fan.Neighbors[i] != want[i] {
			t.Errorf("Neighbors[%d] = %+v, want %+v", i, fan.Neighbors[i], want[i])
		}
	}
}

func TestVertexNeighborsOpenFan(t *testing.T) {
	q := singleQuad()
	fan, err := q.VertexNeighbors(0, nil, false)
	if err != nil {
		t.Fatalf("VertexNeighbors: %v", err)
	}
	if fan.Continuous {
		t.Fatal("single-quad vertex should have an open fan")
	}
	want := []VertexNeighbor{{Vertex: 3, Face: 0}, {Vertex: 1, Face: -1}}
	if len(fan.Neighbors) != len(want) {
		t.Fatalf("Neighbors = %+v, want %+v", fan.Neighbors, want)
	}
	for i := range want {
		if fan.Neighbors[i] != want[i] {
			t.Errorf("Neighbors[%d] = %+v, want %+v", i, fan.Neighbors[i], want[i])
		}
	}
}

func TestVertexNeighborsOutOfBounds(t *testing.T) {
	c := unitCube()
	if _, err := c.VertexNeighbors(99, nil, false); err == nil {
		t.Fatal("expected OutOfBounds error")
	}
}

func TestVertexNeighborsSeedRotatesClosedFan(t *testing.T) {
	c := unitCube()
	// Vertex 0's default-start fan (see TestVertexNeighborsClosedFan) is
	// {1,f2},{4,f5},{3,f0}. Face 2's outgoing edge from vertex 0 points
	// at vertex 4; seeding with it should rotate the fan to start there.
	fan, err := c.VertexNeighbors(0, &FaceEdge{Face: 2, Edge: 1}, false)
	if err != nil {
		t.Fatalf("VertexNeighbors: %v", err)
	}
	want := []VertexNeighbor{{Vertex: 4, Face: 5}, {Vertex: 3, Face: 0}, {Vertex: 1, Face: 2}}
	if len(fan.Neighbors) != len(want) {
		t.Fatalf("Neighbors = %+v, want %+v", fan.Neighbors, want)
	}
	for i := range want {
		if fan.Neighbors[i] != want[i] {
			t.Errorf("Neighbors[%d] = %+v, want %+v", i, fan.Neighbors[i], want[i])
		}
	}
}

func TestVertexNeighborsSeedMirrorsOnIncomingEdge(t *testing.T) {
	c := unitCube()
	face, err := c.Face(5)
	if err != nil {
		t.Fatalf("Face(5): %v", err)
	}
	// Find face 5's incoming edge at vertex 0 (the edge ending at 0).
	var incoming FaceEdge
	found := false
	d := face.Degree()
	for e := 0; e < d; e++ {
		if face.Vertices[(e+1)%d] == 0 {
			incoming = FaceEdge{Face: 5, Edge: e}
			found = true
			break
		}
	}
	if !found {
		t.Fatal("face 5 has no edge incoming to vertex 0")
	}
	fan, err := c.VertexNeighbors(0, &incoming, false)
	if err != nil {
		t.Fatalf("VertexNeighbors: %v", err)
	}
	if fan.Neighbors[0].Vertex != 4 {
		t.Errorf("Neighbors[0].Vertex = %d, want 4", fan.Neighbors[0].Vertex)
	}
	// Mirroring reverses direction: the neighbor after vertex 4 should no
	// longer be the same as the unmirrored, unrotated fan's successor.
	unrotated, err := c.VertexNeighbors(0, nil, false)
	if err != nil {
		t.Fatalf("VertexNeighbors: %v", err)
	}
	if fan.Neighbors[1] == unrotated.Neighbors[1] {
		t.Error("mirrored fan should not match the unrotated fan's direction")
	}
}

func TestVertexNeighborsSeedMismatch(t *testing.T) {
	c := unitCube()
	_, err := c.VertexNeighbors(0, &FaceEdge{Face: 1, Edge: 0}, false)
	if err == nil {
		t.Fatal("expected SeedMismatch error for a face not incident to the vertex")
	}
	merr, ok := err.(*Error)
	if !ok || merr.Kind != SeedMismatch {
		t.Fatalf("err = %v, want a SeedMismatch *Error", err)
	}
}

func TestVertexNeighborsSeedMismatchOpenFanRotation(t *testing.T) {
	q := singleQuad()
	// The single quad's unrotated open fan from vertex 0 is
	// {3,f0},{1,-1}; face 0's outgoing edge from vertex 0 (edge 0) points
	// at vertex 1, which already sits at index 1, not 0. An open fan
	// can't be rotated to put it first, so this must fail.
	_, err := q.VertexNeighbors(0, &FaceEdge{Face: 0, Edge: 0}, false)
	if err == nil {
		t.Fatal("expected SeedMismatch error rotating an open fan past its boundary")
	}
}

func TestVertexNeighborsDiscontinuityContinuousFan(t *testing.T) {
	c := unitCube()
	fan, err := c.VertexNeighbors(0, nil, true)
	if err != nil {
		t.Fatalf("VertexNeighbors: %v", err)
	}
	if fan.Discontinuity == nil {
		t.Fatal("expected a non-nil Discontinuity for noteDiscontinuity=true")
	}
	if *fan.Discontinuity != len(fan.Neighbors) {
		t.Errorf("Discontinuity = %d, want %d", *fan.Discontinuity, len(fan.Neighbors))
	}
}

func TestVertexNeighborsDiscontinuityOpenFan(t *testing.T) {
	q := singleQuad()
	fan, err := q.VertexNeighbors(0, nil, true)
	if err != nil {
		t.Fatalf("VertexNeighbors: %v", err)
	}
	if fan.Discontinuity == nil {
		t.Fatal("expected a non-nil Discontinuity for noteDiscontinuity=true")
	}
	if *fan.Discontinuity < 0 || *fan.Discontinuity > len(fan.Neighbors) {
		t.Errorf("Discontinuity = %d out of range [0,%d]", *fan.Discontinuity, len(fan.Neighbors))
	}
}
