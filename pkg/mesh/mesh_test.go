package mesh

import "testing"

// unitCube builds the 8-vertex, 6-quad-face axis-aligned unit cube used
// throughout this package's tests. Face winding is inward-facing: each
// face's 0->1 x 0->2 normal points into the cube.
func unitCube() *Mesh {
	m := NewPacked()
	corners := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for _, c := range corners {
		m.X = append(m.X, c[0])
		m.Y = append(m.Y, c[1])
		m.Z = append(m.Z, c[2])
	}
	// Winding is chosen so that adjacent faces traverse their shared edge
	// in opposite directions (a consistently oriented 2-manifold).
	faces := [][]int{
		{0, 1, 2, 3}, // bottom (z=0)
		{5, 4, 7, 6}, // top (z=1)
		{1, 0, 4, 5}, // front (y=0)
		{3, 2, 6, 7}, // back (y=1)
		{2, 1, 5, 6}, // right (x=1)
		{0, 3, 7, 4}, // left (x=0)
	}
	for _, f := range faces {
		m.AppendFace(f)
	}
	return m
}

func TestUnitCubeShape(t *testing.T) {
	c := unitCube()
	if got := c.VertexCount(); got != 8 {
		t.Errorf("VertexCount = %d, want 8", got)
	}
	if got := c.FaceCount(); got != 6 {
		t.Errorf("FaceCount = %d, want 6", got)
	}
	for f := 0; f < c.FaceCount(); f++ {
		face, err := c.Face(f)
		if err != nil {
			t.Fatalf("Face(%d): %v", f, err)
		}
		if face.Degree() != 4 {
			t.Errorf("face %d degree = %d, want 4", f, face.Degree())
		}
	}
}

func TestUnitCubeFaceZeroView(t *testing.T) {
	c := unitCube()
	face, err := c.Face(0)
	if err != nil {
		t.Fatalf("Face(0): %v", err)
	}
	if face.Degree() != 4 {
		t.Fatalf("degree = %d, want 4", face.Degree())
	}
	want := []int{0, 1, 2, 3}
	for i, v := range want {
		if face.Vertices[i] != v {
			t.Errorf("Vertices[%d] = %d, want %d", i, face.Vertices[i], v)
		}
	}
}

func TestFaceOutOfBounds(t *testing.T) {
	c := unitCube()
	if _, err := c.Face(6); err == nil {
		t.Fatal("expected OutOfBounds error")
	}
	if _, err := c.Face(-1); err == nil {
		t.Fatal("expected OutOfBounds error")
	}
}

func TestVertexOutOfBounds(t *testing.T) {
	c := unitCube()
	if _, err := c.Vertex(8); err == nil {
		t.Fatal("expected OutOfBounds error")
	}
}

func TestCreaseEdgeUndirected(t *testing.T) {
	c := unitCube()
	c.CreaseEdge(0, 1)
	if !c.IsCreased(1, 0) {
		t.Error("crease should be undirected")
	}
	if c.IsCreased(2, 3) {
		t.Error("unrelated edge should not be creased")
	}
}

func TestCloneIndependence(t *testing.T) {
	c := unitCube()
	clone := c.Clone(true)
	if !clone.Modifiable {
		t.Error("clone should be modifiable")
	}
	clone.X[0] = 99
	if c.X[0] == 99 {
		t.Error("clone should not alias original positions")
	}
	clone.AppendFace([]int{0, 1, 2})
	if c.FaceCount() == clone.FaceCount() {
		t.Error("clone should not alias original face buffer")
	}
}

func TestAccelerated(t *testing.T) {
	packed := unitCube()
	if packed.Accelerated() != packed {
		t.Error("Accelerated on an already-packed mesh should return itself")
	}
	mod := packed.Clone(true)
	acc := mod.Accelerated()
	if acc == mod || acc.Modifiable {
		t.Error("Accelerated on a modifiable mesh should return a frozen packed clone")
	}
}
