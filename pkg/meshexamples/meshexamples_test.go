package meshexamples

import "testing"

func TestUnitCubeShape(t *testing.T) {
	m := UnitCube()
	if m.VertexCount() != 8 {
		t.Errorf("VertexCount = %d, want 8", m.VertexCount())
	}
	if m.FaceCount() != 6 {
		t.Errorf("FaceCount = %d, want 6", m.FaceCount())
	}
	for f := 0; f < m.FaceCount(); f++ {
		face, err := m.Face(f)
		if err != nil {
			t.Fatalf("Face(%d): %v", f, err)
		}
		if face.Degree() != 4 {
			t.Errorf("face %d degree = %d, want 4", f, face.Degree())
		}
	}
}

func TestMarchingCubesBoxWelded(t *testing.T) {
	m, err := MarchingCubesBox()
	if err != nil {
		t.Fatalf("MarchingCubesBox: %v", err)
	}
	if m.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	if m.FaceCount() == 0 {
		t.Fatal("expected non-zero face count")
	}
	// Welding should merge most triangle corners: a marching-cubes box
	// surface is a closed 2-manifold, so there are far fewer shared
	// vertices than 3 times the triangle count.
	if m.VertexCount() >= m.FaceCount()*3 {
		t.Errorf("VertexCount = %d did not shrink relative to unwelded FaceCount*3 = %d", m.VertexCount(), m.FaceCount()*3)
	}
	for f := 0; f < m.FaceCount(); f++ {
		face, err := m.Face(f)
		if err != nil {
			t.Fatalf("Face(%d): %v", f, err)
		}
		if face.Degree() != 3 {
			t.Errorf("face %d degree = %d, want 3", f, face.Degree())
		}
	}
	t.Logf("marching-cubes box: %d vertices, %d faces", m.VertexCount(), m.FaceCount())
}
