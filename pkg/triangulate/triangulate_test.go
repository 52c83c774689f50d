package triangulate

import (
	"reflect"
	"testing"

	"github.com/mesh-3d-utils/core/pkg/mesh"
)

func unitCube() *mesh.Mesh {
	m := mesh.NewPacked()
	corners := [8][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for _, c := range corners {
		m.X = append(m.X, c[0])
		m.Y = append(m.Y, c[1])
		m.Z = append(m.Z, c[2])
	}
	faces := [][]int{
		{0, 1, 2, 3}, {5, 4, 7, 6}, {1, 0, 4, 5},
		{3, 2, 6, 7}, {2, 1, 5, 6}, {0, 3, 7, 4},
	}
	for _, f := range faces {
		m.AppendFace(f)
	}
	return m
}

func TestTriangulateCube(t *testing.T) {
	out, vertexMap, faceMap, err := Triangulate(unitCube())
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if out.VertexCount() != 8 {
		t.Errorf("VertexCount = %d, want 8 (unchanged)", out.VertexCount())
	}
	if out.FaceCount() != 12 {
		t.Errorf("FaceCount = %d, want 12", out.FaceCount())
	}
	for i := 0; i < 8; i++ {
		cs, err := vertexMap.FromBase(i)
		if err != nil {
			t.Fatalf("vertexMap.FromBase(%d): %v", i, err)
		}
		if len(cs) != 1 || cs[0].Index != i {
			t.Errorf("vertexMap.FromBase(%d) = %v, want identity", i, cs)
		}
	}
	for f := 0; f < 6; f++ {
		cs, err := faceMap.FromBase(f)
		if err != nil {
			t.Fatalf("faceMap.FromBase(%d): %v", f, err)
		}
		if len(cs) != 2 {
			t.Errorf("faceMap.FromBase(%d) has %d triangles, want 2", f, len(cs))
		}
	}
}

func TestTriangulateFaceDegreeCounts(t *testing.T) {
	cases := []struct {
		degrees []int
		want    int
	}{
		{[]int{4}, 2},
		{[]int{3, 4, 5}, 1 + 2 + 3},
		{[]int{6}, 4},
	}
	for _, c := range cases {
		m := mesh.NewPacked()
		maxDeg := 0
		for _, d := range c.degrees {
			if d > maxDeg {
				maxDeg = d
			}
		}
		for i := 0; i < maxDeg; i++ {
			m.X = append(m.X, float64(i))
			m.Y = append(m.Y, 0)
			m.Z = append(m.Z, 0)
		}
		for _, d := range c.degrees {
			verts := make([]int, d)
			for i := range verts {
				verts[i] = i
			}
			m.AppendFace(verts)
		}
		out, _, _, err := Triangulate(m)
		if err != nil {
			t.Fatalf("Triangulate: %v", err)
		}
		if out.FaceCount() != c.want {
			t.Errorf("degrees %v: triangle count = %d, want %d", c.degrees, out.FaceCount(), c.want)
		}
	}
}

func TestTriangulateFaceMapRoundTrip(t *testing.T) {
	_, _, faceMap, err := Triangulate(unitCube())
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	for t2 := 0; t2 < 12; t2++ {
		cs, err := faceMap.ToBase(t2)
		if err != nil {
			t.Fatalf("ToBase(%d): %v", t2, err)
		}
		if len(cs) != 1 {
			t.Fatalf("triangle %d maps to %d base faces, want 1", t2, len(cs))
		}
		back, err := faceMap.FromBase(cs[0].Index)
		if err != nil {
			t.Fatalf("FromBase: %v", err)
		}
		var found bool
		for _, c := range back {
			if c.Index == t2 {
				found = true
			}
		}
		if !found {
			t.Errorf("triangle %d not found in its base face's FromBase set", t2)
		}
	}
}

func TestTriangulateWindingPreservesVertex0(t *testing.T) {
	m := mesh.NewPacked()
	for i := 0; i < 5; i++ {
		m.X = append(m.X, float64(i))
		m.Y = append(m.Y, 0)
		m.Z = append(m.Z, 0)
	}
	m.AppendFace([]int{0, 1, 2, 3, 4})
	out, _, _, err := Triangulate(m)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	want := [][]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}
	for i, w := range want {
		face, err := out.Face(i)
		if err != nil {
			t.Fatalf("Face(%d): %v", i, err)
		}
		if !reflect.DeepEqual(face.Vertices, w) {
			t.Errorf("triangle %d = %v, want %v", i, face.Vertices, w)
		}
	}
}
