package meshmap

// Identity is the 1:1, i<->i mapping with identity transforms, used by
// MeshGeometry and by triangulation's vertex map (vertices are preserved
// by the triangulation fan).
type Identity struct {
	n int
}

// NewIdentity returns an Identity map over n elements.
func NewIdentity(n int) *Identity {
	return &Identity{n: n}
}

// Lengths implements Map.
func (m *Identity) Lengths() (base, self int) { return m.n, m.n }

// FromBase implements Map.
func (m *Identity) FromBase(i int) ([]Correspondence, error) {
	if err := boundsCheck(i, m.n); err != nil {
		return nil, err
	}
	return []Correspondence{{Index: i, Transform: Identity4()}}, nil
}

// ToBase implements Map.
func (m *Identity) ToBase(j int) ([]Correspondence, error) {
	return m.FromBase(j)
}
