package meshmap

// Symmetric is a bijective 1:1 mapping backed by a permutation plus a
// transform per entry. Mutation after construction is disallowed: the
// two constructors below always derive both directions at once, so a
// Symmetric map is immutable coherence-by-construction.
type Symmetric struct {
	// selfToBase[j] = i means self index j corresponds to base index i,
	// with transform selfToBaseXform[j] carrying self's frame to base's.
	selfToBase      []int
	selfToBaseXform []Mat4
	// baseToSelf is the derived inverse permutation.
	baseToSelf      []int
	baseToSelfXform []Mat4
}

// NewSymmetricFromSelfToBase builds a Symmetric map from a self->base
// permutation and per-entry transforms (self frame -> base frame),
// deriving the base->self direction by inverting the permutation and
// each transform.
func NewSymmetricFromSelfToBase(selfToBase []int, xforms []Mat4) *Symmetric {
	n := len(selfToBase)
	baseToSelf := make([]int, n)
	baseToSelfXform := make([]Mat4, n)
	for j, i := range selfToBase {
		baseToSelf[i] = j
		baseToSelfXform[i] = xforms[j].Inverse()
	}
	return &Symmetric{
		selfToBase:      append([]int{}, selfToBase...),
		selfToBaseXform: append([]Mat4{}, xforms...),
		baseToSelf:      baseToSelf,
		baseToSelfXform: baseToSelfXform,
	}
}

// NewSymmetricFromBaseToSelf builds a Symmetric map from a base->self
// permutation and per-entry transforms (base frame -> self frame),
// deriving the self->base direction symmetrically.
func NewSymmetricFromBaseToSelf(baseToSelf []int, xforms []Mat4) *Symmetric {
	n := len(baseToSelf)
	selfToBase := make([]int, n)
	selfToBaseXform := make([]Mat4, n)
	for i, j := range baseToSelf {
		selfToBase[j] = i
		selfToBaseXform[j] = xforms[i].Inverse()
	}
	return &Symmetric{
		selfToBase:      selfToBase,
		selfToBaseXform: selfToBaseXform,
		baseToSelf:      append([]int{}, baseToSelf...),
		baseToSelfXform: append([]Mat4{}, xforms...),
	}
}

// Lengths implements Map.
func (m *Symmetric) Lengths() (base, self int) {
	n := len(m.selfToBase)
	return n, n
}

// FromBase implements Map.
func (m *Symmetric) FromBase(i int) ([]Correspondence, error) {
	if err := boundsCheck(i, len(m.baseToSelf)); err != nil {
		return nil, err
	}
	return []Correspondence{{Index: m.baseToSelf[i], Transform: m.baseToSelfXform[i]}}, nil
}

// ToBase implements Map.
func (m *Symmetric) ToBase(j int) ([]Correspondence, error) {
	if err := boundsCheck(j, len(m.selfToBase)); err != nil {
		return nil, err
	}
	return []Correspondence{{Index: m.selfToBase[j], Transform: m.selfToBaseXform[j]}}, nil
}
