package meshmap

// Array is a many<->many mapping stored CSR-style: both directions are
// independently supplied and independently stored — neither direction is
// derived from the other.
type Array struct {
	baseLen, selfLen int

	fromBaseOffset1 []int // end offsets, length baseLen
	fromBaseIndices []int
	fromBaseXforms  []Mat4

	toBaseOffset1 []int // end offsets, length selfLen
	toBaseIndices []int
	toBaseXforms  []Mat4
}

// NewArray builds an Array map from two independently-specified CSR
// directions. Offsets are end-offsets, the same convention the mesh
// package uses for its own face-index buffer: entry i occupies
// [offset[i-1], offset[i]), with offset[-1] := 0.
func NewArray(baseLen, selfLen int,
	fromBaseOffset1 []int, fromBaseIndices []int, fromBaseXforms []Mat4,
	toBaseOffset1 []int, toBaseIndices []int, toBaseXforms []Mat4,
) *Array {
	return &Array{
		baseLen: baseLen, selfLen: selfLen,
		fromBaseOffset1: fromBaseOffset1, fromBaseIndices: fromBaseIndices, fromBaseXforms: fromBaseXforms,
		toBaseOffset1: toBaseOffset1, toBaseIndices: toBaseIndices, toBaseXforms: toBaseXforms,
	}
}

// NewArrayBuilder returns a builder for incrementally constructing an
// Array map by appending per-base-index and per-self-index runs in order,
// the way triangulation and Catmull-Clark emit their face/vertex maps.
func NewArrayBuilder() *ArrayBuilder {
	return &ArrayBuilder{}
}

// ArrayBuilder accumulates CSR runs for one direction at a time.
type ArrayBuilder struct {
	offset1 []int
	indices []int
	xforms  []Mat4
}

// AppendRun appends one CSR run (e.g. all self indices for one base
// index) and closes it with an end offset.
func (b *ArrayBuilder) AppendRun(indices []int, xforms []Mat4) {
	b.indices = append(b.indices, indices...)
	b.xforms = append(b.xforms, xforms...)
	b.offset1 = append(b.offset1, len(b.indices))
}

// Build returns the accumulated CSR triple.
func (b *ArrayBuilder) Build() (offset1 []int, indices []int, xforms []Mat4) {
	return b.offset1, b.indices, b.xforms
}

func csrRange(offset1 []int, i int) (start, end int) {
	if i == 0 {
		return 0, offset1[0]
	}
	return offset1[i-1], offset1[i]
}

func csrSlice(offset1 []int, n int, indices []int, xforms []Mat4, i int) ([]Correspondence, error) {
	if err := boundsCheck(i, n); err != nil {
		return nil, err
	}
	start, end := csrRange(offset1, i)
	out := make([]Correspondence, end-start)
	for k := start; k < end; k++ {
		out[k-start] = Correspondence{Index: indices[k], Transform: xforms[k]}
	}
	return out, nil
}

// Lengths implements Map.
func (m *Array) Lengths() (base, self int) { return m.baseLen, m.selfLen }

// FromBase implements Map.
func (m *Array) FromBase(i int) ([]Correspondence, error) {
	return csrSlice(m.fromBaseOffset1, m.baseLen, m.fromBaseIndices, m.fromBaseXforms, i)
}

// ToBase implements Map.
func (m *Array) ToBase(j int) ([]Correspondence, error) {
	return csrSlice(m.toBaseOffset1, m.selfLen, m.toBaseIndices, m.toBaseXforms, j)
}
