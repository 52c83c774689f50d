package meshmap

// Compile fuses two adjacent mappings A:X->Y and B:Y->Z into a single
// equivalent mapping C:X->Z. Sizes must agree: A's self length must
// equal B's base length.
func Compile(a, b Map) (Map, error) {
	_, aSelf := a.Lengths()
	bBase, _ := b.Lengths()
	if aSelf != bBase {
		return nil, &Error{Kind: LengthMismatch, Message: "compile: A.self and B.base lengths differ"}
	}

	aBase, _ := a.Lengths()
	_, bSelf := b.Lengths()

	fromBuilder := NewArrayBuilder()
	for x := 0; x < aBase; x++ {
		axys, err := a.FromBase(x)
		if err != nil {
			return nil, err
		}
		var idx []int
		var xf []Mat4
		for _, axy := range axys {
			byzs, err := b.FromBase(axy.Index)
			if err != nil {
				return nil, err
			}
			for _, byz := range byzs {
				idx = append(idx, byz.Index)
				xf = append(xf, axy.Transform.Mul(byz.Transform))
			}
		}
		fromBuilder.AppendRun(idx, xf)
	}

	toBuilder := NewArrayBuilder()
	for z := 0; z < bSelf; z++ {
		bzys, err := b.ToBase(z)
		if err != nil {
			return nil, err
		}
		var idx []int
		var xf []Mat4
		for _, bzy := range bzys {
			ayxs, err := a.ToBase(bzy.Index)
			if err != nil {
				return nil, err
			}
			for _, ayx := range ayxs {
				idx = append(idx, ayx.Index)
				xf = append(xf, bzy.Transform.Mul(ayx.Transform))
			}
		}
		toBuilder.AppendRun(idx, xf)
	}

	fo, fi, fx := fromBuilder.Build()
	to, ti, tx := toBuilder.Build()
	return NewArray(aBase, bSelf, fo, fi, fx, to, ti, tx), nil
}

// CompileChain folds a list of maps to a single map by a right fold:
// compile(m[0], compile(m[1], compile(..., m[n-1]))). The empty list
// collapses to Identity(n) for the externally-supplied n.
func CompileChain(maps []Map, identityLen int) (Map, error) {
	if len(maps) == 0 {
		return NewIdentity(identityLen), nil
	}
	acc := maps[len(maps)-1]
	for i := len(maps) - 2; i >= 0; i-- {
		var err error
		acc, err = Compile(maps[i], acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}
