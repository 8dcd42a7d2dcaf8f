package ca

import (
	xr30256 "github.com/BackendStack21/xr30256-go"
)

// Step applies one generation of the rule to r.
func Step(r xr30256.Register, t xr30256.RuleTable) xr30256.Register {
	if t == rule30 {
		return step30(r)
	}
	return step(r, t)
}

// Evolve applies the rule to r for the given number of generations.
// A non-positive count returns r unchanged.
func Evolve(r xr30256.Register, t xr30256.RuleTable, generations int) xr30256.Register {
	if t == rule30 {
		for g := 0; g < generations; g++ {
			r = step30(r)
		}
		return r
	}
	for g := 0; g < generations; g++ {
		r = step(r, t)
	}
	return r
}

// neighbours returns the left and right neighbour planes of r: bit p of
// left is bit p-1 of r and bit p of right is bit p+1 of r.
func neighbours(r xr30256.Register) (left, right xr30256.Register) {
	left[0] = r[0]>>1 | r[3]<<63
	left[1] = r[1]>>1 | r[0]<<63
	left[2] = r[2]>>1 | r[1]<<63
	left[3] = r[3]>>1 | r[2]<<63

	right[0] = r[0]<<1 | r[1]>>63
	right[1] = r[1]<<1 | r[2]>>63
	right[2] = r[2]<<1 | r[3]>>63
	right[3] = r[3]<<1 | r[0]>>63
	return left, right
}

func step30(r xr30256.Register) xr30256.Register {
	l, rt := neighbours(r)
	var out xr30256.Register
	for i := range out {
		out[i] = l[i] ^ (r[i] | rt[i])
	}
	return out
}

// step computes every cell in parallel: each limb of the output is the OR,
// over the neighbourhoods the table maps to 1, of the mask of cells whose
// neighbourhood equals that value.
func step(r xr30256.Register, t xr30256.RuleTable) xr30256.Register {
	l, rt := neighbours(r)
	var out xr30256.Register
	for i := range out {
		var acc uint64
		for n, v := range t {
			if v&1 == 0 {
				continue
			}
			acc |= plane(l[i], n&4 != 0) & plane(r[i], n&2 != 0) & plane(rt[i], n&1 != 0)
		}
		out[i] = acc
	}
	return out
}

func plane(w uint64, set bool) uint64 {
	if set {
		return w
	}
	return ^w
}
