package keyschedule

import (
	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/ca"
)

// MinSubkeyDistance is the smallest pairwise Hamming distance between
// subkeys that Analyze does not flag as weak.
const MinSubkeyDistance = 32

// MinSubkeyWeight is the smallest subkey population count that Analyze does
// not flag as weak.
const MinSubkeyWeight = 32

// Analyze reports how diverse the subkeys of sk are.
//
// A key is flagged weak when a subkey is all zero, two subkeys are equal,
// a subkey has fewer than MinSubkeyWeight set bits, or two subkeys are
// closer than MinSubkeyDistance. The all-zero master key is the canonical
// weak key: rule 30 fixes the zero register, so all four subkeys are zero
// and every round function becomes key independent.
//
// The analysis is diagnostic only; the cipher accepts weak keys.
func Analyze(sk *xr30256.ScheduledKey) xr30256.KeyAnalysis {
	subkeys := sk.Subkeys()

	var a xr30256.KeyAnalysis
	a.MinDistance = xr30256.RegisterBits
	for i, k := range subkeys {
		a.Weights[i] = ca.OnesCount(k)
		if a.Weights[i] == 0 {
			a.ZeroSubkeys++
		}
		for _, other := range subkeys[i+1:] {
			d := ca.Distance(k, other)
			if d == 0 {
				a.DuplicatePair = true
			}
			if d < a.MinDistance {
				a.MinDistance = d
			}
		}
	}

	a.Weak = a.ZeroSubkeys > 0 || a.DuplicatePair || a.MinDistance < MinSubkeyDistance
	for _, w := range a.Weights {
		if w < MinSubkeyWeight {
			a.Weak = true
		}
	}
	return a
}
