// Package keyschedule derives the four XR30256 subkeys from a master key.
//
// Subkey j (1..4) is the CA evolution of a mixing vector built from the key
// words with 64-bit wraparound arithmetic. The subkeys are independent of
// each other and can be derived in any order.
package keyschedule

import (
	"fmt"

	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/ca"
)

// MixingVector returns the register evolved into subkey j of key.
//
// Limb j-1 holds key word k[j-1]; every other limb i holds
// k[j-1] + k[j-1]*k[i] modulo 2^64. It panics if j is outside 1..4.
func MixingVector(key xr30256.Key, j int) xr30256.Register {
	if j < 1 || j > 4 {
		panic(fmt.Sprintf("keyschedule: subkey index %d out of range", j))
	}
	pivot := key[j-1]
	var v xr30256.Register
	for i := range v {
		if i == j-1 {
			v[i] = pivot
			continue
		}
		v[i] = pivot + pivot*key[i]
	}
	return v
}

// Derive computes the scheduled key of key under params.
// Every key is accepted, including weak ones; see Analyze.
func Derive(params xr30256.Params, key xr30256.Key) xr30256.ScheduledKey {
	table := ca.RuleFromNumber(params.Rule)
	var sk [4]xr30256.Register
	for j := 1; j <= 4; j++ {
		sk[j-1] = ca.Evolve(MixingVector(key, j), table, params.Generations)
	}
	return xr30256.ScheduledKey{K1: sk[0], K2: sk[1], K3: sk[2], K4: sk[3]}
}
