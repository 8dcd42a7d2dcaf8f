// Package feistel implements the XR30256 generalized Feistel network over
// typed blocks.
//
// A block is split into a left half (limbs 0 and 1) and a right half (limbs 2
// and 3). Each round runs one step per subkey; even steps update the left
// half from the right half and odd steps update the right half from the left
// half. The halves are swapped on output. Decryption runs the same network
// with the subkeys in reverse order.
package feistel

import (
	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/ca"
)

// RoundFunction computes F(subkey, v): v is duplicated into both 128-bit
// halves of a register, XORed with the subkey, evolved, and the two halves
// of the result are folded together with XOR.
func RoundFunction(params xr30256.Params, subkey xr30256.Register, v xr30256.Half) xr30256.Half {
	return roundFunction(ca.RuleFromNumber(params.Rule), params.Generations, subkey, v)
}

func roundFunction(table xr30256.RuleTable, generations int, subkey xr30256.Register, v xr30256.Half) xr30256.Half {
	w := xr30256.Register{
		v[0] ^ subkey[0],
		v[1] ^ subkey[1],
		v[0] ^ subkey[2],
		v[1] ^ subkey[3],
	}
	e := ca.Evolve(w, table, generations)
	return xr30256.Half{e[0] ^ e[2], e[1] ^ e[3]}
}

// Encrypt enciphers one block under the scheduled key.
func Encrypt(params xr30256.Params, sk *xr30256.ScheduledKey, b xr30256.Block) xr30256.Block {
	return network(params, sk.Subkeys(), b)
}

// Decrypt deciphers one block under the scheduled key.
func Decrypt(params xr30256.Params, sk *xr30256.ScheduledKey, b xr30256.Block) xr30256.Block {
	k := sk.Subkeys()
	return network(params, [4]xr30256.Register{k[3], k[2], k[1], k[0]}, b)
}

func network(params xr30256.Params, subkeys [4]xr30256.Register, b xr30256.Block) xr30256.Block {
	table := ca.RuleFromNumber(params.Rule)
	left, right := b.Left(), b.Right()
	for round := 0; round < params.Rounds; round++ {
		for s := 0; s < params.StepsPerRound; s++ {
			k := subkeys[s%len(subkeys)]
			if s%2 == 0 {
				f := roundFunction(table, params.Generations, k, right)
				left[0] ^= f[0]
				left[1] ^= f[1]
			} else {
				f := roundFunction(table, params.Generations, k, left)
				right[0] ^= f[0]
				right[1] ^= f[1]
			}
		}
	}
	return xr30256.JoinHalves(right, left)
}
