package ca

import (
	"math/bits"

	xr30256 "github.com/BackendStack21/xr30256-go"
)

// position returns the limb index and the in-limb shift of bit position p.
func position(p int) (limb int, shift uint) {
	p &= xr30256.RegisterBits - 1
	return p / 64, uint(63 - p%64)
}

// Bit returns the value of the bit at position p (modulo 256).
func Bit(r xr30256.Register, p int) uint8 {
	limb, shift := position(p)
	return uint8(r[limb]>>shift) & 1
}

// SetBit returns r with the bit at position p (modulo 256) set to v&1.
func SetBit(r xr30256.Register, p int, v uint8) xr30256.Register {
	limb, shift := position(p)
	r[limb] &^= 1 << shift
	r[limb] |= uint64(v&1) << shift
	return r
}

// Xor returns a XOR b.
func Xor(a, b xr30256.Register) xr30256.Register {
	for i := range a {
		a[i] ^= b[i]
	}
	return a
}

// OnesCount returns the number of set bits in r.
func OnesCount(r xr30256.Register) int {
	n := 0
	for _, w := range r {
		n += bits.OnesCount64(w)
	}
	return n
}

// Distance returns the Hamming distance between a and b.
func Distance(a, b xr30256.Register) int {
	return OnesCount(Xor(a, b))
}

// RotateLeft rotates r towards position 0 by n positions, so that position
// p of the result holds position p+n of r. Negative n rotates right.
func RotateLeft(r xr30256.Register, n int) xr30256.Register {
	n %= xr30256.RegisterBits
	if n < 0 {
		n += xr30256.RegisterBits
	}

	// Whole limbs first.
	for w := n / 64; w > 0; w-- {
		r = xr30256.Register{r[1], r[2], r[3], r[0]}
	}

	s := uint(n % 64)
	if s == 0 {
		return r
	}

	// The bits leaving the top of limb 0 wrap into the bottom of limb 3.
	wrap := r[0] >> (64 - s)
	var out xr30256.Register
	for i := xr30256.Limbs - 1; i >= 0; i-- {
		carry := wrap
		if i < xr30256.Limbs-1 {
			carry = r[i+1] >> (64 - s)
		}
		out[i] = r[i]<<s | carry
	}
	return out
}

// RotateRight rotates r away from position 0 by n positions, so that
// position p of the result holds position p-n of r.
func RotateRight(r xr30256.Register, n int) xr30256.Register {
	return RotateLeft(r, -n)
}
