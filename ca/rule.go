// Package ca implements elementary cellular automata on a 256-bit circular
// register.
//
// A rule table maps the 3-cell neighbourhood (left, center, right) of each
// cell to its next state. All cells update synchronously: every cell of a
// generation is computed from the previous generation only. The left
// neighbour of position p is position p-1 and the right neighbour is p+1,
// both taken modulo 256.
package ca

import (
	xr30256 "github.com/BackendStack21/xr30256-go"
)

// Rule tables used by the cipher and by the research tooling.
var (
	// Rule30 drives the XR30256 round function: left XOR (center OR right).
	Rule30 = RuleFromNumber(30)
	// Rule90 is the additive rule: left XOR right.
	Rule90 = RuleFromNumber(90)
	// Rule110 is the Turing-complete class IV rule.
	Rule110 = RuleFromNumber(110)
	// Rule10 shifts isolated cells towards the left.
	Rule10 = RuleFromNumber(10)
)

// rule30 selects the fast path. Callers may reassign the exported tables.
var rule30 = RuleFromNumber(30)

// RuleFromNumber returns the table of the elementary rule with the given
// Wolfram number. Bit n of the number is the output for neighbourhood n.
func RuleFromNumber(n uint8) xr30256.RuleTable {
	var t xr30256.RuleTable
	for i := range t {
		t[i] = (n >> uint(i)) & 1
	}
	return t
}

// Number returns the Wolfram number of a rule table. Any non-zero entry
// counts as 1.
func Number(t xr30256.RuleTable) uint8 {
	var n uint8
	for i, v := range t {
		if v != 0 {
			n |= 1 << uint(i)
		}
	}
	return n
}

// Lookup returns the next state of a cell given its neighbourhood.
// Inputs are treated as bits; only their lowest bit is used.
func Lookup(t xr30256.RuleTable, left, center, right uint8) uint8 {
	idx := (left&1)<<2 | (center&1)<<1 | right&1
	return t[idx] & 1
}
