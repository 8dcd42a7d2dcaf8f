// Package cipher implements the byte-level XR30256 block cipher.
//
// Keys, plaintexts and ciphertexts are exactly 32 bytes, read as four
// big-endian 64-bit words. The package performs no padding and no chaining:
// each call transforms a single block.
package cipher

import (
	"errors"
	"fmt"

	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/ca"
	"github.com/BackendStack21/xr30256-go/core"
	"github.com/BackendStack21/xr30256-go/feistel"
	"github.com/BackendStack21/xr30256-go/keyschedule"
	"github.com/BackendStack21/xr30256-go/utils"
)

// BlockSize is the XR30256 block size in bytes.
const BlockSize = xr30256.BlockSize

// KeySize is the XR30256 key size in bytes.
const KeySize = xr30256.KeySize

var (
	// ErrInvalidLength is returned when a key, block or register is not
	// exactly 256 bits.
	ErrInvalidLength = errors.New("cipher: invalid length")

	// ErrAllocationFailure is returned when an output buffer cannot be
	// provided within the configured resource limits.
	ErrAllocationFailure = errors.New("cipher: allocation failure")

	errNilKey = errors.New("cipher: nil scheduled key")
)

func checkLength(what string, b []byte) error {
	if len(b) != xr30256.RegisterSize {
		return fmt.Errorf("%w: %s is %d bytes, want %d", ErrInvalidLength, what, len(b), xr30256.RegisterSize)
	}
	return nil
}

// ParseKey decodes a 32-byte key into its four words.
func ParseKey(key []byte) (xr30256.Key, error) {
	var k xr30256.Key
	if err := checkLength("key", key); err != nil {
		return k, err
	}
	utils.LoadWords(k[:], key)
	return k, nil
}

// KeySchedule derives the four subkeys of a 32-byte key.
func KeySchedule(key []byte) (*xr30256.ScheduledKey, error) {
	return keySchedule(core.XR30256Params, key)
}

func keySchedule(params xr30256.Params, key []byte) (*xr30256.ScheduledKey, error) {
	k, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	defer utils.ZeroizeWords(k[:])
	sk := keyschedule.Derive(params, k)
	return &sk, nil
}

// EncryptBlock encrypts one 32-byte block under a scheduled key.
func EncryptBlock(sk *xr30256.ScheduledKey, plaintext []byte) ([]byte, error) {
	return transform(core.XR30256Params, sk, plaintext, feistel.Encrypt)
}

// DecryptBlock decrypts one 32-byte block under a scheduled key.
func DecryptBlock(sk *xr30256.ScheduledKey, ciphertext []byte) ([]byte, error) {
	return transform(core.XR30256Params, sk, ciphertext, feistel.Decrypt)
}

type blockFunc func(xr30256.Params, *xr30256.ScheduledKey, xr30256.Block) xr30256.Block

func transform(params xr30256.Params, sk *xr30256.ScheduledKey, in []byte, fn blockFunc) ([]byte, error) {
	if sk == nil {
		return nil, errNilKey
	}
	if err := checkLength("block", in); err != nil {
		return nil, err
	}
	out := make([]byte, BlockSize)
	apply(params, sk, out, in, fn)
	return out, nil
}

// apply runs fn over one block; dst and src may overlap entirely.
func apply(params xr30256.Params, sk *xr30256.ScheduledKey, dst, src []byte, fn blockFunc) {
	var b xr30256.Block
	utils.LoadWords(b[:], src)
	b = fn(params, sk, b)
	utils.StoreWords(dst, b[:])
}

// Evolve runs the CA over a 32-byte register. It is the byte-level form of
// ca.Evolve for tooling.
func Evolve(register []byte, table xr30256.RuleTable, generations int) ([]byte, error) {
	if err := checkLength("register", register); err != nil {
		return nil, err
	}
	var r xr30256.Register
	utils.LoadWords(r[:], register)
	r = ca.Evolve(r, table, generations)
	out := make([]byte, xr30256.RegisterSize)
	utils.StoreWords(out, r[:])
	return out, nil
}
