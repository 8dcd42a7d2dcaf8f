package cipher

import (
	"fmt"

	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/core"
	"github.com/BackendStack21/xr30256-go/feistel"
)

// Cipher is an XR30256 instance bound to one scheduled key. It implements
// crypto/cipher.Block and is safe for concurrent use.
type Cipher struct {
	params xr30256.Params
	sk     xr30256.ScheduledKey
}

// NewCipher schedules a 32-byte key under the standard parameters.
func NewCipher(key []byte) (*Cipher, error) {
	return NewCipherWithParams(core.XR30256Params, key)
}

// NewCipherWithParams schedules a 32-byte key under custom parameters.
// Non-standard parameters do not interoperate with other implementations.
func NewCipherWithParams(params xr30256.Params, key []byte) (*Cipher, error) {
	if err := core.ValidateParams(params); err != nil {
		return nil, fmt.Errorf("cipher: %w", err)
	}
	sk, err := keySchedule(params, key)
	if err != nil {
		return nil, err
	}
	return &Cipher{params: params, sk: *sk}, nil
}

// BlockSize returns the block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Params returns the parameter set of the cipher.
func (c *Cipher) Params() xr30256.Params { return c.params }

// ScheduledKey returns a copy of the subkeys.
func (c *Cipher) ScheduledKey() xr30256.ScheduledKey { return c.sk }

// Encrypt encrypts the first block of src into dst.
// Like the standard library block ciphers it panics on short buffers.
func (c *Cipher) Encrypt(dst, src []byte) {
	c.check(dst, src)
	apply(c.params, &c.sk, dst, src, feistel.Encrypt)
}

// Decrypt decrypts the first block of src into dst.
func (c *Cipher) Decrypt(dst, src []byte) {
	c.check(dst, src)
	apply(c.params, &c.sk, dst, src, feistel.Decrypt)
}

func (c *Cipher) check(dst, src []byte) {
	if len(src) < BlockSize {
		panic("xr30256: input not full block")
	}
	if len(dst) < BlockSize {
		panic("xr30256: output not full block")
	}
}

// EncryptBlock encrypts exactly one block and returns the ciphertext.
func (c *Cipher) EncryptBlock(plaintext []byte) ([]byte, error) {
	return transform(c.params, &c.sk, plaintext, feistel.Encrypt)
}

// DecryptBlock decrypts exactly one block and returns the plaintext.
func (c *Cipher) DecryptBlock(ciphertext []byte) ([]byte, error) {
	return transform(c.params, &c.sk, ciphertext, feistel.Decrypt)
}
