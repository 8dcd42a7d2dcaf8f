package cipher

import (
	"bytes"
	stdcipher "crypto/cipher"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/ca"
	"github.com/BackendStack21/xr30256-go/core"
	"github.com/BackendStack21/xr30256-go/utils"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

const (
	goldenKeyHex        = "a59535d07e192f1282734fb3084c5e05385b8a038d28e669d2bc44a82c395d8e"
	goldenPlaintextHex  = "0101010101010101020202020202020203030303030303030404040404040404"
	goldenCiphertextHex = "ffe65120e48fc4f68858c7277abefe8fafb3a61728df176e81075d7c09517a42"
)

var _ stdcipher.Block = (*Cipher)(nil)

func TestKnownAnswer(t *testing.T) {
	key := mustHex(t, goldenKeyHex)
	pt := mustHex(t, goldenPlaintextHex)

	sk, err := KeySchedule(key)
	require.NoError(t, err)
	require.Equal(t, xr30256.Register{0xc46290d1a684d639, 0xdf434310b8aa520f, 0x4ccd68bfeecb2918, 0xa56452519a218336}, sk.K1)
	require.Equal(t, xr30256.Register{0x275b6fcd4b88549f, 0x02a3279bcb5a15d3, 0x4e69a8d916965a5a, 0x72df7e7a2b5468c5}, sk.K4)

	ct, err := EncryptBlock(sk, pt)
	require.NoError(t, err)
	require.Equal(t, goldenCiphertextHex, hex.EncodeToString(ct))

	back, err := DecryptBlock(sk, ct)
	require.NoError(t, err)
	require.Equal(t, pt, back)
}

func TestRoundTrip(t *testing.T) {
	material := utils.Shake256WithDomain("xr30-test", []byte("round trip"), 8*(KeySize+BlockSize))
	for i := 0; i < 8; i++ {
		off := i * (KeySize + BlockSize)
		key := material[off : off+KeySize]
		pt := material[off+KeySize : off+KeySize+BlockSize]

		sk, err := KeySchedule(key)
		require.NoError(t, err)
		ct, err := EncryptBlock(sk, pt)
		require.NoError(t, err)
		assert.NotEqual(t, pt, ct)
		back, err := DecryptBlock(sk, ct)
		require.NoError(t, err)
		require.Equal(t, pt, back, "trial %d", i)
	}
}

func TestDeterminism(t *testing.T) {
	key := mustHex(t, goldenKeyHex)
	pt := mustHex(t, goldenPlaintextHex)

	sk1, err := KeySchedule(key)
	require.NoError(t, err)
	sk2, err := KeySchedule(key)
	require.NoError(t, err)
	require.Equal(t, *sk1, *sk2)

	ct1, _ := EncryptBlock(sk1, pt)
	ct2, _ := EncryptBlock(sk2, pt)
	require.Equal(t, ct1, ct2)

	// Inputs are not modified.
	require.Equal(t, goldenKeyHex, hex.EncodeToString(key))
	require.Equal(t, goldenPlaintextHex, hex.EncodeToString(pt))
}

func TestInvalidLength(t *testing.T) {
	sk, err := KeySchedule(mustHex(t, goldenKeyHex))
	require.NoError(t, err)

	for _, n := range []int{0, 1, 16, 31, 33, 64} {
		buf := make([]byte, n)

		_, err := KeySchedule(buf)
		assert.True(t, errors.Is(err, ErrInvalidLength), "KeySchedule(%d bytes): %v", n, err)

		out, err := EncryptBlock(sk, buf)
		assert.ErrorIs(t, err, ErrInvalidLength, "EncryptBlock(%d bytes)", n)
		assert.Nil(t, out)

		out, err = DecryptBlock(sk, buf)
		assert.ErrorIs(t, err, ErrInvalidLength, "DecryptBlock(%d bytes)", n)
		assert.Nil(t, out)

		out, err = Evolve(buf, ca.Rule30, 1)
		assert.ErrorIs(t, err, ErrInvalidLength, "Evolve(%d bytes)", n)
		assert.Nil(t, out)

		_, err = NewCipher(buf)
		assert.ErrorIs(t, err, ErrInvalidLength, "NewCipher(%d bytes)", n)
	}
}

func TestNilScheduledKey(t *testing.T) {
	_, err := EncryptBlock(nil, make([]byte, BlockSize))
	require.Error(t, err)
	_, err = DecryptBlock(nil, make([]byte, BlockSize))
	require.Error(t, err)
}

func TestAvalanche(t *testing.T) {
	key := mustHex(t, goldenKeyHex)
	sk, err := KeySchedule(key)
	require.NoError(t, err)

	const trials = 32
	inputs := utils.Shake256WithDomain("xr30-test", []byte("avalanche"), trials*BlockSize)
	total := 0
	for i := 0; i < trials; i++ {
		pt := inputs[i*BlockSize : (i+1)*BlockSize]
		flipped := append([]byte(nil), pt...)
		bit := (i * 37) % (8 * BlockSize)
		flipped[bit/8] ^= 0x80 >> uint(bit%8)

		c1, err := EncryptBlock(sk, pt)
		require.NoError(t, err)
		c2, err := EncryptBlock(sk, flipped)
		require.NoError(t, err)
		total += hamming(c1, c2)
	}
	mean := float64(total) / trials
	assert.Greater(t, mean, 64.0, "mean ciphertext bit difference %.1f of 256", mean)
}

func TestKeyAvalanche(t *testing.T) {
	key := mustHex(t, goldenKeyHex)
	pt := mustHex(t, goldenPlaintextHex)
	base, err := KeySchedule(key)
	require.NoError(t, err)
	c1, _ := EncryptBlock(base, pt)

	total := 0
	for i := 0; i < 16; i++ {
		k := append([]byte(nil), key...)
		k[i*2] ^= 1
		sk, err := KeySchedule(k)
		require.NoError(t, err)
		c2, _ := EncryptBlock(sk, pt)
		total += hamming(c1, c2)
	}
	assert.Greater(t, float64(total)/16, 64.0)
}

func hamming(a, b []byte) int {
	n := 0
	for i := range a {
		x := a[i] ^ b[i]
		for x != 0 {
			n += int(x & 1)
			x >>= 1
		}
	}
	return n
}

func TestEvolveBytes(t *testing.T) {
	reg := make([]byte, 32)
	reg[12] = 0x08 // position 100
	out, err := Evolve(reg, ca.Rule30, 1)
	require.NoError(t, err)
	want := make([]byte, 32)
	want[12] = 0x1c
	require.Equal(t, want, out)

	same, err := Evolve(reg, ca.Rule30, 0)
	require.NoError(t, err)
	require.Equal(t, reg, same)
}

func TestCipherBlock(t *testing.T) {
	c, err := NewCipher(mustHex(t, goldenKeyHex))
	require.NoError(t, err)
	require.Equal(t, 32, c.BlockSize())
	require.Equal(t, core.XR30256Params, c.Params())

	pt := mustHex(t, goldenPlaintextHex)
	dst := make([]byte, BlockSize)
	c.Encrypt(dst, pt)
	require.Equal(t, goldenCiphertextHex, hex.EncodeToString(dst))

	// In-place decryption.
	c.Decrypt(dst, dst)
	require.Equal(t, pt, dst)

	ct, err := c.EncryptBlock(pt)
	require.NoError(t, err)
	pt2, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	require.Equal(t, pt, pt2)

	_, err = c.EncryptBlock(pt[:31])
	require.ErrorIs(t, err, ErrInvalidLength)

	sk := c.ScheduledKey()
	sk.K1[0] ^= 1
	require.NotEqual(t, sk, c.ScheduledKey(), "ScheduledKey must return a copy")
}

func TestCipherPanicsOnShortBuffers(t *testing.T) {
	c, err := NewCipher(mustHex(t, goldenKeyHex))
	require.NoError(t, err)

	assert.Panics(t, func() { c.Encrypt(make([]byte, 32), make([]byte, 31)) })
	assert.Panics(t, func() { c.Encrypt(make([]byte, 31), make([]byte, 32)) })
	assert.Panics(t, func() { c.Decrypt(make([]byte, 32), make([]byte, 8)) })
}

func TestNewCipherWithParams(t *testing.T) {
	key := mustHex(t, goldenKeyHex)
	params := core.XR30256Params
	params.Rounds = 2
	params.Generations = 16

	c, err := NewCipherWithParams(params, key)
	require.NoError(t, err)
	pt := mustHex(t, goldenPlaintextHex)
	ct, err := c.EncryptBlock(pt)
	require.NoError(t, err)
	require.NotEqual(t, goldenCiphertextHex, hex.EncodeToString(ct))
	back, err := c.DecryptBlock(ct)
	require.NoError(t, err)
	require.Equal(t, pt, back)

	params.Rounds = 0
	_, err = NewCipherWithParams(params, key)
	require.Error(t, err)
}

func TestWeakKeyAccepted(t *testing.T) {
	sk, err := KeySchedule(make([]byte, KeySize))
	require.NoError(t, err)
	pt := mustHex(t, goldenPlaintextHex)
	ct, err := EncryptBlock(sk, pt)
	require.NoError(t, err)
	// Every round function is zero, so only the half swap remains.
	require.Equal(t, pt[16:], ct[:16])
	require.Equal(t, pt[:16], ct[16:])
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(mustHex(f, goldenKeyHex), mustHex(f, goldenPlaintextHex))
	f.Add(make([]byte, 32), make([]byte, 32))
	f.Add(bytes.Repeat([]byte{0xff}, 32), bytes.Repeat([]byte{0xaa}, 32))

	f.Fuzz(func(t *testing.T, key, pt []byte) {
		sk, err := KeySchedule(key)
		if len(key) != KeySize {
			if !errors.Is(err, ErrInvalidLength) {
				t.Fatalf("KeySchedule(%d bytes) = %v", len(key), err)
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		ct, err := EncryptBlock(sk, pt)
		if len(pt) != BlockSize {
			if !errors.Is(err, ErrInvalidLength) || ct != nil {
				t.Fatalf("EncryptBlock(%d bytes) = %x, %v", len(pt), ct, err)
			}
			return
		}
		back, err := DecryptBlock(sk, ct)
		if err != nil || !bytes.Equal(back, pt) {
			t.Fatalf("round trip failed: %x -> %x -> %x", pt, ct, back)
		}
	})
}

func BenchmarkEncryptBlock(b *testing.B) {
	c, _ := NewCipher(mustHex(b, goldenKeyHex))
	buf := mustHex(b, goldenPlaintextHex)
	b.SetBytes(BlockSize)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Encrypt(buf, buf)
	}
}

func BenchmarkKeySchedule(b *testing.B) {
	key := mustHex(b, goldenKeyHex)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = KeySchedule(key)
	}
}
