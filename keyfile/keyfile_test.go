package keyfile

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BackendStack21/xr30256-go/cipher"
	"github.com/BackendStack21/xr30256-go/utils"
)

var goldenKey, _ = hex.DecodeString("a59535d07e192f1282734fb3084c5e05385b8a038d28e669d2bc44a82c395d8e")

// Cheap argon2 parameters for tests.
var testKDF = KDFParams{Salt: bytes.Repeat([]byte{7}, SaltSize), Time: 1, Memory: 1024, Threads: 1}

func TestNew(t *testing.T) {
	kf, err := New(goldenKey)
	require.NoError(t, err)
	assert.Equal(t, "XR30-256", kf.Variant)
	assert.Equal(t, goldenKey, kf.Key)
	assert.Len(t, kf.Checksum, 32)
	assert.NotEmpty(t, kf.CreatedAt)
	assert.Nil(t, kf.KDF)

	// The key is copied.
	kf.Key[0] ^= 0xff
	assert.Equal(t, byte(0xa5), goldenKey[0])

	_, err = New(goldenKey[:31])
	assert.ErrorIs(t, err, cipher.ErrInvalidLength)
}

func TestGenerate(t *testing.T) {
	a, err := Generate()
	require.NoError(t, err)
	b, err := Generate()
	require.NoError(t, err)
	assert.Len(t, a.Key, 32)
	assert.NotEqual(t, a.Key, b.Key)
	assert.NoError(t, utils.ValidateSeedEntropy(a.Key))
}

func TestFromPassphrase(t *testing.T) {
	a, err := FromPassphrase([]byte("correct horse"), testKDF)
	require.NoError(t, err)
	b, err := FromPassphrase([]byte("correct horse"), testKDF)
	require.NoError(t, err)
	assert.Equal(t, a.Key, b.Key, "same passphrase and salt must give the same key")
	require.NotNil(t, a.KDF)
	assert.Equal(t, testKDF.Salt, a.KDF.Salt)

	c, err := FromPassphrase([]byte("correct horse!"), testKDF)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, c.Key)

	p := testKDF
	p.Salt = nil
	d, err := FromPassphrase([]byte("correct horse"), p)
	require.NoError(t, err)
	assert.Len(t, d.KDF.Salt, SaltSize)
	assert.NotEqual(t, a.Key, d.Key)

	_, err = FromPassphrase(nil, testKDF)
	assert.Error(t, err)
	p = testKDF
	p.Time = 0
	_, err = FromPassphrase([]byte("x"), p)
	assert.Error(t, err)
}

func TestMarshalParse(t *testing.T) {
	kf, err := FromPassphrase([]byte("pass"), testKDF)
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatCBOR} {
		data, err := kf.Marshal(format)
		require.NoError(t, err, format)

		got, err := Parse(data)
		require.NoError(t, err, format)
		assert.Equal(t, kf, got, format)
	}

	_, err = kf.Marshal("yaml")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestJSONLayout(t *testing.T) {
	kf, err := New(goldenKey)
	require.NoError(t, err)
	data, err := kf.Marshal(FormatJSON)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "XR30-256", fields["variant"])
	assert.Equal(t, "pZU10H4ZLxKCc0+zCExeBThbigONKOZp0rxEqCw5XY4=", fields["key"])
	assert.Contains(t, fields, "created_at")
	assert.Contains(t, fields, "checksum")
	assert.NotContains(t, fields, "kdf")
}

func TestParseRejects(t *testing.T) {
	kf, err := New(goldenKey)
	require.NoError(t, err)

	corrupt := *kf
	corrupt.Key = append([]byte(nil), kf.Key...)
	corrupt.Key[5] ^= 1
	data, err := json.Marshal(&corrupt)
	require.NoError(t, err)
	_, err = Parse(data)
	assert.ErrorIs(t, err, ErrChecksum)

	variant := *kf
	variant.Variant = "XR30-512"
	data, _ = json.Marshal(&variant)
	_, err = Parse(data)
	assert.ErrorIs(t, err, ErrFormat)

	short := *kf
	short.Key = kf.Key[:16]
	data, _ = json.Marshal(&short)
	_, err = Parse(data)
	assert.ErrorIs(t, err, cipher.ErrInvalidLength)

	_, err = Parse([]byte("{not json"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Parse([]byte{0xff, 0x00})
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Parse(make([]byte, utils.MaxKeyFileSize+1))
	assert.ErrorIs(t, err, utils.ErrExceedsLimit)
}

func TestLoad(t *testing.T) {
	kf, err := New(goldenKey)
	require.NoError(t, err)
	data, err := kf.Marshal(FormatCBOR)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.cbor")
	require.NoError(t, os.WriteFile(path, data, 0600))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, goldenKey, got.Key)

	c, err := got.Cipher()
	require.NoError(t, err)
	pt, _ := hex.DecodeString("0101010101010101020202020202020203030303030303030404040404040404")
	ct, err := c.EncryptBlock(pt)
	require.NoError(t, err)
	assert.Equal(t, "ffe65120e48fc4f68858c7277abefe8fafb3a61728df176e81075d7c09517a42", hex.EncodeToString(ct))

	got.Wipe()
	assert.Equal(t, make([]byte, 32), got.Key)

	_, err = Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
