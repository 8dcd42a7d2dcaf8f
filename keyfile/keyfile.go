// Package keyfile stores XR30256 master keys on disk.
//
// A key file records the variant, the 32-byte key, optional passphrase
// derivation parameters, a creation time and a SHA3-256 checksum over the
// variant and key. Files are written as JSON or CBOR; Parse accepts either.
//
// The checksum detects accidental corruption only. Key files are not
// encrypted and must be protected by file permissions.
package keyfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/argon2"

	xr30256 "github.com/BackendStack21/xr30256-go"
	"github.com/BackendStack21/xr30256-go/cipher"
	"github.com/BackendStack21/xr30256-go/utils"
)

// Format is a key file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// DomainChecksum separates key file checksums from other SHA3 uses.
const DomainChecksum = "xr30256-keyfile-v1"

// SaltSize is the size of a generated passphrase salt.
const SaltSize = 16

var (
	// ErrChecksum is returned when a key file's checksum does not match.
	ErrChecksum = errors.New("keyfile: checksum mismatch")

	// ErrFormat is returned for unknown formats or malformed files.
	ErrFormat = errors.New("keyfile: malformed key file")
)

// KDFParams are the argon2id parameters of a passphrase-derived key.
type KDFParams struct {
	Salt    []byte `json:"salt" cbor:"salt"`
	Time    uint32 `json:"time" cbor:"time"`
	Memory  uint32 `json:"memory" cbor:"memory"` // KiB
	Threads uint8  `json:"threads" cbor:"threads"`
}

// DefaultKDFParams returns the recommended argon2id cost parameters with a
// nil salt.
func DefaultKDFParams() KDFParams {
	return KDFParams{Time: 3, Memory: 64 * 1024, Threads: 4}
}

// KeyFile is a serialized master key.
type KeyFile struct {
	Variant   string     `json:"variant" cbor:"variant"`
	Key       []byte     `json:"key" cbor:"key"`
	KDF       *KDFParams `json:"kdf,omitempty" cbor:"kdf,omitempty"`
	CreatedAt string     `json:"created_at" cbor:"created_at"`
	Checksum  []byte     `json:"checksum" cbor:"checksum"`
}

// New wraps an existing 32-byte key. The key is copied.
func New(key []byte) (*KeyFile, error) {
	if _, err := cipher.ParseKey(key); err != nil {
		return nil, err
	}
	kf := &KeyFile{
		Variant:   string(xr30256.XR30256),
		Key:       append([]byte(nil), key...),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	kf.Checksum = kf.checksum()
	return kf, nil
}

// Generate creates a key file holding a fresh random key.
func Generate() (*KeyFile, error) {
	key, err := utils.SecureRandomBytes(xr30256.KeySize)
	if err != nil {
		return nil, fmt.Errorf("keyfile: failed to generate key: %w", err)
	}
	defer utils.Zeroize(key)
	return New(key)
}

// FromPassphrase derives a key from a passphrase with argon2id. A random
// salt is generated when p.Salt is empty.
func FromPassphrase(passphrase []byte, p KDFParams) (*KeyFile, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("keyfile: empty passphrase")
	}
	if p.Time == 0 || p.Memory == 0 || p.Threads == 0 {
		return nil, errors.New("keyfile: argon2 parameters must be positive")
	}
	if len(p.Salt) == 0 {
		salt, err := utils.SecureRandomBytes(SaltSize)
		if err != nil {
			return nil, fmt.Errorf("keyfile: failed to generate salt: %w", err)
		}
		p.Salt = salt
	}

	key := argon2.IDKey(passphrase, p.Salt, p.Time, p.Memory, p.Threads, xr30256.KeySize)
	defer utils.Zeroize(key)
	kf, err := New(key)
	if err != nil {
		return nil, err
	}
	kf.KDF = &p
	return kf, nil
}

func (kf *KeyFile) checksum() []byte {
	data := make([]byte, 0, len(kf.Variant)+len(kf.Key))
	data = append(data, kf.Variant...)
	data = append(data, kf.Key...)
	return utils.HashWithDomain(DomainChecksum, data)
}

// Marshal encodes the key file in the given format.
func (kf *KeyFile) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(kf, "", "  ")
	case FormatCBOR:
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, err
		}
		return em.Marshal(kf)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrFormat, format)
	}
}

// Cipher schedules the key of the file.
func (kf *KeyFile) Cipher() (*cipher.Cipher, error) {
	return cipher.NewCipher(kf.Key)
}

// Wipe zeroes the key material held in memory.
func (kf *KeyFile) Wipe() {
	utils.Zeroize(kf.Key)
}

// Parse decodes and verifies a JSON or CBOR key file.
func Parse(data []byte) (*KeyFile, error) {
	if err := utils.CheckLength(len(data), utils.MaxKeyFileSize); err != nil {
		return nil, fmt.Errorf("keyfile: %w", err)
	}

	kf := new(KeyFile)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, kf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	} else {
		dm, err := cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
		if err != nil {
			return nil, err
		}
		if err := dm.Unmarshal(data, kf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	}

	if kf.Variant != string(xr30256.XR30256) {
		return nil, fmt.Errorf("%w: unsupported variant %q", ErrFormat, kf.Variant)
	}
	if _, err := cipher.ParseKey(kf.Key); err != nil {
		return nil, err
	}
	if !utils.ConstantTimeEqual(kf.Checksum, kf.checksum()) {
		return nil, ErrChecksum
	}
	return kf, nil
}

// Load reads and parses a key file from disk.
func Load(path string) (*KeyFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("keyfile: failed to stat file: %w", err)
	}
	if info.Size() > utils.MaxKeyFileSize {
		return nil, fmt.Errorf("keyfile: file too large: %d > %d bytes", info.Size(), utils.MaxKeyFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
