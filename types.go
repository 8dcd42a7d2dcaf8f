// Package xr30256 implements XR30256, an experimental 256-bit block cipher
// built from a rule 30 cellular automaton.
//
// The cipher is a 16 round generalized Feistel network whose round function
// evolves a 256-bit circular register through rule 30. Keys, plaintexts and
// ciphertexts are all 256 bits.
//
// WARNING: XR30256 is a research curiosity. It has known weak-key classes and
// has NOT been analysed by anyone. DO NOT use it to protect real data.
package xr30256

// Variant names a parameter set of the cipher.
type Variant string

const (
	// XR30256 is the standard cipher: rule 30, 16 rounds, 255 generations.
	XR30256 Variant = "XR30-256"
	// Alias with underscore for convenience
	XR30_256 Variant = XR30256
)

// Sizes in bytes of the fixed-width values handled by the cipher.
const (
	RegisterSize = 32
	KeySize      = 32
	BlockSize    = 32
	HalfSize     = 16

	// RegisterBits is the width of the CA register.
	RegisterBits = 256
	// Limbs is the number of 64-bit words in a register.
	Limbs = 4
)

// =============================================================================
// Parameter Types
// =============================================================================

// Params is the complete configuration of a cipher variant.
type Params struct {
	Variant       Variant `json:"variant"`
	Rule          uint8   `json:"rule"`            // Wolfram rule number of the CA
	Rounds        int     `json:"rounds"`          // Outer Feistel rounds
	StepsPerRound int     `json:"steps_per_round"` // Half updates per round, one per subkey
	Generations   int     `json:"generations"`     // CA generations per evolution
}

// =============================================================================
// CA Types
// =============================================================================

// Register is a 256-bit circular bit register held as four 64-bit limbs.
//
// Bit position 0 is the most significant bit of limb 0 and position 255 is
// the least significant bit of limb 3. Positions wrap modulo 256.
type Register [Limbs]uint64

// RuleTable maps a 3-cell neighbourhood value (left<<2 | center<<1 | right)
// to the next state of the center cell.
type RuleTable [8]uint8

// =============================================================================
// Cipher Types
// =============================================================================

// Key is a 256-bit master key as four 64-bit words k0..k3.
type Key [4]uint64

// Half is one 128-bit half of a block.
type Half [2]uint64

// Block is a 256-bit plaintext or ciphertext block.
// Limbs 0 and 1 form the left half, limbs 2 and 3 the right half.
type Block [4]uint64

// Left returns the left half of the block.
func (b Block) Left() Half { return Half{b[0], b[1]} }

// Right returns the right half of the block.
func (b Block) Right() Half { return Half{b[2], b[3]} }

// JoinHalves assembles a block from its two halves.
func JoinHalves(left, right Half) Block {
	return Block{left[0], left[1], right[0], right[1]}
}

// ScheduledKey holds the four subkeys derived from a master key.
// It is immutable once derived and safe to share between goroutines.
type ScheduledKey struct {
	K1, K2, K3, K4 Register
}

// Subkeys returns the subkeys in scheduling order.
func (sk *ScheduledKey) Subkeys() [4]Register {
	return [4]Register{sk.K1, sk.K2, sk.K3, sk.K4}
}

// =============================================================================
// Analysis Types
// =============================================================================

// KeyAnalysis reports the diversity of a scheduled key.
// Keys flagged Weak are still accepted by the cipher.
type KeyAnalysis struct {
	Weights       [4]int // Population count of each subkey
	MinDistance   int    // Smallest pairwise Hamming distance between subkeys
	ZeroSubkeys   int    // Number of all-zero subkeys
	DuplicatePair bool   // Two subkeys are identical
	Weak          bool
}
