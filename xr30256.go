package xr30256

// Version of the XR30256 Go implementation.
const Version = "0.3.0"

// API summary:
//
// Block cipher:
//   - cipher.NewCipher(key) - Schedule a 32-byte key into a crypto/cipher.Block
//   - cipher.KeySchedule(key) - Derive the four subkeys of a 32-byte key
//   - cipher.EncryptBlock(sk, plaintext) - Encrypt one 32-byte block
//   - cipher.DecryptBlock(sk, ciphertext) - Decrypt one 32-byte block
//
// Cellular automaton:
//   - ca.Evolve(register, table, generations) - Run an elementary CA
//   - ca.Rule30 - The rule table used by the cipher
//
// Key schedule:
//   - keyschedule.Derive(params, key) - Typed subkey derivation
//   - keyschedule.Analyze(sk) - Weak-key diagnostics
//
// Bulk processing:
//   - batch.New(c).EncryptBlocks(ctx, data) - Encrypt many blocks in parallel
//
// Parameters:
//   - core.GetParams(variant) - Get parameters for a variant
//   - XR30_256 - The standard 16 round, 255 generation cipher
