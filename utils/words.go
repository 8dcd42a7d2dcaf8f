package utils

import (
	"encoding/binary"
)

// LoadWords decodes len(dst) big-endian 64-bit words from src.
// src must hold at least 8*len(dst) bytes.
func LoadWords(dst []uint64, src []byte) {
	for i := range dst {
		dst[i] = binary.BigEndian.Uint64(src[8*i:])
	}
}

// StoreWords encodes src as big-endian 64-bit words into dst.
// dst must hold at least 8*len(src) bytes.
func StoreWords(dst []byte, src []uint64) {
	for i, w := range src {
		binary.BigEndian.PutUint64(dst[8*i:], w)
	}
}
