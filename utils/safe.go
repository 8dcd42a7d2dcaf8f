// Package utils provides utility functions for XR30256.
// This file contains safe arithmetic and allocation helpers to prevent
// integer overflow and denial-of-service via large allocations.

package utils

import (
	"errors"
	"math"
)

// Maximum allowed sizes to prevent DoS via large allocations.
const (
	// MaxBatchBlocks is the default maximum number of blocks in one batch call.
	MaxBatchBlocks = 1 << 20 // 32MB of data

	// MaxKeyFileSize is the maximum size of a key file accepted for parsing.
	MaxKeyFileSize = 1 << 16 // 64KB

	// MaxInputFileSize is the maximum size of a file the CLI reads into memory.
	MaxInputFileSize = 1 << 30 // 1GB
)

var (
	// ErrOverflow indicates an integer overflow occurred.
	ErrOverflow = errors.New("integer overflow")

	// ErrExceedsLimit indicates a value exceeds the allowed limit.
	ErrExceedsLimit = errors.New("value exceeds allowed limit")

	// ErrInvalidLength indicates an invalid length value.
	ErrInvalidLength = errors.New("invalid length")
)

// SafeMultiply multiplies two non-negative integers and returns an error if overflow occurs.
func SafeMultiply(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidLength
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// SafeMakeByteSlice creates a byte slice with bounds checking.
func SafeMakeByteSlice(count, maxAllowed int) ([]byte, error) {
	if err := CheckLength(count, maxAllowed); err != nil {
		return nil, err
	}
	return make([]byte, count), nil
}

// CheckLength validates that length is within [0, maxAllowed].
func CheckLength(length, maxAllowed int) error {
	if length < 0 {
		return ErrInvalidLength
	}
	if length > maxAllowed {
		return ErrExceedsLimit
	}
	return nil
}

// CheckPositive validates that value is > 0.
func CheckPositive(value int, name string) error {
	if value <= 0 {
		return errors.New(name + " must be positive")
	}
	return nil
}

// BlockCount returns the number of whole blocks of blockSize bytes in a
// buffer of length n. It fails with ErrInvalidLength if n is zero or not a
// multiple of blockSize.
func BlockCount(n, blockSize int) (int, error) {
	if blockSize <= 0 || n <= 0 || n%blockSize != 0 {
		return 0, ErrInvalidLength
	}
	return n / blockSize, nil
}
