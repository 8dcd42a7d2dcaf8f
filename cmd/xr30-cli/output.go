package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BackendStack21/xr30256-go/utils"
)

// writeOutput writes data to filename with owner-only permissions, or to w
// when filename is empty.
func writeOutput(w io.Writer, data []byte, filename string) error {
	if filename == "" {
		_, err := w.Write(data)
		return err
	}

	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("error creating output file: %v", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("error writing output file: %v", err)
	}
	// Enforce permissions even if the file already existed.
	if err := os.Chmod(filename, 0600); err != nil {
		return fmt.Errorf("error setting file permissions: %v", err)
	}
	return nil
}

// readInput reads a whole file after checking its size.
func readInput(filename string) ([]byte, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.Size() > utils.MaxInputFileSize {
		return nil, fmt.Errorf("input file too large: %d > %d bytes", info.Size(), utils.MaxInputFileSize)
	}
	return os.ReadFile(filename)
}

// formatWords renders words as space separated 16-digit hex.
func formatWords(words []uint64) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%016x", w)
	}
	return strings.Join(parts, " ")
}
