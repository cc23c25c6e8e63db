// Package random provides seed generation helpers for deterministic runs.
//
// NewSeed uses crypto/rand to generate a high-entropy root seed; Derive
// stretches one root seed into independent, reproducible sub-streams so each
// turn (or restaurant) can own its own generator without the streams
// overlapping.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Derive returns a sub-seed for the given root seed and labels. The same
// root and labels always yield the same sub-seed; distinct labels yield
// independent values.
func Derive(root int64, labels ...string) int64 {
	h := fnv.New64a()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(root))
	h.Write(b[:])
	for _, label := range labels {
		h.Write([]byte(label))
		h.Write([]byte{0})
	}
	return int64(h.Sum64())
}
