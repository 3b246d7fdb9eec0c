// Package hasher turns plaintext passwords into fixed-length hex digests.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// Algorithm names a digest function.
type Algorithm string

const (
	// SHA256 is the default; digests match rows written by earlier releases.
	SHA256 Algorithm = "sha256"
	// SHA3 is SHA3-256 from the Keccak family.
	SHA3 Algorithm = "sha3-256"
)

// Hasher computes deterministic password digests.
type Hasher struct {
	alg     Algorithm
	newHash func() hash.Hash
}

// New returns a Hasher for alg. An empty name selects SHA256.
func New(alg Algorithm) (*Hasher, error) {
	switch alg {
	case "", SHA256:
		return &Hasher{alg: SHA256, newHash: sha256.New}, nil
	case SHA3:
		return &Hasher{alg: SHA3, newHash: sha3.New256}, nil
	}
	return nil, fmt.Errorf("hasher: unknown algorithm %q", alg)
}

// Default returns the SHA256 hasher.
func Default() *Hasher {
	h, _ := New(SHA256)
	return h
}

// Algorithm returns the digest function in use.
func (h *Hasher) Algorithm() Algorithm {
	if h == nil {
		return ""
	}
	return h.alg
}

// Hash returns the lowercase hex digest of plaintext. It never fails: a
// Hasher without a digest function yields "".
func (h *Hasher) Hash(plaintext string) (digest string) {
	if h == nil || h.newHash == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			digest = ""
		}
	}()
	d := h.newHash()
	d.Write([]byte(plaintext))
	return hex.EncodeToString(d.Sum(nil))
}
