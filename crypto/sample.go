package crypto

import (
	"crypto/rand"
	"encoding/binary"
)

// GenerateSampleSeed returns a fresh random 32-bit seed and its commitment
// hash. It exists for fixture generation (demo sessions, tests) — the core
// verifier never calls it, since verification always starts from an
// already-revealed seed per spec.
func GenerateSampleSeed() (seed uint32, commitHash string, err error) {
	var buf [4]byte
	if _, err = rand.Read(buf[:]); err != nil {
		return 0, "", err
	}
	seed = binary.BigEndian.Uint32(buf[:])
	return seed, HashSeed(seed), nil
}
