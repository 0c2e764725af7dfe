// Package randutil builds the single pseudo-random source a process shares
// for shuffling decks, seating players and naming bots.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromEntropy returns a generator seeded once from the operating system's
// entropy source, along with the seed so a session can be replayed.
func NewFromEntropy() (*rand.Rand, int64) {
	seed := EntropySeed()
	return New(seed), seed
}

// EntropySeed reads a seed from crypto/rand, falling back to the runtime's
// own random state if the entropy source is unavailable.
func EntropySeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return rand.Int64()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// Derive returns a child generator for the n-th independent stream of seed.
func Derive(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) ^ mix(uint64(n)+goldenRatio64))))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
