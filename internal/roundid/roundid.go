// Package roundid names rounds with short, time-sortable identifiers so log
// lines from one round can be grepped together.
package roundid

import (
	"fmt"
	"strings"
	"time"
)

// Length is the number of characters in an ID.
const Length = 26

// Crockford's base32
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random half of an ID.
type RandSource interface {
	Uint64() uint64
}

// Generator creates UUIDv7-shaped IDs from a shared random source.
type Generator struct {
	rng RandSource
	now func() time.Time
}

// NewGenerator creates a generator drawing randomness from rng.
func NewGenerator(rng RandSource) *Generator {
	return &Generator{rng: rng, now: time.Now}
}

// Next returns a new ID stamped with the current time.
func (g *Generator) Next() string {
	return g.At(g.now())
}

// At returns a new ID stamped with t. IDs for later times sort after IDs for
// earlier ones.
func (g *Generator) At(t time.Time) string {
	var id [16]byte

	ms := uint64(t.UnixMilli())
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}

	hi, lo := g.rng.Uint64(), g.rng.Uint64()
	for i := range 2 {
		id[6+i] = byte(hi >> (8 * i))
	}
	for i := range 8 {
		id[8+i] = byte(lo >> (8 * i))
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode writes the 128 bits as 26 base32 digits, left-padded with two zero
// bits so the first digit is always 0-7.
func encode(id [16]byte) string {
	bit := func(k int) byte {
		if k < 0 {
			return 0
		}
		return (id[k/8] >> (7 - k%8)) & 1
	}

	var sb strings.Builder
	sb.Grow(Length)
	for i := range Length {
		var v byte
		for k := i*5 - 2; k < i*5+3; k++ {
			v = v<<1 | bit(k)
		}
		sb.WriteByte(alphabet[v])
	}
	return sb.String()
}

// Validate checks if an ID is well formed
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
