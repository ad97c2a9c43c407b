// Package gameid generates sortable identifiers for games: a UUIDv7 written
// as 26 characters of Crockford base32.
package gameid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"strings"
	"sync"

	"github.com/coder/quartz"
)

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID
const Length = 26

// Generator creates IDs from a clock and a random source
type Generator struct {
	clock quartz.Clock

	mu  sync.Mutex
	rng *mrand.Rand
}

// NewGenerator creates a generator. A nil rng uses crypto/rand.
func NewGenerator(clock quartz.Clock, rng *mrand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns an ID using the real clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new ID. IDs from later milliseconds sort after earlier ones.
func (g *Generator) Generate() string {
	var uuid [16]byte

	// 48-bit millisecond timestamp
	ms := uint64(g.clock.Now().UnixMilli())
	binary.BigEndian.PutUint16(uuid[0:2], uint16(ms>>32))
	binary.BigEndian.PutUint32(uuid[2:6], uint32(ms))

	g.fill(uuid[6:])

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return encode(uuid)
}

func (g *Generator) fill(b []byte) {
	if g.rng == nil {
		if _, err := rand.Read(b); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range b {
		b[i] = byte(g.rng.UintN(256))
	}
}

// encode writes the 128 bits as 26 base32 digits; the leading two bits are
// always zero.
func encode(uuid [16]byte) string {
	hi := binary.BigEndian.Uint64(uuid[:8])
	lo := binary.BigEndian.Uint64(uuid[8:])

	out := make([]byte, Length)
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
