// Package rng turns a session seed into independent deterministic random streams.
//
// Every consumer (terrain octaves, marker placement, gift variants) derives its own
// stream from the session seed with a label, so adding a consumer never shifts the
// numbers another consumer sees.
package rng

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"unicode"
)

// ErrMalformedSeed is returned for seeds that cannot identify a session.
var ErrMalformedSeed = errors.New("malformed session seed")

// MaxSeedLength bounds the accepted seed text.
const MaxSeedLength = 256

// Seed is a validated session seed.
type Seed struct {
	text  string
	value uint64
}

// ParseSeed validates a session seed (typically a UUID) and hashes it.
// Surrounding whitespace is ignored; empty seeds and seeds containing control
// characters are rejected.
func ParseSeed(s string) (Seed, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Seed{}, fmt.Errorf("%w: empty", ErrMalformedSeed)
	}
	if len(s) > MaxSeedLength {
		return Seed{}, fmt.Errorf("%w: longer than %d bytes", ErrMalformedSeed, MaxSeedLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return Seed{}, fmt.Errorf("%w: contains control or invalid characters", ErrMalformedSeed)
		}
	}
	return Seed{text: s, value: hashString(s)}, nil
}

// MustParseSeed is like ParseSeed but panics on error. Intended for tests and constants.
func MustParseSeed(s string) Seed {
	seed, err := ParseSeed(s)
	if err != nil {
		panic(err)
	}
	return seed
}

// String returns the seed text.
func (s Seed) String() string {
	return s.text
}

// Value returns the 64-bit hash of the seed.
func (s Seed) Value() uint64 {
	return s.value
}

// IsZero reports whether the seed was never parsed.
func (s Seed) IsZero() bool {
	return s.text == ""
}

// Derive returns a new stream for the given label.
func (s Seed) Derive(label string) *RNG {
	h := mix64(s.value ^ hashString(label))
	return &RNG{r: rand.New(rand.NewPCG(h, mix64(h^0x9e3779b97f4a7c15)))}
}

// DeriveInt64 returns a single 63-bit value for the label, for libraries that
// take a plain int64 seed.
func (s Seed) DeriveInt64(label string) int64 {
	return int64(mix64(s.value^hashString(label)) >> 1)
}

// RNG is a deterministic random stream.
type RNG struct {
	r *rand.Rand
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// IntN returns a value in [0, n). n <= 0 returns 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Int64 returns a non-negative 63-bit value.
func (r *RNG) Int64() int64 {
	return r.r.Int64()
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// mix64 is the splitmix64 finalizer; it spreads nearby inputs across the whole range.
func mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
