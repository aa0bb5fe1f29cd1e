package ephemeralmail

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// randomNameLength is the length of generated local names.
const randomNameLength = 8

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandSource is the source of randomness for name, domain and provider
// selection. *rand.Rand from math/rand/v2 satisfies it, which lets tests
// inject a seeded generator.
type RandSource interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// globalRand uses the top-level math/rand/v2 functions, which are safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// lockedRand serializes access to a RandSource that is not safe for
// concurrent use, such as *rand.Rand.
type lockedRand struct {
	mu  sync.Mutex
	src RandSource
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

func orGlobalRand(r RandSource) RandSource {
	if r == nil {
		return globalRand{}
	}
	return r
}

// RandomName returns a random alphanumeric local name, lowercased.
// A nil source uses the global generator.
func RandomName(r RandSource) string {
	r = orGlobalRand(r)
	var b strings.Builder
	b.Grow(randomNameLength)
	for range randomNameLength {
		b.WriteByte(alphanumeric[r.IntN(len(alphanumeric))])
	}
	return strings.ToLower(b.String())
}
