// Package identifier generates the random tokens used as obfuscated names
// inside a container.
package identifier

import (
	"crypto/rand"
	"fmt"
	"sync"
)

// Alphabet is the set of characters a token is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the token length used for every name in a container.
const DefaultLength = 20

// maxUnbiased is the largest multiple of len(Alphabet) that fits in a byte.
// Bytes at or above it are rejected so every character is equally likely.
const maxUnbiased = 256 - 256%len(Alphabet)

// Generator produces alphanumeric tokens of a given length.
type Generator interface {
	Generate(length int) string
}

// Random draws tokens from crypto/rand.
type Random struct{}

// Generate returns a token of length characters drawn uniformly from Alphabet.
// It panics if the operating system's random source fails.
func (Random) Generate(length int) string {
	if length <= 0 {
		return ""
	}

	out := make([]byte, 0, length)
	buf := make([]byte, length*2)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("identifier: reading random source: %v", err))
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}

// Sequence hands out a fixed list of tokens in order, starting over when
// the list is exhausted. The requested length is ignored.
type Sequence struct {
	mu     sync.Mutex
	tokens []string
	next   int
}

// NewSequence returns a Sequence over tokens. At least one token is required.
func NewSequence(tokens ...string) *Sequence {
	if len(tokens) == 0 {
		panic("identifier: NewSequence needs at least one token")
	}
	return &Sequence{tokens: tokens}
}

// Generate returns the next token.
func (s *Sequence) Generate(int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.tokens[s.next%len(s.tokens)]
	s.next++
	return token
}

// IsToken reports whether s is a non-empty string made only of Alphabet
// characters.
func IsToken(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
