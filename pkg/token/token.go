// Package token generates the unguessable strings that grant anonymous
// read access to a shared note.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes gives 128 bits of entropy, hex encoded to 32 characters.
const tokenBytes = 16

// Generator yields cryptographically unpredictable fixed-length strings.
type Generator interface {
	Generate() (string, error)
}

type generator struct{}

func NewGenerator() Generator {
	return generator{}
}

func (generator) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
