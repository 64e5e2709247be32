// Package handid generates hand identifiers: a UUIDv7 written as 26
// characters of Crockford base32, so identifiers sort by creation time.
package handid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	length   = 26
)

// New returns a fresh hand ID
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when the system random source does
		id = uuid.New()
	}
	return Encode(id)
}

// Encode writes the 128 bits of id as base32, most significant first. The
// encoding carries two leading zero bits, so the first character is 0-7.
func Encode(id uuid.UUID) string {
	var out [length]byte
	for i := range out {
		var v byte
		for b := range 5 {
			pos := i*5 + b - 2
			v <<= 1
			if pos >= 0 {
				v |= (id[pos/8] >> (7 - pos%8)) & 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate checks id could have come from Encode
func Validate(id string) error {
	if len(id) != length {
		return fmt.Errorf("hand ID must be exactly %d characters, got %d", length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
