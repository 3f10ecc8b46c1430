// Package shortid generates short prefixed record identifiers.
//
// Identifiers look like "p3k9x0q2": a caller-supplied prefix followed by
// seven base-36 characters drawn from crypto/rand. They are not
// cryptographically meaningful; the random tail only needs to make
// collisions negligible at clinic-registry data sizes.
package shortid

import (
	"crypto/rand"
	"math/big"
)

const (
	alphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	tailLength = 7
)

// New returns a fresh identifier with the given prefix.
func New(prefix string) string {
	buf := make([]byte, 0, len(prefix)+tailLength)
	buf = append(buf, prefix...)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < tailLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform entropy source is broken.
			panic(err)
		}
		buf = append(buf, alphabet[n.Int64()])
	}
	return string(buf)
}
