package codec

import (
	"crypto/rand"

	"walletlink/internal/domain"
)

// NonceSize is the XSalsa20 nonce length.
const NonceSize = len(domain.Nonce{})

// NewNonce returns a fresh random nonce.
func NewNonce() (n domain.Nonce, err error) {
	_, err = rand.Read(n[:])
	return n, err
}

// NonceFromBytes copies b into a Nonce. ok is false when b has the wrong length.
func NonceFromBytes(b []byte) (n domain.Nonce, ok bool) {
	if len(b) != NonceSize {
		return n, false
	}
	copy(n[:], b)
	return n, true
}
