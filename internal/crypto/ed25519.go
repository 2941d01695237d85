package crypto

import (
	"crypto/ed25519"

	"filippo.io/edwards25519"

	"walletlink/internal/domain"
)

// VerifyEd25519 verifies sig over msg with pub.
func VerifyEd25519(pub domain.Ed25519Public, msg, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub[:]), msg, sig)
}

// IsOnCurve reports whether b decodes to a valid edwards25519 point, i.e.
// could be an ed25519 account key.
func IsOnCurve(b []byte) bool {
	if len(b) != ed25519.PublicKeySize {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
