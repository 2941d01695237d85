package types

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyAgreement is returned when the peer public key is malformed.
	ErrKeyAgreement = errors.New("key agreement failed")

	// ErrMissingSecret is returned when an operation needs a shared key
	// that is absent or already destroyed.
	ErrMissingSecret = errors.New("missing shared secret")

	// ErrAuthentication is returned when a ciphertext fails its integrity check.
	ErrAuthentication = errors.New("payload authentication failed")

	// ErrPayloadFormat is returned for undecodable text or non-JSON plaintext.
	ErrPayloadFormat = errors.New("malformed payload")

	// ErrDecode is returned for malformed base58 text. It matches ErrPayloadFormat.
	ErrDecode = fmt.Errorf("%w: invalid base58 text", ErrPayloadFormat)

	// ErrNotConnected is returned by request builders invoked without a session.
	ErrNotConnected = errors.New("not connected to a wallet")

	// ErrInvalidRoutes is returned for empty or colliding redirect targets.
	ErrInvalidRoutes = errors.New("invalid redirect routes")
)

// WalletError carries a failure reported by the wallet through errorCode
// and errorMessage.
type WalletError struct {
	Code    string
	Message string
}

func (e *WalletError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("wallet error %s", e.Code)
	}
	return fmt.Sprintf("wallet error %s: %s", e.Code, e.Message)
}
