package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"walletlink/internal/domain"
)

// EncodeBase58 returns the base58 text form of b.
func EncodeBase58(b []byte) string { return base58.Encode(b) }

// DecodeBase58 parses base58 text. Empty or malformed text fails with
// domain.ErrDecode.
func DecodeBase58(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", domain.ErrDecode)
	}
	// base58.Decode signals a bad character by returning an empty slice.
	b := base58.Decode(s)
	if len(b) == 0 {
		return nil, domain.ErrDecode
	}
	return b, nil
}

// DecodeBase58Fixed parses base58 text that must decode to exactly n bytes.
func DecodeBase58Fixed(s string, n int) ([]byte, error) {
	b, err := DecodeBase58(s)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", domain.ErrDecode, n, len(b))
	}
	return b, nil
}
