package channel

import (
	"encoding/json"
	"fmt"

	"walletlink/internal/codec"
	"walletlink/internal/crypto"
	"walletlink/internal/domain"
)

// DeriveSharedKey computes the box key shared with the wallet.
//
// It is deterministic for a given key pair and matches the wallet's own
// derivation from (wallet secret, dapp public).
func DeriveSharedKey(dappSecret domain.X25519Private, walletPublic []byte) (*domain.SharedKey, error) {
	return crypto.PrecomputeBox(dappSecret, walletPublic)
}

// Encrypt serialises payload and seals it under key with a fresh nonce.
func Encrypt(payload any, key *domain.SharedKey) (domain.Nonce, []byte, error) {
	// Fail before doing any work when there is nothing to encrypt with.
	if !key.Usable() {
		return domain.Nonce{}, nil, domain.ErrMissingSecret
	}
	plaintext, err := codec.MarshalPayload(payload)
	if err != nil {
		return domain.Nonce{}, nil, err
	}
	nonce, err := codec.NewNonce()
	if err != nil {
		return domain.Nonce{}, nil, err
	}
	ct, err := crypto.SealBox(key, nonce, plaintext)
	if err != nil {
		return domain.Nonce{}, nil, err
	}
	return nonce, ct, nil
}

// Decrypt authenticates and opens ciphertext, returning the JSON plaintext.
func Decrypt(ciphertext, nonce []byte, key *domain.SharedKey) (json.RawMessage, error) {
	if !key.Usable() {
		return nil, domain.ErrMissingSecret
	}
	n, ok := codec.NonceFromBytes(nonce)
	if !ok {
		return nil, fmt.Errorf("%w: nonce is %d bytes", domain.ErrAuthentication, len(nonce))
	}
	pt, err := crypto.OpenBox(key, n, ciphertext)
	if err != nil {
		return nil, err
	}
	if !json.Valid(pt) {
		return nil, fmt.Errorf("%w: plaintext is not JSON", domain.ErrPayloadFormat)
	}
	return json.RawMessage(pt), nil
}

// Open decrypts ciphertext and unmarshals the JSON plaintext into v.
func Open(ciphertext, nonce []byte, key *domain.SharedKey, v any) error {
	raw, err := Decrypt(ciphertext, nonce, key)
	if err != nil {
		return err
	}
	return codec.UnmarshalPayload(raw, v)
}

// EncryptEncoded is Encrypt with base58 output, ready for a deeplink.
func EncryptEncoded(payload any, key *domain.SharedKey) (nonce, ciphertext string, err error) {
	n, ct, err := Encrypt(payload, key)
	if err != nil {
		return "", "", err
	}
	return codec.EncodeBase58(n.Slice()), codec.EncodeBase58(ct), nil
}

// OpenEncoded is Open over base58 text as it arrives in a redirect.
// Undecodable text fails with domain.ErrPayloadFormat.
func OpenEncoded(data, nonce string, key *domain.SharedKey, v any) error {
	if !key.Usable() {
		return domain.ErrMissingSecret
	}
	ct, err := codec.DecodeBase58(data)
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	n, err := codec.DecodeBase58(nonce)
	if err != nil {
		return fmt.Errorf("nonce: %w", err)
	}
	return Open(ct, n, key, v)
}
