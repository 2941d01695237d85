package store

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
)

// KeyPairKey is the storage key the dapp key pair lives under.
const KeyPairKey = "dappKeyPair"

// keyPairRecord is the stored shape: each key as a JSON array of 32 byte
// values, e.g. {"publicKey":[12,200,...],"secretKey":[...]}.
type keyPairRecord struct {
	PublicKey []int `json:"publicKey"`
	SecretKey []int `json:"secretKey"`
}

// KeyPairStore persists the dapp key pair in a domain.Storage.
type KeyPairStore struct {
	backend domain.Storage
}

// NewKeyPairStore returns a KeyPairStore over backend.
func NewKeyPairStore(backend domain.Storage) *KeyPairStore {
	return &KeyPairStore{backend: backend}
}

// SaveKeyPair replaces the stored key pair.
func (s *KeyPairStore) SaveKeyPair(kp domain.DappKeyPair) error {
	rec := keyPairRecord{
		PublicKey: toInts(kp.PublicKey[:]),
		SecretKey: toInts(kp.SecretKey[:]),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encode key pair")
	}
	return s.backend.Put(KeyPairKey, b)
}

// LoadKeyPair reads the stored key pair. A record that is present but
// malformed, or whose public half does not match its secret half, is an
// error matching domain.ErrPayloadFormat.
func (s *KeyPairStore) LoadKeyPair() (domain.DappKeyPair, bool, error) {
	var kp domain.DappKeyPair
	b, ok, err := s.backend.Get(KeyPairKey)
	if err != nil || !ok {
		return kp, false, err
	}

	var rec keyPairRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return kp, false, errors.Wrapf(domain.ErrPayloadFormat, "key pair record: %v", err)
	}
	if err := fromInts(kp.PublicKey[:], rec.PublicKey); err != nil {
		return kp, false, errors.Wrap(err, "publicKey")
	}
	if err := fromInts(kp.SecretKey[:], rec.SecretKey); err != nil {
		return kp, false, errors.Wrap(err, "secretKey")
	}

	derived, err := crypto.PublicFromPrivate(kp.SecretKey)
	if err != nil || derived != kp.PublicKey {
		return domain.DappKeyPair{}, false, errors.Wrap(domain.ErrPayloadFormat, "publicKey does not match secretKey")
	}
	return kp, true, nil
}

func toInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

func fromInts(dst []byte, src []int) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%w: want %d values, got %d", domain.ErrPayloadFormat, len(dst), len(src))
	}
	for i, v := range src {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: value %d at %d is not a byte", domain.ErrPayloadFormat, v, i)
		}
		dst[i] = byte(v)
	}
	return nil
}

// Compile-time assertion that KeyPairStore implements domain.KeyPairStore.
var _ domain.KeyPairStore = (*KeyPairStore)(nil)
