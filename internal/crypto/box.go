package crypto

import (
	"fmt"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"walletlink/internal/domain"
	"walletlink/internal/util/memzero"
)

// Overhead is the number of bytes a sealed box adds to its plaintext.
const Overhead = box.Overhead

// PrecomputeBox derives the NaCl box key shared between priv and peer,
// i.e. HSalsa20 over the X25519 output.
//
// peer must be 32 bytes and must not be a low-order point; both failures
// are reported as domain.ErrKeyAgreement.
func PrecomputeBox(priv domain.X25519Private, peer []byte) (*domain.SharedKey, error) {
	if len(peer) != curve25519.PointSize {
		return nil, fmt.Errorf("%w: peer key is %d bytes", domain.ErrKeyAgreement, len(peer))
	}
	// X25519 rejects an all-zero output, which is what low-order points produce.
	dh, err := curve25519.X25519(priv.Slice(), peer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKeyAgreement, err)
	}
	memzero.Zero(dh)

	var peerKey, shared [32]byte
	copy(peerKey[:], peer)
	sk := [32]byte(priv)
	box.Precompute(&shared, &peerKey, &sk)
	memzero.Zero(sk[:])

	k := domain.NewSharedKey(&shared)
	memzero.Zero(shared[:])
	return k, nil
}

// SealBox encrypts and authenticates plaintext under key.
func SealBox(key *domain.SharedKey, nonce domain.Nonce, plaintext []byte) ([]byte, error) {
	var out []byte
	err := key.WithKey(func(k *[32]byte) error {
		n := [24]byte(nonce)
		out = box.SealAfterPrecomputation(nil, plaintext, &n, k)
		return nil
	})
	return out, err
}

// OpenBox authenticates and decrypts ciphertext under key. A failed check
// returns domain.ErrAuthentication and no plaintext.
func OpenBox(key *domain.SharedKey, nonce domain.Nonce, ciphertext []byte) ([]byte, error) {
	var out []byte
	err := key.WithKey(func(k *[32]byte) error {
		n := [24]byte(nonce)
		pt, ok := box.OpenAfterPrecomputation(nil, ciphertext, &n, k)
		if !ok {
			return domain.ErrAuthentication
		}
		out = pt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
