package types

import (
	"fmt"
	"io"
	"sync"

	"walletlink/internal/util/memzero"
)

// X25519Public is a Curve25519 public key.
type X25519Public [32]byte

// Slice returns the key as a []byte.
func (p X25519Public) Slice() []byte { return p[:] }

// X25519Private is a Curve25519 private key.
type X25519Private [32]byte

// Slice returns the key as a []byte.
func (k X25519Private) Slice() []byte { return k[:] }

// String never renders key material.
func (k X25519Private) String() string { return "X25519Private(redacted)" }

// GoString never renders key material.
func (k X25519Private) GoString() string { return k.String() }

// Ed25519Public is an Ed25519 signing public key. Wallet accounts are
// identified by one.
type Ed25519Public [32]byte

// Slice returns the key as a []byte.
func (p Ed25519Public) Slice() []byte { return p[:] }

// IsZero reports whether the key is unset.
func (p Ed25519Public) IsZero() bool { return p == Ed25519Public{} }

// Nonce is the 24-byte XSalsa20 nonce sent next to every payload.
type Nonce [24]byte

// Slice returns the nonce as a []byte.
func (n Nonce) Slice() []byte { return n[:] }

// DappKeyPair is the dapp's long-lived encryption key pair.
type DappKeyPair struct {
	PublicKey X25519Public
	SecretKey X25519Private
}

const redacted = "SharedKey(redacted)"

// SharedKey is an opaque handle on a derived 32-byte box key.
//
// The bytes are only reachable through WithKey. Destroy zeroes them, after
// which every use fails with ErrMissingSecret. A nil *SharedKey behaves like
// a destroyed one.
type SharedKey struct {
	mu  sync.RWMutex
	key *[32]byte
}

// NewSharedKey copies k into a new handle. The caller keeps ownership of k
// and should wipe it.
func NewSharedKey(k *[32]byte) *SharedKey {
	b := new([32]byte)
	*b = *k
	return &SharedKey{key: b}
}

// WithKey runs fn with the key bytes under a read lock. fn must not retain
// the pointer.
func (k *SharedKey) WithKey(fn func(key *[32]byte) error) error {
	if k == nil {
		return ErrMissingSecret
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.key == nil {
		return ErrMissingSecret
	}
	return fn(k.key)
}

// Usable reports whether the handle still holds key material.
func (k *SharedKey) Usable() bool {
	if k == nil {
		return false
	}
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.key != nil
}

// Destroy zeroes the key. It is safe to call more than once.
func (k *SharedKey) Destroy() {
	if k == nil {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.key != nil {
		memzero.Zero(k.key[:])
		k.key = nil
	}
}

// String never renders key material.
func (k *SharedKey) String() string { return redacted }

// GoString never renders key material.
func (k *SharedKey) GoString() string { return redacted }

// Format makes every fmt verb, including %x, print the redacted form.
func (k *SharedKey) Format(f fmt.State, _ rune) { _, _ = io.WriteString(f, redacted) }

// MarshalJSON refuses to serialise key material.
func (k *SharedKey) MarshalJSON() ([]byte, error) { return []byte(`"` + redacted + `"`), nil }
