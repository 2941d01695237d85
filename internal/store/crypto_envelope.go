package store

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const envelopeVersion = 2

var (
	// ErrWrongPassphrase is returned when the passphrase is incorrect or the
	// sealed record has been modified.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted session record")

	// ErrRecordKind is returned when a sealed record holds a different kind
	// of data than the caller asked for.
	ErrRecordKind = errors.New("sealed record has the wrong kind")
)

// header is everything about a sealed record except its ciphertext. Its
// JSON form is the AEAD additional data, so none of it can be edited or
// moved to another record kind without failing authentication.
type header struct {
	V     int    `json:"v"`
	Kind  string `json:"kind"`
	Salt  []byte `json:"salt"`
	N     int    `json:"scrypt_N"`
	R     int    `json:"scrypt_r"`
	P     int    `json:"scrypt_p"`
	Nonce []byte `json:"nonce"`
}

type sealedRecord struct {
	header
	Cipher []byte `json:"cipher"`
}

// envelope seals one kind of record under a passphrase with scrypt and
// XChaCha20-Poly1305.
type envelope struct {
	kind   string
	params scryptParams
}

func (e envelope) seal(passphrase string, raw []byte) ([]byte, error) {
	h := header{
		V:     envelopeVersion,
		Kind:  e.kind,
		Salt:  make([]byte, 16),
		N:     e.params.N,
		R:     e.params.R,
		P:     e.params.P,
		Nonce: make([]byte, chacha20poly1305.NonceSizeX),
	}
	if _, err := rand.Read(h.Salt); err != nil {
		return nil, err
	}
	if _, err := rand.Read(h.Nonce); err != nil {
		return nil, err
	}
	aead, err := h.aead(passphrase)
	if err != nil {
		return nil, err
	}
	ad, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sealedRecord{header: h, Cipher: aead.Seal(nil, h.Nonce, raw, ad)})
}

func (e envelope) open(passphrase string, b []byte) ([]byte, error) {
	var rec sealedRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
	}
	h := rec.header
	switch {
	case h.V != envelopeVersion:
		return nil, fmt.Errorf("unsupported envelope version %d", h.V)
	case h.Kind != e.kind:
		return nil, fmt.Errorf("%w: %q, want %q", ErrRecordKind, h.Kind, e.kind)
	case !(scryptParams{h.N, h.R, h.P}).acceptable():
		return nil, fmt.Errorf("%w: scrypt parameters out of range", ErrWrongPassphrase)
	case len(h.Nonce) != chacha20poly1305.NonceSizeX:
		return nil, fmt.Errorf("%w: nonce is %d bytes", ErrWrongPassphrase, len(h.Nonce))
	}

	aead, err := h.aead(passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
	}
	ad, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	pt, err := aead.Open(nil, h.Nonce, rec.Cipher, ad)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

func (h header) aead(passphrase string) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), h.Salt, h.N, h.R, h.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	return chacha20poly1305.NewX(key)
}

// scryptParams are the tunables for passphrase key derivation.
type scryptParams struct{ N, R, P int }

func defaultScryptParams() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

// acceptable bounds the cost a stored record can make open() pay.
func (p scryptParams) acceptable() bool {
	return p.N >= 1<<10 && p.N <= 1<<20 && p.N&(p.N-1) == 0 &&
		p.R >= 1 && p.R <= 32 && p.P >= 1 && p.P <= 4
}
