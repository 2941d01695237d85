package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"walletlink/internal/domain"
	"walletlink/internal/protocol/channel"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)

	// ErrStaleSession is returned when a disconnect could not remove the
	// stored session record.
	ErrStaleSession = errors.New("stored session record is stale; remove it before the next run")
)

// Holder owns the current session state.
type Holder struct {
	state atomic.Pointer[domain.SessionState]

	// writeMu keeps Apply single-writer; readers only touch state.
	writeMu    sync.Mutex
	keys       domain.KeyService
	store      domain.SessionStore
	passphrase string
}

// Option configures a Holder.
type Option func(*Holder) error

// WithStore persists every applied state to s, sealed under passphrase.
func WithStore(s domain.SessionStore, passphrase string) Option {
	return func(h *Holder) error {
		if !isSecurePassphrase(passphrase) {
			return ErrWeakPassphrase
		}
		h.store, h.passphrase = s, passphrase
		return nil
	}
}

// NewHolder returns a disconnected Holder. keys is used to re-derive the
// shared key when resuming a stored session.
func NewHolder(keys domain.KeyService, opts ...Option) (*Holder, error) {
	h := &Holder{keys: keys}
	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Current returns the current state; nil means not connected.
func (h *Holder) Current() *domain.SessionState { return h.state.Load() }

// Apply replaces the current state with next. The previous shared key is
// destroyed unless next still carries it. next may be nil.
//
// With a store configured the record is written before the swap, so a
// failed save leaves the current state in place. A failed delete on
// disconnect still clears memory and returns an error matching
// ErrStaleSession: the record left on disk must not be resumed.
func (h *Holder) Apply(next *domain.SessionState) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	prev := h.state.Load()
	if prev == next {
		return nil
	}

	var staleErr error
	if h.store != nil {
		if next != nil {
			if err := h.store.SaveSession(h.passphrase, next.Record()); err != nil {
				return errors.Wrap(err, "save session")
			}
		} else if err := h.store.DeleteSession(); err != nil {
			staleErr = fmt.Errorf("%w: %w", ErrStaleSession, err)
		}
	}

	h.state.Store(next)
	if prev != nil && (next == nil || next.SharedKey != prev.SharedKey) {
		prev.SharedKey.Destroy()
	}
	return staleErr
}

// Resume loads the stored session, if any, re-derives its shared key and
// makes it current. It returns the resumed state, or nil when nothing was
// stored.
func (h *Holder) Resume() (*domain.SessionState, error) {
	if h.store == nil {
		return nil, nil
	}
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	rec, ok, err := h.store.LoadSession(h.passphrase)
	if err != nil || !ok {
		return nil, err
	}
	kp, err := h.keys.LoadOrCreateKeyPair()
	if err != nil {
		return nil, err
	}
	key, err := channel.DeriveSharedKey(kp.SecretKey, rec.WalletEncryptionKey.Slice())
	if err != nil {
		return nil, errors.Wrap(err, "re-derive session key")
	}

	state := &domain.SessionState{
		Session:             rec.Session,
		WalletPublicKey:     rec.WalletPublicKey,
		WalletEncryptionKey: rec.WalletEncryptionKey,
		SharedKey:           key,
		ConnectedAt:         time.Unix(rec.ConnectedUTC, 0).UTC(),
	}
	if prev := h.state.Swap(state); prev != nil {
		prev.SharedKey.Destroy()
	}
	log.WithField("session_age", time.Since(state.ConnectedAt).Round(time.Second)).Debug("resumed session")
	return state, nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Holder implements domain.SessionService.
var _ domain.SessionService = (*Holder)(nil)
