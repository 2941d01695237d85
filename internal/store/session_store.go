package store

import (
	"encoding/json"

	"github.com/pkg/errors"

	"walletlink/internal/domain"
)

// SessionKey is the storage key the sealed session record lives under.
const SessionKey = "session"

// SessionFileStore persists the connected session, sealed under a
// passphrase, in a domain.Storage.
type SessionFileStore struct {
	backend domain.Storage
	env     envelope
}

// NewSessionStore returns a SessionFileStore over backend.
func NewSessionStore(backend domain.Storage) *SessionFileStore {
	return &SessionFileStore{
		backend: backend,
		env:     envelope{kind: SessionKey, params: defaultScryptParams()},
	}
}

// WithLightKDF lowers the scrypt cost. Tests only.
func (s *SessionFileStore) WithLightKDF() *SessionFileStore {
	s.env.params = scryptParams{N: 1 << 10, R: 8, P: 1}
	return s
}

// SaveSession seals rec under passphrase and stores it.
func (s *SessionFileStore) SaveSession(passphrase string, rec domain.SessionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encode session")
	}
	b, err := s.env.seal(passphrase, raw)
	if err != nil {
		return errors.Wrap(err, "seal session")
	}
	return s.backend.Put(SessionKey, b)
}

// LoadSession opens the stored record. A wrong passphrase matches
// ErrWrongPassphrase and is never treated as absence.
func (s *SessionFileStore) LoadSession(passphrase string) (domain.SessionRecord, bool, error) {
	var rec domain.SessionRecord
	b, ok, err := s.backend.Get(SessionKey)
	if err != nil || !ok {
		return rec, false, err
	}
	raw, err := s.env.open(passphrase, b)
	if err != nil {
		return rec, false, errors.Wrap(err, "open session")
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, false, errors.Wrapf(domain.ErrPayloadFormat, "session record: %v", err)
	}
	return rec, true, nil
}

// DeleteSession removes the stored record, if any.
func (s *SessionFileStore) DeleteSession() error {
	return s.backend.Delete(SessionKey)
}

// Compile-time assertion that SessionFileStore implements domain.SessionStore.
var _ domain.SessionStore = (*SessionFileStore)(nil)
