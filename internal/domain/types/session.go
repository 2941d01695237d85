package types

import "time"

// SessionState is the connected-wallet context.
//
// Values are immutable once built; a change of state is a new value
// swapped in whole. A nil *SessionState means "not connected".
type SessionState struct {
	Session             SessionToken
	WalletPublicKey     Ed25519Public
	WalletEncryptionKey X25519Public
	SharedKey           *SharedKey
	ConnectedAt         time.Time
}

// Connected reports whether s carries both a session token and a usable key.
func (s *SessionState) Connected() bool {
	return s != nil && s.Session != "" && s.SharedKey.Usable()
}

// Record returns the persistable part of s. The shared key is left out.
func (s *SessionState) Record() SessionRecord {
	return SessionRecord{
		Session:             s.Session,
		WalletPublicKey:     s.WalletPublicKey,
		WalletEncryptionKey: s.WalletEncryptionKey,
		ConnectedUTC:        s.ConnectedAt.UTC().Unix(),
	}
}

// SessionRecord is what survives a process restart. The shared key is
// re-derived from WalletEncryptionKey and the dapp secret key.
type SessionRecord struct {
	Session             SessionToken  `json:"session"`
	WalletPublicKey     Ed25519Public `json:"wallet_public_key"`
	WalletEncryptionKey X25519Public  `json:"wallet_encryption_public_key"`
	ConnectedUTC        int64         `json:"connected_utc"`
}
