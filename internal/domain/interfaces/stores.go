package interfaces

import domaintypes "walletlink/internal/domain/types"

// Storage is a durable key-value backend. Get reports absence with ok=false
// rather than an error.
type Storage interface {
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// KeyPairStore persists the dapp key pair.
type KeyPairStore interface {
	SaveKeyPair(kp domaintypes.DappKeyPair) error
	// LoadKeyPair returns ok=false when no record exists. A record that
	// exists but does not decode is reported as an error.
	LoadKeyPair() (kp domaintypes.DappKeyPair, ok bool, err error)
}

// SessionStore persists the connected session between process lifetimes.
type SessionStore interface {
	SaveSession(passphrase string, rec domaintypes.SessionRecord) error
	LoadSession(passphrase string) (domaintypes.SessionRecord, bool, error)
	DeleteSession() error
}
