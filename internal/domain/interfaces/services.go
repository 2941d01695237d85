package interfaces

import domaintypes "walletlink/internal/domain/types"

// KeyService owns the dapp key pair.
type KeyService interface {
	LoadOrCreateKeyPair() (domaintypes.DappKeyPair, error)
	Fingerprint() (domaintypes.Fingerprint, error)
}

// SessionService holds the process-wide session state.
type SessionService interface {
	Current() *domaintypes.SessionState
	Apply(next *domaintypes.SessionState) error
}
