package keys

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
)

// Service hands out the dapp key pair, creating it when needed.
type Service struct {
	store domain.KeyPairStore

	mu     sync.Mutex
	cached *domain.DappKeyPair
}

// New returns a key service backed by the given store.
func New(s domain.KeyPairStore) *Service { return &Service{store: s} }

// LoadOrCreateKeyPair returns the persisted key pair, or generates and
// persists a new one when nothing usable is stored.
func (s *Service) LoadOrCreateKeyPair() (domain.DappKeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return *s.cached, nil
	}

	kp, ok, err := s.store.LoadKeyPair()
	switch {
	case err != nil:
		log.WithError(err).Warn("stored dapp key pair is unreadable; generating a new one")
	case ok:
		s.cached = &kp
		return kp, nil
	}

	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.DappKeyPair{}, errors.Wrap(err, "generate dapp key pair")
	}
	kp = domain.DappKeyPair{PublicKey: pub, SecretKey: priv}
	if err := s.store.SaveKeyPair(kp); err != nil {
		return domain.DappKeyPair{}, errors.Wrap(err, "persist dapp key pair")
	}
	log.WithField("fingerprint", crypto.Fingerprint(pub)).Info("generated dapp key pair")
	s.cached = &kp
	return kp, nil
}

// Fingerprint returns a short fingerprint of the dapp public key.
func (s *Service) Fingerprint() (domain.Fingerprint, error) {
	kp, err := s.LoadOrCreateKeyPair()
	if err != nil {
		return "", err
	}
	return crypto.Fingerprint(kp.PublicKey), nil
}

// Compile-time assertion that Service implements domain.KeyService.
var _ domain.KeyService = (*Service)(nil)
