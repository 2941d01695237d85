package app

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"walletlink/internal/domain"
	"walletlink/internal/protocol/deeplink"
	"walletlink/internal/protocol/redirect"
	keysvc "walletlink/internal/services/keys"
	sessionsvc "walletlink/internal/services/session"
	"walletlink/internal/store"
)

// Wire bundles the storage, services, builder and router for one process.
type Wire struct {
	Config   Config
	Storage  domain.Storage
	Keys     *keysvc.Service
	Sessions *sessionsvc.Holder
	Builder  *deeplink.Builder
	Router   *redirect.Router

	// handleMu serializes router runs so the holder keeps a single writer.
	handleMu sync.Mutex
	closer   io.Closer
}

// NewWire constructs the dependency graph from cfg. When cfg.PersistSession
// is set and passphrase is non-empty, the stored session is resumed.
func NewWire(cfg Config, passphrase string) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backend, closer, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}
	w := &Wire{Config: cfg, Storage: backend, closer: closer}

	w.Keys = keysvc.New(store.NewKeyPairStore(backend))
	kp, err := w.Keys.LoadOrCreateKeyPair()
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	var opts []sessionsvc.Option
	if cfg.PersistSession && passphrase != "" {
		opts = append(opts, sessionsvc.WithStore(store.NewSessionStore(backend), passphrase))
	}
	if w.Sessions, err = sessionsvc.NewHolder(w.Keys, opts...); err != nil {
		_ = w.Close()
		return nil, err
	}
	if _, err := w.Sessions.Resume(); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, "resume session")
	}

	if w.Builder, err = deeplink.NewBuilder(cfg.BuilderConfig(), kp.PublicKey); err != nil {
		_ = w.Close()
		return nil, err
	}
	if w.Router, err = redirect.NewRouter(w.Keys, cfg.RouteTable()); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// HandleURL runs one inbound redirect through the router, applies the
// resulting state and logs the outcome.
func (w *Wire) HandleURL(raw string) (domain.Result, error) {
	w.handleMu.Lock()
	defer w.handleMu.Unlock()

	next, res := w.Router.HandleURL(w.Sessions.Current(), raw)
	entry := log.WithFields(res.Fields())
	if err := w.Sessions.Apply(next); err != nil {
		entry.WithError(err).Error("wallet redirect not applied")
		return res, err
	}
	switch res.(type) {
	case domain.OperationFailed:
		entry.Warn("wallet redirect failed")
	case domain.Ignored, domain.Unrecognized:
		entry.Debug("wallet redirect skipped")
	default:
		entry.Info("wallet redirect handled")
	}
	return res, nil
}

// Close releases the storage backend.
func (w *Wire) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

func openStorage(cfg Config) (domain.Storage, io.Closer, error) {
	switch cfg.Storage {
	case StorageMemory:
		return store.NewMemoryStorage(), nil, nil
	case StorageBolt:
		if _, err := store.NewFileStorage(cfg.Home); err != nil {
			return nil, nil, err
		}
		bs, err := store.OpenBoltStorage(filepath.Join(cfg.Home, store.BoltFilename))
		if err != nil {
			return nil, nil, err
		}
		return bs, bs, nil
	default:
		fs, err := store.NewFileStorage(cfg.Home)
		return fs, nil, err
	}
}
