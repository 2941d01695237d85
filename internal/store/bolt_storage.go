package store

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"walletlink/internal/domain"
)

// BoltFilename is the database file BoltStorage opens inside the home dir.
const BoltFilename = "walletlink.db"

var recordsBucket = []byte("records")

// BoltStorage keeps records in one bucket of a bbolt database.
type BoltStorage struct {
	db *bolt.DB
}

// OpenBoltStorage opens (or creates) the database at path. The file lock is
// held until Close, so a second process fails after a one second wait.
func OpenBoltStorage(path string) (*BoltStorage, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt db %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create records bucket")
	}
	return &BoltStorage{db: db}, nil
}

// Get returns a copy of the value under key; bolt memory is only valid
// inside the transaction.
func (s *BoltStorage) Get(key string) (value []byte, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(recordsBucket).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
			ok = true
		}
		return nil
	})
	return value, ok, errors.Wrapf(err, "bolt get %s", key)
}

func (s *BoltStorage) Put(key string, value []byte) error {
	if key == "" {
		return errors.Wrap(ErrInvalidKey, "empty key")
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(key), value)
	})
	return errors.Wrapf(err, "bolt put %s", key)
}

func (s *BoltStorage) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Delete([]byte(key))
	})
	return errors.Wrapf(err, "bolt delete %s", key)
}

// Close releases the database file.
func (s *BoltStorage) Close() error { return s.db.Close() }

var _ domain.Storage = (*BoltStorage)(nil)
