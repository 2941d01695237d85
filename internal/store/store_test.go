package store_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/crypto"
	"walletlink/internal/domain"
	"walletlink/internal/store"
)

func backends(t *testing.T) map[string]domain.Storage {
	t.Helper()
	fs, err := store.NewFileStorage(filepath.Join(t.TempDir(), "home"))
	require.NoError(t, err)
	bs, err := store.OpenBoltStorage(filepath.Join(t.TempDir(), store.BoltFilename))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bs.Close() })
	return map[string]domain.Storage{
		"file":   fs,
		"bolt":   bs,
		"memory": store.NewMemoryStorage(),
	}
}

func TestStorage_RoundTripAndAbsence(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, s.Put("k", []byte("v1")))
			require.NoError(t, s.Put("k", []byte("v2")))
			got, ok, err := s.Get("k")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, []byte("v2"), got)

			// Returned slices are copies.
			got[0] = 'x'
			again, _, _ := s.Get("k")
			require.Equal(t, []byte("v2"), again)

			require.NoError(t, s.Delete("k"))
			require.NoError(t, s.Delete("k"))
			_, ok, err = s.Get("k")
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestFileStorage_Layout(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Put(store.KeyPairKey, []byte("{}")))
	info, err := os.Stat(filepath.Join(dir, store.KeyPairKey+".json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not linger")

	for _, bad := range []string{"", "..", "a/b", `a\b`} {
		require.ErrorIs(t, fs.Put(bad, nil), store.ErrInvalidKey, bad)
	}
}

func TestKeyPairStore_RoundTrip(t *testing.T) {
	priv, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	kp := domain.DappKeyPair{PublicKey: pub, SecretKey: priv}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ks := store.NewKeyPairStore(s)
			_, ok, err := ks.LoadKeyPair()
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, ks.SaveKeyPair(kp))
			got, ok, err := ks.LoadKeyPair()
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, kp, got)
		})
	}
}

func TestKeyPairStore_RecordShape(t *testing.T) {
	mem := store.NewMemoryStorage()
	priv, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	require.NoError(t, store.NewKeyPairStore(mem).SaveKeyPair(domain.DappKeyPair{PublicKey: pub, SecretKey: priv}))

	raw, ok, err := mem.Get(store.KeyPairKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Regexp(t, `^\{"publicKey":\[(\d{1,3},){31}\d{1,3}\],"secretKey":\[(\d{1,3},){31}\d{1,3}\]\}$`, string(raw))
}

func TestKeyPairStore_Malformed(t *testing.T) {
	priv, pub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	_, otherPub, err := crypto.GenerateX25519()
	require.NoError(t, err)

	record := func(pub, sec []byte, patch func(p, s []int)) string {
		p, s := make([]int, len(pub)), make([]int, len(sec))
		for i := range pub {
			p[i] = int(pub[i])
		}
		for i := range sec {
			s[i] = int(sec[i])
		}
		if patch != nil {
			patch(p, s)
		}
		b, err := json.Marshal(map[string][]int{"publicKey": p, "secretKey": s})
		require.NoError(t, err)
		return string(b)
	}

	cases := map[string]string{
		"not json":       `{oops`,
		"short":          `{"publicKey":[1,2,3],"secretKey":[1,2,3]}`,
		"missing":        `{}`,
		"out of range":   record(pub[:], priv[:], func(p, _ []int) { p[31] = 256 }),
		"negative":       record(pub[:], priv[:], func(_, s []int) { s[0] = -1 }),
		"mismatched pub": record(otherPub[:], priv[:], nil),
	}
	for name, rec := range cases {
		mem := store.NewMemoryStorage()
		require.NoError(t, mem.Put(store.KeyPairKey, []byte(rec)))
		_, ok, err := store.NewKeyPairStore(mem).LoadKeyPair()
		require.False(t, ok, name)
		require.ErrorIs(t, err, domain.ErrPayloadFormat, name)
	}
}

func TestSessionStore_SealedRoundTrip(t *testing.T) {
	fs, err := store.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	ss := store.NewSessionStore(fs).WithLightKDF()

	_, ok, err := ss.LoadSession("pass")
	require.NoError(t, err)
	require.False(t, ok)

	rec := domain.SessionRecord{
		Session:             "s1",
		WalletPublicKey:     domain.Ed25519Public{1},
		WalletEncryptionKey: domain.X25519Public{2},
		ConnectedUTC:        1700000000,
	}
	require.NoError(t, ss.SaveSession("pass", rec))

	raw, _, err := fs.Get(store.SessionKey)
	require.NoError(t, err)
	require.NotContains(t, string(raw), `"s1"`)

	got, ok, err := ss.LoadSession("pass")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rec, got)

	_, ok, err = ss.LoadSession("wrong")
	require.False(t, ok)
	require.ErrorIs(t, err, store.ErrWrongPassphrase)

	require.NoError(t, ss.DeleteSession())
	_, ok, err = ss.LoadSession("pass")
	require.NoError(t, err)
	require.False(t, ok)
}
