package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/app"
	"walletlink/internal/codec"
	"walletlink/internal/domain"
	"walletlink/internal/testutil/walletsim"
)

const testPassphrase = "Correct-Horse-9"

func run(t *testing.T, args ...string) error {
	t.Helper()
	home, configPath, passphrase, verbose = "", "", "", false
	root := newRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestInitWritesConfigAndKey(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(t, "--home", dir, "init"))
	require.FileExists(t, filepath.Join(dir, app.ConfigFilename))
	require.FileExists(t, filepath.Join(dir, "dappKeyPair.json"))

	kp, err := wire.Keys.LoadOrCreateKeyPair()
	require.NoError(t, err)
	require.NoError(t, run(t, "--home", dir, "pubkey"))
	again, err := wire.Keys.LoadOrCreateKeyPair()
	require.NoError(t, err)
	require.Equal(t, kp, again)
}

func TestSignRequiresSession(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, run(t, "--home", dir, "sign-message", "hi"))
	require.Error(t, run(t, "--home", dir, "disconnect"))
	require.NoError(t, run(t, "--home", dir, "status"))
}

// TestConnectAcrossRuns builds the link in one run and handles the redirect
// in the next, the way a user drives the CLI.
func TestConnectAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	wallet, err := walletsim.New("s1")
	require.NoError(t, err)

	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "connect"))
	link, err := wire.Builder.Connect()
	require.NoError(t, err)
	back, err := wallet.Approve(link)
	require.NoError(t, err)

	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "handle", back))
	require.True(t, wire.Sessions.Current().Connected())

	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "status"))
	state := wire.Sessions.Current()
	require.Equal(t, domain.SessionToken("s1"), state.Session)

	tx := codec.EncodeBase58([]byte{1, 2, 3})
	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "sign-transaction", tx))
	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "sign-all-transactions", tx, tx))
	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "sign-and-send-transaction", "--max-retries", "3", tx))
	require.Error(t, run(t, "--home", dir, "-p", testPassphrase, "sign-transaction", "0OIl"))

	msg := "verify me"
	link, err = wire.Builder.SignMessage(wire.Sessions.Current(), []byte(msg), "")
	require.NoError(t, err)
	back, err = wallet.Approve(link)
	require.NoError(t, err)
	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "handle", "--message", msg, back))

	require.Error(t, run(t, "--home", dir, "-p", testPassphrase, "handle",
		"http://127.0.0.1:8787/onSignMessage?errorCode=4001&errorMessage=User+rejected"))

	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "handle", "http://127.0.0.1:8787/onDisconnect"))
	require.NoError(t, run(t, "--home", dir, "-p", testPassphrase, "status"))
	require.Nil(t, wire.Sessions.Current())
}

func TestEnvHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(app.HomeEnv, dir)
	require.NoError(t, run(t, "init"))
	_, err := os.Stat(filepath.Join(dir, app.ConfigFilename))
	require.NoError(t, err)
}
