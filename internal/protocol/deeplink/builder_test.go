package deeplink_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/codec"
	"walletlink/internal/crypto"
	"walletlink/internal/domain"
	"walletlink/internal/protocol/channel"
	"walletlink/internal/protocol/deeplink"
)

func testConfig() deeplink.Config {
	return deeplink.Config{
		WalletBaseURL: "https://phantom.app/ul/v1/",
		RedirectBase:  "https://dapp.example/",
		Cluster:       domain.ClusterMainnetBeta,
		AppURL:        "https://dapp.example",
	}
}

type fixture struct {
	builder *deeplink.Builder
	dapp    domain.DappKeyPair
	state   *domain.SessionState
	wallet  *domain.SharedKey
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dPriv, dPub, err := crypto.GenerateX25519()
	require.NoError(t, err)
	wPriv, wPub, err := crypto.GenerateX25519()
	require.NoError(t, err)

	b, err := deeplink.NewBuilder(testConfig(), dPub)
	require.NoError(t, err)

	dk, err := channel.DeriveSharedKey(dPriv, wPub.Slice())
	require.NoError(t, err)
	wk, err := channel.DeriveSharedKey(wPriv, dPub.Slice())
	require.NoError(t, err)

	return fixture{
		builder: b,
		dapp:    domain.DappKeyPair{PublicKey: dPub, SecretKey: dPriv},
		state:   &domain.SessionState{Session: "s1", WalletEncryptionKey: wPub, SharedKey: dk},
		wallet:  wk,
	}
}

func parse(t *testing.T, link string) (*url.URL, url.Values) {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u, u.Query()
}

func TestConnect_Params(t *testing.T) {
	f := newFixture(t)
	link, err := f.builder.Connect()
	require.NoError(t, err)

	u, q := parse(t, link)
	require.Equal(t, "phantom.app", u.Host)
	require.Equal(t, "/ul/v1/connect", u.Path)
	require.Equal(t, codec.EncodeBase58(f.dapp.PublicKey.Slice()), q.Get(deeplink.ParamDappPublicKey))
	require.Equal(t, "mainnet-beta", q.Get(deeplink.ParamCluster))
	require.Equal(t, "https://dapp.example", q.Get(deeplink.ParamAppURL))
	require.Equal(t, "https://dapp.example/onConnect", q.Get(deeplink.ParamRedirectLink))
	require.Empty(t, q.Get(deeplink.ParamPayload))
	require.Empty(t, q.Get(deeplink.ParamNonce))
}

func TestSealedOperations_NotConnected(t *testing.T) {
	f := newFixture(t)

	destroyed := &domain.SessionState{Session: "s1", SharedKey: domain.NewSharedKey(&[32]byte{1})}
	destroyed.SharedKey.Destroy()

	for name, state := range map[string]*domain.SessionState{
		"nil":        nil,
		"no secret":  {Session: "s1"},
		"no session": {SharedKey: f.state.SharedKey},
		"destroyed":  destroyed,
	} {
		calls := map[string]func() (string, error){
			"disconnect": func() (string, error) { return f.builder.Disconnect(state) },
			"signMessage": func() (string, error) {
				return f.builder.SignMessage(state, []byte("hi"), "")
			},
			"signTransaction": func() (string, error) {
				return f.builder.SignTransaction(state, []byte{1})
			},
			"signAllTransactions": func() (string, error) {
				return f.builder.SignAllTransactions(state, [][]byte{{1}})
			},
			"signAndSendTransaction": func() (string, error) {
				return f.builder.SignAndSendTransaction(state, []byte{1}, nil)
			},
		}
		for op, call := range calls {
			link, err := call()
			require.ErrorIs(t, err, domain.ErrNotConnected, "%s/%s", name, op)
			require.Empty(t, link, "%s/%s", name, op)
		}
	}
}

func openPayload(t *testing.T, f fixture, q url.Values) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, channel.OpenEncoded(
		q.Get(deeplink.ParamPayload), q.Get(deeplink.ParamNonce), f.wallet, &out))
	return out
}

func TestSignMessage_Payload(t *testing.T) {
	f := newFixture(t)
	link, err := f.builder.SignMessage(f.state, []byte("Sign this message"), deeplink.DisplayUTF8)
	require.NoError(t, err)

	u, q := parse(t, link)
	require.Equal(t, "/ul/v1/signMessage", u.Path)
	require.Equal(t, "https://dapp.example/onSignMessage", q.Get(deeplink.ParamRedirectLink))
	require.Len(t, q, 4)

	p := openPayload(t, f, q)
	require.Equal(t, "s1", p["session"])
	require.Equal(t, "utf8", p["display"])
	msg, err := codec.DecodeBase58(p["message"].(string))
	require.NoError(t, err)
	require.Equal(t, "Sign this message", string(msg))
}

func TestSignAllTransactions_Payload(t *testing.T) {
	f := newFixture(t)
	link, err := f.builder.SignAllTransactions(f.state, [][]byte{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, q := parse(t, link)
	p := openPayload(t, f, q)
	require.Equal(t, []any{codec.EncodeBase58([]byte{1, 2}), codec.EncodeBase58([]byte{3, 4})}, p["transactions"])

	_, err = f.builder.SignAllTransactions(f.state, nil)
	require.ErrorIs(t, err, domain.ErrPayloadFormat)
	_, err = f.builder.SignAllTransactions(f.state, [][]byte{{1}, {}})
	require.ErrorIs(t, err, domain.ErrPayloadFormat)
}

func TestSignAndSend_Options(t *testing.T) {
	f := newFixture(t)
	link, err := f.builder.SignAndSendTransaction(f.state, []byte{9}, &deeplink.SendOptions{MaxRetries: 3})
	require.NoError(t, err)

	u, q := parse(t, link)
	require.Equal(t, "/ul/v1/signAndSendTransaction", u.Path)
	p := openPayload(t, f, q)
	require.Equal(t, codec.EncodeBase58([]byte{9}), p["transaction"])
	require.Equal(t, map[string]any{"maxRetries": float64(3)}, p["sendOptions"])
}

func TestDisconnect_Payload(t *testing.T) {
	f := newFixture(t)
	link, err := f.builder.Disconnect(f.state)
	require.NoError(t, err)

	_, q := parse(t, link)
	require.Equal(t, "https://dapp.example/onDisconnect", q.Get(deeplink.ParamRedirectLink))
	require.Equal(t, map[string]any{"session": "s1"}, openPayload(t, f, q))
}

func TestSealed_FreshNonce(t *testing.T) {
	f := newFixture(t)
	a, err := f.builder.SignTransaction(f.state, []byte{1})
	require.NoError(t, err)
	b, err := f.builder.SignTransaction(f.state, []byte{1})
	require.NoError(t, err)

	_, qa := parse(t, a)
	_, qb := parse(t, b)
	require.NotEqual(t, qa.Get(deeplink.ParamNonce), qb.Get(deeplink.ParamNonce))
}

func TestRedirectLinks_Distinct(t *testing.T) {
	f := newFixture(t)
	seen := map[string]bool{}
	for _, op := range domain.Operations() {
		link := f.builder.RedirectLink(op)
		require.False(t, seen[link], "duplicate redirect %s", link)
		seen[link] = true
	}
}

func TestRoutes_Validate(t *testing.T) {
	require.NoError(t, deeplink.DefaultRoutes().Validate())

	dup := deeplink.DefaultRoutes()
	dup[domain.OpSignTransaction] = dup[domain.OpSignMessage]
	require.ErrorIs(t, dup.Validate(), domain.ErrInvalidRoutes)

	empty := deeplink.DefaultRoutes()
	empty[domain.OpDisconnect] = ""
	require.ErrorIs(t, empty.Validate(), domain.ErrInvalidRoutes)

	nested := deeplink.DefaultRoutes()
	nested[domain.OpConnect] = "a/b"
	require.ErrorIs(t, nested.Validate(), domain.ErrInvalidRoutes)

	cfg := testConfig()
	cfg.Routes = dup
	_, err := deeplink.NewBuilder(cfg, domain.X25519Public{})
	require.ErrorIs(t, err, domain.ErrInvalidRoutes)
}

func TestRoutes_WithDefaults(t *testing.T) {
	r := deeplink.Routes{domain.OpConnect: "hello"}.WithDefaults()
	require.NoError(t, r.Validate())
	require.Equal(t, "hello", r[domain.OpConnect])
	require.Equal(t, "onDisconnect", r[domain.OpDisconnect])
}

func TestNewBuilder_RejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Cluster = "localnet"
	_, err := deeplink.NewBuilder(cfg, domain.X25519Public{})
	require.Error(t, err)

	cfg = testConfig()
	cfg.RedirectBase = "not a url"
	_, err = deeplink.NewBuilder(cfg, domain.X25519Public{})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "redirect base"))
}
