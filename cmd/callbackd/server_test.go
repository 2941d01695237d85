package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"walletlink/internal/app"
	"walletlink/internal/testutil/walletsim"
)

func newTestWire(t *testing.T) *app.Wire {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	cfg.Storage = app.StorageMemory
	w, err := app.NewWire(cfg, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func get(t *testing.T, h http.Handler, raw string) *httptest.ResponseRecorder {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, u.RequestURI(), nil))
	return rec
}

func TestServer_ConnectAndSign(t *testing.T) {
	w := newTestWire(t)
	h := newEngine(w)
	wallet, err := walletsim.New("s1")
	require.NoError(t, err)

	link, err := w.Builder.Connect()
	require.NoError(t, err)
	back, err := wallet.Approve(link)
	require.NoError(t, err)

	rec := get(t, h, back)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), wallet.Account())
	require.True(t, w.Sessions.Current().Connected())

	link, err = w.Builder.SignMessage(w.Sessions.Current(), []byte("hello"), "")
	require.NoError(t, err)
	back, err = wallet.Approve(link)
	require.NoError(t, err)
	rec = get(t, h, back)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Failures(t *testing.T) {
	w := newTestWire(t)
	h := newEngine(w)

	rec := get(t, h, "http://127.0.0.1:8787/onSignMessage?errorCode=4001&errorMessage=User+rejected")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "4001")

	rec = get(t, h, "http://127.0.0.1:8787/onSignMessage?data=abc&nonce=def")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Nil(t, w.Sessions.Current())
}

func TestServer_PublicKeyCallbackAndPing(t *testing.T) {
	w := newTestWire(t)
	h := newEngine(w)
	wallet, err := walletsim.New("s1")
	require.NoError(t, err)

	rec := get(t, h, "http://127.0.0.1:8787/wallet/callback?public_key="+wallet.Account())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), wallet.Account())
	require.Nil(t, w.Sessions.Current())

	rec = get(t, h, "http://127.0.0.1:8787/ping")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pong", rec.Body.String())
}

func TestServer_UnsavedStateAnswers500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	w, err := app.NewWire(cfg, "Correct-Horse-9")
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	h := newEngine(w)

	wallet, err := walletsim.New("s1")
	require.NoError(t, err)
	link, err := w.Builder.Connect()
	require.NoError(t, err)
	back, err := wallet.Approve(link)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(cfg.Home))
	rec := get(t, h, back)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Nil(t, w.Sessions.Current())
}
