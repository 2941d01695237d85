package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"walletlink/internal/codec"
	"walletlink/internal/domain"
)

func TestBase58_RoundTrip(t *testing.T) {
	for _, in := range [][]byte{
		{0},
		{0, 0, 1},
		[]byte("Sign this message from WebApp"),
		make([]byte, 32),
	} {
		got, err := codec.DecodeBase58(codec.EncodeBase58(in))
		require.NoError(t, err)
		require.Equal(t, in, got)
	}
}

func TestBase58_KnownVector(t *testing.T) {
	require.Equal(t, "StV1DL6CwTryKyV", codec.EncodeBase58([]byte("hello world")))
}

func TestDecodeBase58_Malformed(t *testing.T) {
	for _, s := range []string{"", "0OIl", "abc!"} {
		_, err := codec.DecodeBase58(s)
		require.ErrorIs(t, err, domain.ErrDecode, "input %q", s)
		require.ErrorIs(t, err, domain.ErrPayloadFormat, "input %q", s)
	}
}

func TestDecodeBase58Fixed_WrongLength(t *testing.T) {
	_, err := codec.DecodeBase58Fixed(codec.EncodeBase58(make([]byte, 31)), 32)
	require.ErrorIs(t, err, domain.ErrDecode)

	b, err := codec.DecodeBase58Fixed(codec.EncodeBase58(make([]byte, 32)), 32)
	require.NoError(t, err)
	require.Len(t, b, 32)
}

func TestUnmarshalPayload_Malformed(t *testing.T) {
	var v map[string]any
	err := codec.UnmarshalPayload([]byte("{not json"), &v)
	require.ErrorIs(t, err, domain.ErrPayloadFormat)
}

func TestMarshalPayload_Unsupported(t *testing.T) {
	_, err := codec.MarshalPayload(map[string]any{"ch": make(chan int)})
	require.ErrorIs(t, err, domain.ErrPayloadFormat)
}

func TestNewNonce_NoCollisions(t *testing.T) {
	const n = 10000
	seen := make(map[domain.Nonce]struct{}, n)
	for i := 0; i < n; i++ {
		nonce, err := codec.NewNonce()
		require.NoError(t, err)
		_, dup := seen[nonce]
		require.False(t, dup, "nonce collision after %d draws", i)
		seen[nonce] = struct{}{}
	}
}

func TestNonceFromBytes(t *testing.T) {
	_, ok := codec.NonceFromBytes(make([]byte, 23))
	require.False(t, ok)

	in := make([]byte, codec.NonceSize)
	in[0] = 7
	n, ok := codec.NonceFromBytes(in)
	require.True(t, ok)
	require.Equal(t, byte(7), n[0])
}
