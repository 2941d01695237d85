// Package walletsim is an in-process stand-in for the wallet app, used by
// tests to answer deeplinks the way a real wallet redirects back.
package walletsim

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/url"
	"path"

	"walletlink/internal/codec"
	"walletlink/internal/crypto"
	"walletlink/internal/domain"
	"walletlink/internal/protocol/channel"
	"walletlink/internal/protocol/deeplink"
	"walletlink/internal/protocol/redirect"
)

// Wallet holds one wallet installation: an X25519 encryption key, an
// ed25519 account key and at most one dapp session.
type Wallet struct {
	encPriv    domain.X25519Private
	EncPublic  domain.X25519Public
	accountPub ed25519.PublicKey
	accountKey ed25519.PrivateKey
	session    string

	shared *domain.SharedKey
}

// New returns a wallet that issues session on connect.
func New(session string) (*Wallet, error) {
	priv, pub, err := crypto.GenerateX25519()
	if err != nil {
		return nil, err
	}
	apub, apriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		encPriv:    priv,
		EncPublic:  pub,
		accountPub: apub,
		accountKey: apriv,
		session:    session,
	}, nil
}

// Account returns the base58 account key reported on connect.
func (w *Wallet) Account() string { return codec.EncodeBase58(w.accountPub) }

// AccountKey returns the account key as a domain value.
func (w *Wallet) AccountKey() domain.Ed25519Public {
	var out domain.Ed25519Public
	copy(out[:], w.accountPub)
	return out
}

// Request is a decoded deeplink as the wallet sees it.
type Request struct {
	Operation    domain.Operation
	RedirectLink string
	Params       url.Values
	Payload      map[string]any
}

// Read parses a deeplink and, for sealed operations, opens its payload.
func (w *Wallet) Read(link string) (Request, error) {
	u, err := url.Parse(link)
	if err != nil {
		return Request{}, err
	}
	req := Request{
		Operation:    domain.Operation(path.Base(u.Path)),
		Params:       u.Query(),
		RedirectLink: u.Query().Get(deeplink.ParamRedirectLink),
	}
	if req.Operation == domain.OpConnect {
		return req, nil
	}
	if w.shared == nil {
		return Request{}, fmt.Errorf("wallet: %s before connect", req.Operation)
	}
	err = channel.OpenEncoded(
		req.Params.Get(deeplink.ParamPayload),
		req.Params.Get(deeplink.ParamNonce),
		w.shared,
		&req.Payload,
	)
	if err != nil {
		return Request{}, err
	}
	if req.Payload["session"] != w.session {
		return Request{}, fmt.Errorf("wallet: unknown session %v", req.Payload["session"])
	}
	return req, nil
}

// Approve answers link the way the wallet does when the user accepts, and
// returns the redirect URL.
func (w *Wallet) Approve(link string) (string, error) {
	req, err := w.Read(link)
	if err != nil {
		return "", err
	}
	switch req.Operation {
	case domain.OpConnect:
		dappPub, err := codec.DecodeBase58(req.Params.Get(deeplink.ParamDappPublicKey))
		if err != nil {
			return "", err
		}
		w.shared, err = channel.DeriveSharedKey(w.encPriv, dappPub)
		if err != nil {
			return "", err
		}
		return w.respond(req.RedirectLink, map[string]string{
			"public_key": w.Account(),
			"session":    w.session,
		})
	case domain.OpDisconnect:
		w.shared.Destroy()
		w.shared = nil
		return req.RedirectLink, nil
	case domain.OpSignMessage:
		msg, err := codec.DecodeBase58(fmt.Sprint(req.Payload["message"]))
		if err != nil {
			return "", err
		}
		return w.respond(req.RedirectLink, map[string]string{
			"signature": w.sign(msg),
		})
	case domain.OpSignTransaction:
		return w.respond(req.RedirectLink, map[string]string{
			"transaction": fmt.Sprint(req.Payload["transaction"]),
		})
	case domain.OpSignAllTransactions:
		return w.respond(req.RedirectLink, map[string]any{
			"transactions": req.Payload["transactions"],
		})
	case domain.OpSignAndSendTransaction:
		tx, err := codec.DecodeBase58(fmt.Sprint(req.Payload["transaction"]))
		if err != nil {
			return "", err
		}
		return w.respond(req.RedirectLink, map[string]string{
			"signature": w.sign(tx),
		})
	}
	return "", fmt.Errorf("wallet: unsupported operation %q", req.Operation)
}

// Reject answers link with a wallet error.
func (w *Wallet) Reject(link, code, message string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(redirect.ParamErrorCode, code)
	q.Set(redirect.ParamErrorMessage, message)
	return u.Query().Get(deeplink.ParamRedirectLink) + "?" + q.Encode(), nil
}

// RespondRaw seals arbitrary plaintext to redirectLink under the session key.
func (w *Wallet) RespondRaw(redirectLink string, plaintext []byte) (string, error) {
	nonce, err := codec.NewNonce()
	if err != nil {
		return "", err
	}
	ct, err := crypto.SealBox(w.shared, nonce, plaintext)
	if err != nil {
		return "", err
	}
	return w.redirectURL(redirectLink, codec.EncodeBase58(ct), codec.EncodeBase58(nonce.Slice())), nil
}

func (w *Wallet) respond(redirectLink string, payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return w.RespondRaw(redirectLink, b)
}

func (w *Wallet) redirectURL(redirectLink, data, nonce string) string {
	q := url.Values{}
	q.Set(redirect.ParamNonce, nonce)
	q.Set(redirect.ParamData, data)
	q.Set(redirect.ParamWalletEncryptionKey, codec.EncodeBase58(w.EncPublic.Slice()))
	return redirectLink + "?" + q.Encode()
}

func (w *Wallet) sign(msg []byte) string {
	return codec.EncodeBase58(ed25519.Sign(w.accountKey, msg))
}
