package redirect

import (
	"fmt"
	"time"

	"walletlink/internal/codec"
	"walletlink/internal/crypto"
	"walletlink/internal/domain"
	"walletlink/internal/protocol/channel"
	"walletlink/internal/protocol/deeplink"
)

// Router maps inbound redirects to results and session transitions.
type Router struct {
	keys   domain.KeyService
	routes deeplink.Routes
	now    func() time.Time
}

// NewRouter returns a Router that reads the dapp key pair from keys.
// A nil routes table means DefaultRoutes.
func NewRouter(keys domain.KeyService, routes deeplink.Routes) (*Router, error) {
	if routes == nil {
		routes = deeplink.DefaultRoutes()
	}
	if err := routes.Validate(); err != nil {
		return nil, err
	}
	return &Router{keys: keys, routes: routes, now: time.Now}, nil
}

// Routes returns the route table the router classifies against.
func (r *Router) Routes() deeplink.Routes { return r.routes }

// HandleURL parses raw and handles the resulting event.
func (r *Router) HandleURL(state *domain.SessionState, raw string) (*domain.SessionState, domain.Result) {
	ev, err := ParseEvent(raw, r.routes)
	if err != nil {
		return state, domain.OperationFailed{Cause: err}
	}
	return r.Handle(state, ev)
}

// Handle applies one inbound event to state.
//
// The returned state is either state itself, a new connected state, or nil
// after a disconnect. state may be nil.
func (r *Router) Handle(state *domain.SessionState, ev domain.InboundEvent) (*domain.SessionState, domain.Result) {
	switch ev.Kind {
	case domain.EventError:
		return state, domain.OperationFailed{
			Operation: ev.Operation,
			Cause: &domain.WalletError{
				Code:    ev.Params.Get(ParamErrorCode),
				Message: ev.Params.Get(ParamErrorMessage),
			},
		}
	case domain.EventDisconnect:
		// Terminal whether or not the wallet sent a payload.
		return nil, domain.Disconnected{}
	case domain.EventPublicKeyCallback:
		return state, domain.PublicKeyReported{PublicKey: reportedPublicKey(ev.Params)}
	}

	data, nonce := ev.Params.Get(ParamData), ev.Params.Get(ParamNonce)
	if data == "" || nonce == "" {
		// An ordinary page load, not a wallet response.
		return state, domain.Ignored{}
	}

	switch ev.Kind {
	case domain.EventConnect:
		next, res, err := r.connect(ev, data, nonce)
		if err != nil {
			return state, fail(ev, err)
		}
		return next, res
	case domain.EventSignMessage:
		var resp struct {
			Signature string `json:"signature"`
		}
		if err := open(state, data, nonce, &resp); err != nil {
			return state, fail(ev, err)
		}
		if resp.Signature == "" {
			return state, fail(ev, missing("signature"))
		}
		return state, domain.SignedMessage{Signature: resp.Signature}
	case domain.EventSignTransaction:
		var resp struct {
			Transaction string `json:"transaction"`
		}
		if err := open(state, data, nonce, &resp); err != nil {
			return state, fail(ev, err)
		}
		if resp.Transaction == "" {
			return state, fail(ev, missing("transaction"))
		}
		return state, domain.SignedTransaction{Transaction: resp.Transaction}
	case domain.EventSignAllTransactions:
		var resp struct {
			Transactions []string `json:"transactions"`
		}
		if err := open(state, data, nonce, &resp); err != nil {
			return state, fail(ev, err)
		}
		if len(resp.Transactions) == 0 {
			return state, fail(ev, missing("transactions"))
		}
		return state, domain.SignedAllTransactions{Transactions: resp.Transactions}
	case domain.EventSignAndSendTransaction:
		var resp struct {
			Signature string `json:"signature"`
		}
		if err := open(state, data, nonce, &resp); err != nil {
			return state, fail(ev, err)
		}
		if resp.Signature == "" {
			return state, fail(ev, missing("signature"))
		}
		return state, domain.SentTransaction{Signature: resp.Signature}
	}
	return state, domain.Unrecognized{Tag: ev.Tag}
}

type connectResponse struct {
	PublicKey string              `json:"public_key"`
	Session   domain.SessionToken `json:"session"`
}

// connect completes the handshake: the wallet's encryption key arrives in
// cleartext, the payload is sealed under the key derived from it.
func (r *Router) connect(ev domain.InboundEvent, data, nonce string) (*domain.SessionState, domain.Result, error) {
	walletEnc, err := codec.DecodeBase58(ev.Params.Get(ParamWalletEncryptionKey))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ParamWalletEncryptionKey, err)
	}
	kp, err := r.keys.LoadOrCreateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	key, err := channel.DeriveSharedKey(kp.SecretKey, walletEnc)
	if err != nil {
		return nil, nil, err
	}

	var resp connectResponse
	if err := channel.OpenEncoded(data, nonce, key, &resp); err != nil {
		key.Destroy()
		return nil, nil, err
	}
	walletPub, err := ParseWalletPublicKey(resp.PublicKey)
	if err != nil {
		key.Destroy()
		return nil, nil, err
	}
	if resp.Session == "" {
		key.Destroy()
		return nil, nil, missing("session")
	}

	next := &domain.SessionState{
		Session:             resp.Session,
		WalletPublicKey:     walletPub,
		WalletEncryptionKey: domain.X25519Public(walletEnc),
		SharedKey:           key,
		ConnectedAt:         r.now(),
	}
	return next, domain.Connected{WalletPublicKey: resp.PublicKey}, nil
}

// ParseWalletPublicKey decodes a base58 wallet account key and checks that
// it is a point on edwards25519.
func ParseWalletPublicKey(s string) (domain.Ed25519Public, error) {
	var pub domain.Ed25519Public
	b, err := codec.DecodeBase58Fixed(s, len(pub))
	if err != nil {
		return pub, fmt.Errorf("public_key: %w", err)
	}
	if !crypto.IsOnCurve(b) {
		return pub, fmt.Errorf("%w: public_key is not an ed25519 point", domain.ErrPayloadFormat)
	}
	copy(pub[:], b)
	return pub, nil
}

// VerifyMessageSignature checks a SignedMessage signature against the
// connected wallet key.
func VerifyMessageSignature(wallet domain.Ed25519Public, message []byte, signature string) error {
	sig, err := codec.DecodeBase58(signature)
	if err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	if !crypto.VerifyEd25519(wallet, message, sig) {
		return domain.ErrAuthentication
	}
	return nil
}

func open(state *domain.SessionState, data, nonce string, v any) error {
	if !state.Connected() {
		return domain.ErrMissingSecret
	}
	return channel.OpenEncoded(data, nonce, state.SharedKey, v)
}

func fail(ev domain.InboundEvent, err error) domain.Result {
	return domain.OperationFailed{Operation: ev.Operation, Cause: err}
}

func missing(field string) error {
	return fmt.Errorf("%w: response has no %s", domain.ErrPayloadFormat, field)
}

// FormatWalletPublicKey renders a wallet account key the way the wallet
// reports it.
func FormatWalletPublicKey(pub domain.Ed25519Public) string {
	return codec.EncodeBase58(pub.Slice())
}
