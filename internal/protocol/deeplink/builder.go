package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"walletlink/internal/codec"
	"walletlink/internal/domain"
	"walletlink/internal/protocol/channel"
)

// Deeplink query parameters.
const (
	ParamDappPublicKey = "dapp_encryption_public_key"
	ParamCluster       = "cluster"
	ParamAppURL        = "app_url"
	ParamRedirectLink  = "redirect_link"
	ParamNonce         = "nonce"
	ParamPayload       = "payload"
)

// Display tells the wallet how to render a message to be signed.
type Display string

// Message renderings.
const (
	DisplayUTF8 Display = "utf8"
	DisplayHex  Display = "hex"
)

// SendOptions are forwarded to the wallet's transaction submission.
type SendOptions struct {
	SkipPreflight       bool   `json:"skipPreflight,omitempty"`
	PreflightCommitment string `json:"preflightCommitment,omitempty"`
	MaxRetries          int    `json:"maxRetries,omitempty"`
}

// Config describes where deeplinks go and where the wallet comes back to.
type Config struct {
	// WalletBaseURL is the universal-link prefix, e.g. https://phantom.app/ul/v1.
	WalletBaseURL string
	// RedirectBase is the dapp origin the wallet redirects to.
	RedirectBase string
	Cluster      domain.Cluster
	// AppURL identifies the dapp to the wallet on connect.
	AppURL string
	Routes Routes
}

// Builder produces deeplink URLs for one dapp key pair.
type Builder struct {
	cfg        Config
	dappPublic string
}

// NewBuilder validates cfg and returns a Builder for dappPublic.
func NewBuilder(cfg Config, dappPublic domain.X25519Public) (*Builder, error) {
	if cfg.Routes == nil {
		cfg.Routes = DefaultRoutes()
	}
	if err := cfg.Routes.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Cluster.Valid() {
		return nil, fmt.Errorf("unknown cluster %q", cfg.Cluster)
	}
	for name, raw := range map[string]string{
		"wallet base URL": cfg.WalletBaseURL,
		"redirect base":   cfg.RedirectBase,
		"app URL":         cfg.AppURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid %s %q", name, raw)
		}
	}
	cfg.WalletBaseURL = strings.TrimRight(cfg.WalletBaseURL, "/")
	cfg.RedirectBase = strings.TrimRight(cfg.RedirectBase, "/")
	return &Builder{cfg: cfg, dappPublic: codec.EncodeBase58(dappPublic.Slice())}, nil
}

// RedirectLink returns the URL the wallet returns to after op.
func (b *Builder) RedirectLink(op domain.Operation) string {
	return b.cfg.RedirectBase + "/" + b.cfg.Routes[op]
}

// Connect returns the handshake deeplink. It needs no session.
func (b *Builder) Connect() (string, error) {
	params := url.Values{}
	params.Set(ParamDappPublicKey, b.dappPublic)
	params.Set(ParamCluster, b.cfg.Cluster.String())
	params.Set(ParamAppURL, b.cfg.AppURL)
	params.Set(ParamRedirectLink, b.RedirectLink(domain.OpConnect))
	return b.url(domain.OpConnect, params), nil
}

type sessionPayload struct {
	Session domain.SessionToken `json:"session"`
}

// Disconnect returns the deeplink that ends the wallet session.
func (b *Builder) Disconnect(state *domain.SessionState) (string, error) {
	if !state.Connected() {
		return "", domain.ErrNotConnected
	}
	return b.sealed(domain.OpDisconnect, state, sessionPayload{Session: state.Session})
}

type signMessagePayload struct {
	Session domain.SessionToken `json:"session"`
	Message string              `json:"message"`
	Display Display             `json:"display,omitempty"`
}

// SignMessage asks the wallet to sign message. display may be empty.
func (b *Builder) SignMessage(state *domain.SessionState, message []byte, display Display) (string, error) {
	if !state.Connected() {
		return "", domain.ErrNotConnected
	}
	if len(message) == 0 {
		return "", fmt.Errorf("%w: empty message", domain.ErrPayloadFormat)
	}
	switch display {
	case "", DisplayUTF8, DisplayHex:
	default:
		return "", fmt.Errorf("unknown display %q", display)
	}
	return b.sealed(domain.OpSignMessage, state, signMessagePayload{
		Session: state.Session,
		Message: codec.EncodeBase58(message),
		Display: display,
	})
}

type signTransactionPayload struct {
	Session     domain.SessionToken `json:"session"`
	Transaction string              `json:"transaction"`
	SendOptions *SendOptions        `json:"sendOptions,omitempty"`
}

// SignTransaction asks the wallet to sign one serialised transaction.
func (b *Builder) SignTransaction(state *domain.SessionState, tx []byte) (string, error) {
	if !state.Connected() {
		return "", domain.ErrNotConnected
	}
	if len(tx) == 0 {
		return "", fmt.Errorf("%w: empty transaction", domain.ErrPayloadFormat)
	}
	return b.sealed(domain.OpSignTransaction, state, signTransactionPayload{
		Session:     state.Session,
		Transaction: codec.EncodeBase58(tx),
	})
}

type signAllTransactionsPayload struct {
	Session      domain.SessionToken `json:"session"`
	Transactions []string            `json:"transactions"`
}

// SignAllTransactions asks the wallet to sign every transaction in txs.
func (b *Builder) SignAllTransactions(state *domain.SessionState, txs [][]byte) (string, error) {
	if !state.Connected() {
		return "", domain.ErrNotConnected
	}
	if len(txs) == 0 {
		return "", fmt.Errorf("%w: no transactions", domain.ErrPayloadFormat)
	}
	encoded := make([]string, len(txs))
	for i, tx := range txs {
		if len(tx) == 0 {
			return "", fmt.Errorf("%w: transaction %d is empty", domain.ErrPayloadFormat, i)
		}
		encoded[i] = codec.EncodeBase58(tx)
	}
	return b.sealed(domain.OpSignAllTransactions, state, signAllTransactionsPayload{
		Session:      state.Session,
		Transactions: encoded,
	})
}

// SignAndSendTransaction asks the wallet to sign tx and submit it.
// opts may be nil.
func (b *Builder) SignAndSendTransaction(
	state *domain.SessionState,
	tx []byte,
	opts *SendOptions,
) (string, error) {
	if !state.Connected() {
		return "", domain.ErrNotConnected
	}
	if len(tx) == 0 {
		return "", fmt.Errorf("%w: empty transaction", domain.ErrPayloadFormat)
	}
	return b.sealed(domain.OpSignAndSendTransaction, state, signTransactionPayload{
		Session:     state.Session,
		Transaction: codec.EncodeBase58(tx),
		SendOptions: opts,
	})
}

// sealed encrypts payload under the session key and assembles the
// four-parameter request.
func (b *Builder) sealed(op domain.Operation, state *domain.SessionState, payload any) (string, error) {
	nonce, ct, err := channel.EncryptEncoded(payload, state.SharedKey)
	if err != nil {
		if errors.Is(err, domain.ErrMissingSecret) {
			// Destroyed between the Connected check and the seal.
			return "", domain.ErrNotConnected
		}
		return "", err
	}
	params := url.Values{}
	params.Set(ParamDappPublicKey, b.dappPublic)
	params.Set(ParamNonce, nonce)
	params.Set(ParamRedirectLink, b.RedirectLink(op))
	params.Set(ParamPayload, ct)
	return b.url(op, params), nil
}

func (b *Builder) url(op domain.Operation, params url.Values) string {
	return b.cfg.WalletBaseURL + "/" + op.String() + "?" + params.Encode()
}
