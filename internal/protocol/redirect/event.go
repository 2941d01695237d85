package redirect

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"walletlink/internal/domain"
	"walletlink/internal/protocol/deeplink"
)

// Redirect query parameters.
const (
	ParamData                = "data"
	ParamNonce               = "nonce"
	ParamWalletEncryptionKey = "phantom_encryption_public_key"
	ParamErrorCode           = "errorCode"
	ParamErrorMessage        = "errorMessage"
	ParamPublicKey           = "public_key"
	ParamPubkey              = "pubkey"
)

var publicKeyCallbackTag = path.Base(deeplink.PublicKeyCallbackPath)

// ParseEvent parses a redirect URL and classifies it against routes.
//
// Query parameters are read from the query string, or from the fragment
// when the query is empty and the fragment looks like one.
func ParseEvent(raw string, routes deeplink.Routes) (domain.InboundEvent, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return domain.InboundEvent{}, fmt.Errorf("%w: redirect url: %v", domain.ErrPayloadFormat, err)
	}
	query := u.RawQuery
	if query == "" && strings.Contains(u.Fragment, "=") {
		query = u.Fragment
	}
	params, err := url.ParseQuery(query)
	if err != nil {
		return domain.InboundEvent{}, fmt.Errorf("%w: redirect query: %v", domain.ErrPayloadFormat, err)
	}
	return Classify(lastSegment(u.Path), params, routes), nil
}

// Classify tags an inbound redirect by its path segment and parameters.
func Classify(tag string, params url.Values, routes deeplink.Routes) domain.InboundEvent {
	if routes == nil {
		routes = deeplink.DefaultRoutes()
	}
	ev := domain.InboundEvent{Tag: tag, Params: params}
	op, routed := routes.Lookup(tag)
	if routed {
		ev.Operation = op
	}

	switch {
	case params.Get(ParamErrorCode) != "":
		ev.Kind = domain.EventError
	case routed && op != domain.OpConnect:
		ev.Kind = kindFor(op)
	case routed && params.Get(ParamData) != "":
		ev.Kind = domain.EventConnect
	case reportedPublicKey(params) != "" && (routed || tag == publicKeyCallbackTag):
		// The bare public_key flow. Kept apart from the encrypted handshake.
		ev.Kind = domain.EventPublicKeyCallback
	case routed:
		ev.Kind = domain.EventConnect
	default:
		ev.Kind = domain.EventUnrecognized
	}
	return ev
}

func kindFor(op domain.Operation) domain.EventKind {
	switch op {
	case domain.OpConnect:
		return domain.EventConnect
	case domain.OpDisconnect:
		return domain.EventDisconnect
	case domain.OpSignMessage:
		return domain.EventSignMessage
	case domain.OpSignTransaction:
		return domain.EventSignTransaction
	case domain.OpSignAllTransactions:
		return domain.EventSignAllTransactions
	case domain.OpSignAndSendTransaction:
		return domain.EventSignAndSendTransaction
	}
	return domain.EventUnrecognized
}

func reportedPublicKey(params url.Values) string {
	if pk := params.Get(ParamPublicKey); pk != "" {
		return pk
	}
	return params.Get(ParamPubkey)
}

func lastSegment(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
