package types

import (
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

// EventKind tags an inbound redirect.
type EventKind int

// Inbound redirect variants.
const (
	EventUnrecognized EventKind = iota
	EventConnect
	EventDisconnect
	EventSignMessage
	EventSignTransaction
	EventSignAllTransactions
	EventSignAndSendTransaction
	EventPublicKeyCallback
	EventError
)

var eventKindNames = map[EventKind]string{
	EventUnrecognized:           "unrecognized",
	EventConnect:                "connect",
	EventDisconnect:             "disconnect",
	EventSignMessage:            "sign-message",
	EventSignTransaction:        "sign-transaction",
	EventSignAllTransactions:    "sign-all-transactions",
	EventSignAndSendTransaction: "sign-and-send-transaction",
	EventPublicKeyCallback:      "public-key-callback",
	EventError:                  "error",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// InboundEvent is one wallet redirect, classified by its target path.
type InboundEvent struct {
	Kind EventKind
	// Tag is the last path segment of the redirect target, e.g. "onConnect".
	Tag string
	// Operation is the outbound operation the tag answers; empty when the
	// tag is not a configured route.
	Operation Operation
	Params    url.Values
}

// ResultKind names the outcome of handling an inbound event.
type ResultKind string

// Outcomes emitted by the router.
const (
	KindConnected             ResultKind = "connected"
	KindDisconnected          ResultKind = "disconnected"
	KindSignedMessage         ResultKind = "signed-message"
	KindSignedTransaction     ResultKind = "signed-transaction"
	KindSignedAllTransactions ResultKind = "signed-all-transactions"
	KindSentTransaction       ResultKind = "sent-transaction"
	KindPublicKeyReported     ResultKind = "public-key-reported"
	KindOperationFailed       ResultKind = "operation-failed"
	KindIgnored               ResultKind = "ignored"
	KindUnrecognized          ResultKind = "unrecognized"
)

// Result is a discrete, loggable outcome.
type Result interface {
	Kind() ResultKind
	String() string
	Fields() log.Fields
}

// Connected is emitted after a successful encrypted handshake.
type Connected struct {
	// WalletPublicKey is the base58 account key.
	WalletPublicKey string
}

func (Connected) Kind() ResultKind { return KindConnected }
func (r Connected) String() string { return "connected: " + r.WalletPublicKey }
func (r Connected) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "wallet": r.WalletPublicKey}
}

// Disconnected is emitted when the wallet confirms a disconnect.
type Disconnected struct{}

func (Disconnected) Kind() ResultKind     { return KindDisconnected }
func (Disconnected) String() string       { return "disconnected" }
func (r Disconnected) Fields() log.Fields { return log.Fields{"result": r.Kind()} }

// SignedMessage carries the wallet's base58 signature over the message.
type SignedMessage struct {
	Signature string
}

func (SignedMessage) Kind() ResultKind { return KindSignedMessage }
func (r SignedMessage) String() string { return "signed message: " + r.Signature }
func (r SignedMessage) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "signature": r.Signature}
}

// SignedTransaction carries the signed, serialised transaction (base58).
type SignedTransaction struct {
	Transaction string
}

func (SignedTransaction) Kind() ResultKind { return KindSignedTransaction }
func (r SignedTransaction) String() string { return "signed transaction: " + r.Transaction }
func (r SignedTransaction) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "bytes_b58": len(r.Transaction)}
}

// SignedAllTransactions carries every signed transaction in request order.
type SignedAllTransactions struct {
	Transactions []string
}

func (SignedAllTransactions) Kind() ResultKind { return KindSignedAllTransactions }
func (r SignedAllTransactions) String() string {
	return fmt.Sprintf("signed %d transactions: %s", len(r.Transactions), strings.Join(r.Transactions, ","))
}
func (r SignedAllTransactions) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "count": len(r.Transactions)}
}

// SentTransaction carries the signature of a transaction the wallet submitted.
type SentTransaction struct {
	Signature string
}

func (SentTransaction) Kind() ResultKind { return KindSentTransaction }
func (r SentTransaction) String() string { return "sent transaction: " + r.Signature }
func (r SentTransaction) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "signature": r.Signature}
}

// PublicKeyReported comes from the bare public_key callback. Nothing proves
// the caller controls the key, so it never establishes a session.
type PublicKeyReported struct {
	PublicKey     string
	Authenticated bool
}

func (PublicKeyReported) Kind() ResultKind { return KindPublicKeyReported }
func (r PublicKeyReported) String() string {
	return "public key reported (unauthenticated): " + r.PublicKey
}
func (r PublicKeyReported) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "public_key": r.PublicKey, "authenticated": r.Authenticated}
}

// OperationFailed wraps a wallet-reported or local failure.
type OperationFailed struct {
	Operation Operation
	Cause     error
}

func (OperationFailed) Kind() ResultKind { return KindOperationFailed }
func (r OperationFailed) String() string {
	if r.Operation == "" {
		return fmt.Sprintf("operation failed: %v", r.Cause)
	}
	return fmt.Sprintf("%s failed: %v", r.Operation, r.Cause)
}
func (r OperationFailed) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "op": r.Operation, "cause": r.Cause}
}

// Ignored marks a navigation that is not a wallet response.
type Ignored struct{}

func (Ignored) Kind() ResultKind     { return KindIgnored }
func (Ignored) String() string       { return "ignored" }
func (r Ignored) Fields() log.Fields { return log.Fields{"result": r.Kind()} }

// Unrecognized marks a payload-bearing redirect to an unknown target.
type Unrecognized struct {
	Tag string
}

func (Unrecognized) Kind() ResultKind { return KindUnrecognized }
func (r Unrecognized) String() string { return "unrecognized redirect: " + r.Tag }
func (r Unrecognized) Fields() log.Fields {
	return log.Fields{"result": r.Kind(), "tag": r.Tag}
}
