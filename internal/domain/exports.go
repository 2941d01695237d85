package domain

import (
	interfaces "walletlink/internal/domain/interfaces"
	types "walletlink/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Operation             = types.Operation
	Cluster               = types.Cluster
	SessionToken          = types.SessionToken
	Fingerprint           = types.Fingerprint
	X25519Public          = types.X25519Public
	X25519Private         = types.X25519Private
	Ed25519Public         = types.Ed25519Public
	Nonce                 = types.Nonce
	DappKeyPair           = types.DappKeyPair
	SharedKey             = types.SharedKey
	SessionState          = types.SessionState
	SessionRecord         = types.SessionRecord
	EventKind             = types.EventKind
	InboundEvent          = types.InboundEvent
	ResultKind            = types.ResultKind
	Result                = types.Result
	Connected             = types.Connected
	Disconnected          = types.Disconnected
	SignedMessage         = types.SignedMessage
	SignedTransaction     = types.SignedTransaction
	SignedAllTransactions = types.SignedAllTransactions
	SentTransaction       = types.SentTransaction
	PublicKeyReported     = types.PublicKeyReported
	OperationFailed       = types.OperationFailed
	Ignored               = types.Ignored
	Unrecognized          = types.Unrecognized
	WalletError           = types.WalletError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Storage        = interfaces.Storage
	KeyPairStore   = interfaces.KeyPairStore
	SessionStore   = interfaces.SessionStore
	KeyService     = interfaces.KeyService
	SessionService = interfaces.SessionService
)

// Operations.
const (
	OpConnect                = types.OpConnect
	OpDisconnect             = types.OpDisconnect
	OpSignMessage            = types.OpSignMessage
	OpSignTransaction        = types.OpSignTransaction
	OpSignAllTransactions    = types.OpSignAllTransactions
	OpSignAndSendTransaction = types.OpSignAndSendTransaction
)

// Clusters.
const (
	ClusterMainnetBeta = types.ClusterMainnetBeta
	ClusterTestnet     = types.ClusterTestnet
	ClusterDevnet      = types.ClusterDevnet
)

// Inbound event kinds.
const (
	EventUnrecognized           = types.EventUnrecognized
	EventConnect                = types.EventConnect
	EventDisconnect             = types.EventDisconnect
	EventSignMessage            = types.EventSignMessage
	EventSignTransaction        = types.EventSignTransaction
	EventSignAllTransactions    = types.EventSignAllTransactions
	EventSignAndSendTransaction = types.EventSignAndSendTransaction
	EventPublicKeyCallback      = types.EventPublicKeyCallback
	EventError                  = types.EventError
)

// Result kinds.
const (
	KindConnected             = types.KindConnected
	KindDisconnected          = types.KindDisconnected
	KindSignedMessage         = types.KindSignedMessage
	KindSignedTransaction     = types.KindSignedTransaction
	KindSignedAllTransactions = types.KindSignedAllTransactions
	KindSentTransaction       = types.KindSentTransaction
	KindPublicKeyReported     = types.KindPublicKeyReported
	KindOperationFailed       = types.KindOperationFailed
	KindIgnored               = types.KindIgnored
	KindUnrecognized          = types.KindUnrecognized
)

// Error sentinels, matched with errors.Is.
var (
	ErrKeyAgreement   = types.ErrKeyAgreement
	ErrMissingSecret  = types.ErrMissingSecret
	ErrAuthentication = types.ErrAuthentication
	ErrPayloadFormat  = types.ErrPayloadFormat
	ErrDecode         = types.ErrDecode
	ErrNotConnected   = types.ErrNotConnected
	ErrInvalidRoutes  = types.ErrInvalidRoutes
)

// Operations lists every operation in a stable order.
func Operations() []Operation { return types.Operations() }

// NewSharedKey copies k into a new opaque handle.
func NewSharedKey(k *[32]byte) *SharedKey { return types.NewSharedKey(k) }
