package types

// Operation names a wallet deeplink method, e.g. "signMessage".
type Operation string

// Wallet deeplink methods understood by the bridge.
const (
	OpConnect                Operation = "connect"
	OpDisconnect             Operation = "disconnect"
	OpSignMessage            Operation = "signMessage"
	OpSignTransaction        Operation = "signTransaction"
	OpSignAllTransactions    Operation = "signAllTransactions"
	OpSignAndSendTransaction Operation = "signAndSendTransaction"
)

// Operations lists every operation in a stable order.
func Operations() []Operation {
	return []Operation{
		OpConnect,
		OpDisconnect,
		OpSignMessage,
		OpSignTransaction,
		OpSignAllTransactions,
		OpSignAndSendTransaction,
	}
}

// String returns the string form of the operation.
func (o Operation) String() string { return string(o) }

// Cluster identifies the chain cluster the wallet should use.
type Cluster string

// Known clusters.
const (
	ClusterMainnetBeta Cluster = "mainnet-beta"
	ClusterTestnet     Cluster = "testnet"
	ClusterDevnet      Cluster = "devnet"
)

// Valid reports whether c is a known cluster.
func (c Cluster) Valid() bool {
	switch c {
	case ClusterMainnetBeta, ClusterTestnet, ClusterDevnet:
		return true
	}
	return false
}

// String returns the string form of the cluster.
func (c Cluster) String() string { return string(c) }

// SessionToken is the opaque token the wallet issues on connect.
type SessionToken string

// String returns the string form of the token.
func (t SessionToken) String() string { return string(t) }

// Fingerprint is a short identifier for public keys presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }
