// Package keys owns the dapp's long-lived X25519 key pair.
//
// The pair is generated on first use and persisted through a
// domain.KeyPairStore. A record that cannot be read back is replaced rather
// than repaired, so the dapp always has a usable key; only a failure to
// persist the replacement is reported.
package keys
