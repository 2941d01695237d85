// Package store provides persistence for walletlink.
//
// Three interchangeable domain.Storage backends hold raw records by key:
//   - FileStorage, one file per key under the home directory
//   - BoltStorage, a single bbolt database
//   - MemoryStorage, an in-process map
//
// On top of a backend, KeyPairStore keeps the dapp key pair and
// SessionStore keeps the connected session sealed under a passphrase.
// All methods are safe for concurrent use.
package store
