// Package codec holds the bridge's pure encoding helpers.
//
// Byte fields cross the deeplink boundary as base58 text (Bitcoin alphabet,
// the one Solana wallets use). Payloads are JSON. Every encryption draws a
// fresh 24-byte nonce from crypto/rand; a nonce is never reused with the
// same key.
package codec
