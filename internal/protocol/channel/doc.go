// Package channel implements the encrypted payload channel between the
// dapp and the wallet.
//
// # Handshake
//
// The dapp publishes its X25519 public key in the connect deeplink. The
// wallet answers with its own X25519 key in cleartext plus a payload sealed
// under the NaCl box key both sides derive:
//
//	K = HSalsa20(X25519(dapp secret, wallet public), 0)
//
// Every later request and response is sealed under K with
// XSalsa20-Poly1305 and a fresh 24-byte nonce.
//
// # Errors
//
//   - ErrKeyAgreement: the wallet key is malformed or a low-order point.
//   - ErrMissingSecret: no key yet (not connected) or the key was destroyed.
//   - ErrAuthentication: the ciphertext or nonce failed the MAC check.
//   - ErrPayloadFormat: the plaintext is not JSON.
//
// The channel never falls back to unauthenticated decoding and never
// encrypts under an absent key.
package channel
