// Package crypto exposes the minimal primitives used by the bridge.
//
// Contents
//
//   - X25519 key generation and public-key recovery (GenerateX25519,
//     PublicFromPrivate)
//   - NaCl box precomputation with a low-order point check (PrecomputeBox)
//   - XSalsa20-Poly1305 sealing under a precomputed key (SealBox, OpenBox)
//   - Ed25519 verification and curve membership for wallet account keys
//     (VerifyEd25519, IsOnCurve)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Fixed-size key types come from internal/domain. Shared keys only travel
// as *domain.SharedKey handles; intermediate buffers are wiped with memzero.
package crypto
