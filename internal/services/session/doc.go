// Package session holds the process-wide wallet session.
//
// A Holder keeps the current *domain.SessionState behind an atomic pointer.
// Readers never block; Apply swaps in the state a router run produced,
// wipes the shared key that is no longer referenced, and, when a store is
// configured, keeps the sealed on-disk record in step.
package session
