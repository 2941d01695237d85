// Package deeplink builds the outbound wallet deeplinks.
//
// Every builder returns a complete URL of the form
//
//	<WalletBaseURL>/<method>?<params>
//
// and never navigates: opening the link is the caller's concern. Connect
// carries only the dapp public key; every other operation carries a payload
// sealed under the session's shared key and fails with ErrNotConnected when
// there is no session.
//
// Each operation redirects back to its own path segment under RedirectBase
// (see Routes). Inbound redirects are classified by that segment alone, so
// two operations sharing a segment is rejected up front.
package deeplink
