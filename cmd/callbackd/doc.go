// Package main runs the callback daemon: the HTTP endpoint a wallet
// redirects back to after a deeplink request.
//
// HTTP API
//
//	GET /{segment}?...
//	    Run the redirect through the router. {segment} is one of the
//	    configured route segments (onConnect, onSignMessage, ...). The
//	    response is a one-line plain-text outcome.
//
//	GET /wallet/callback?public_key=...
//	    The bare public key report. Logged, never treated as a session.
//
//	GET /ping
//	    Liveness check.
//
// Behaviour
//
//   - State lives in the same home directory as the walletlink CLI. With
//     -p the session is sealed to disk after every change, so deeplinks can
//     be built by the CLI and answered here.
//   - Redirects are handled one at a time.
//   - Failed operations answer 400; everything else answers 200.
//   - The default listen address comes from config.yaml (127.0.0.1:8787).
package main
