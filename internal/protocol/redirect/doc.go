// Package redirect turns inbound wallet redirects into typed results.
//
// The dapp keeps no record of which request is outstanding: the process
// that built the deeplink may be gone by the time the wallet redirects
// back. Meaning is recovered from the redirect URL alone. Its last path
// segment is looked up in the route table and the query carries the
// response.
//
// Router.Handle is a pure transition
//
//	(state, event) -> (next state, result)
//
// over an immutable *domain.SessionState. Failures to decrypt or decode are
// reported as an OperationFailed result and leave the state untouched; a
// malformed redirect never panics and never surfaces as a Go error.
package redirect
