// Package commands defines the walletlink CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init                       Create the home dir, config and dapp key pair
//   - pubkey                     Print the dapp encryption public key
//   - connect                    Print a connect deeplink
//   - disconnect                 Print a disconnect deeplink
//   - sign-message               Print a sign-message deeplink
//   - sign-transaction           Print a sign-transaction deeplink
//   - sign-all-transactions      Print a sign-all-transactions deeplink
//   - sign-and-send-transaction  Print a sign-and-send-transaction deeplink
//   - handle                     Process a redirect URL the wallet sent back
//   - status                     Show the current session
//
// # Implementation
//
// The root command loads config.yaml and builds the dependency graph
// (storage, key and session services, builder, router) before any
// subcommand runs. Deeplinks go to stdout; diagnostics go to stderr via
// logrus. With a passphrase the session is kept, sealed, between runs, so
// "connect" and "handle" can be separate invocations.
package commands
