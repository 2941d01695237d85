// Package app wires application dependencies for the CLI and the callback
// daemon.
//
// It loads Config from config.yaml in the home directory, builds the
// storage backend, key and session services, request builder and router
// from it, and exposes them via Wire.
package app
