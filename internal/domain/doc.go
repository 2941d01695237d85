// Package domain defines the bridge's data models, error sentinels and
// contracts. It contains plain types (keys, session state, inbound events,
// results) and interfaces only.
package domain
