package deeplink

import (
	"fmt"
	"strings"

	"walletlink/internal/domain"
)

// PublicKeyCallbackPath is where the bare public_key connect flow returns.
const PublicKeyCallbackPath = "wallet/callback"

// Routes maps each operation to the redirect path segment its response
// comes back on.
type Routes map[domain.Operation]string

// DefaultRoutes returns the on<Method> segments wallets conventionally use.
func DefaultRoutes() Routes {
	return Routes{
		domain.OpConnect:                "onConnect",
		domain.OpDisconnect:             "onDisconnect",
		domain.OpSignMessage:            "onSignMessage",
		domain.OpSignTransaction:        "onSignTransaction",
		domain.OpSignAllTransactions:    "onSignAllTransactions",
		domain.OpSignAndSendTransaction: "onSignAndSendTransaction",
	}
}

// Validate checks that every operation has a single, distinct segment.
func (r Routes) Validate() error {
	seen := make(map[string]domain.Operation, len(r))
	for _, op := range domain.Operations() {
		seg, ok := r[op]
		if !ok || seg == "" {
			return fmt.Errorf("%w: no redirect segment for %s", domain.ErrInvalidRoutes, op)
		}
		if strings.ContainsAny(seg, "/?#") {
			return fmt.Errorf("%w: segment %q for %s must be a single path segment",
				domain.ErrInvalidRoutes, seg, op)
		}
		if prev, dup := seen[seg]; dup {
			return fmt.Errorf("%w: %s and %s both redirect to %q",
				domain.ErrInvalidRoutes, prev, op, seg)
		}
		seen[seg] = op
	}
	return nil
}

// Lookup returns the operation whose responses arrive on segment.
func (r Routes) Lookup(segment string) (domain.Operation, bool) {
	for op, seg := range r {
		if seg == segment {
			return op, true
		}
	}
	return "", false
}

// WithDefaults returns a copy of r with unset operations filled from
// DefaultRoutes.
func (r Routes) WithDefaults() Routes {
	out := DefaultRoutes()
	for op, seg := range r {
		if seg != "" {
			out[op] = seg
		}
	}
	return out
}
