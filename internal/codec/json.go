package codec

import (
	"encoding/json"
	"fmt"

	"walletlink/internal/domain"
)

// MarshalPayload serialises v as JSON.
func MarshalPayload(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPayloadFormat, err)
	}
	return b, nil
}

// UnmarshalPayload parses JSON into v. Malformed input fails with
// domain.ErrPayloadFormat.
func UnmarshalPayload(b []byte, v any) error {
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPayloadFormat, err)
	}
	return nil
}
