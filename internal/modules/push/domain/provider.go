package domain

import "context"

// Payload is what lands on the device: a visible title/body pair and
// opaque data the client uses for deep-linking.
type Payload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// SendResult pairs one submitted token with its outcome. Keeping the
// pairing explicit (instead of correlating two parallel arrays by
// index) is what makes token reconciliation safe to write.
type SendResult struct {
	Token string
	// Invalid means the provider rejected this token permanently and
	// its registration should be removed.
	Invalid bool
	Err     error
}

// Provider is the outbound push collaborator. Send returns one result
// per submitted token, in submission order. A non-nil error means the
// whole batch failed (network, auth); per-token outcomes are then
// unknown and no token may be treated as invalid.
type Provider interface {
	Send(ctx context.Context, tokens []string, payload Payload) ([]SendResult, error)
}
