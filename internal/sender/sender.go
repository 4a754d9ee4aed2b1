// Package sender defines the interface for outbound mail delivery backends.
package sender

import (
	"context"
	"fmt"

	"github.com/shineum/mail-forward-lite/internal/forward"
)

// Sender delivers a composed forward payload. Implementations perform a
// single attempt; a failure propagates to the caller unmodified, with no
// retry anywhere in the delivery path.
type Sender interface {
	// Send delivers the payload. It returns an error if delivery fails.
	Send(ctx context.Context, payload *forward.Payload) error

	// Name returns the human-readable name of this backend.
	Name() string
}

// SendError is a delivery failure reported by the remote API. It preserves
// the HTTP status and response body for diagnosis.
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send failed with status %d: %s", e.StatusCode, e.Body)
}
