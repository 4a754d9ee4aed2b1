// Package handler orchestrates the per-message forwarding pipeline:
// assemble the raw stream, decode the body, compose the forward envelope,
// and hand the payload to the delivery backend.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shineum/mail-forward-lite/internal/decoder"
	"github.com/shineum/mail-forward-lite/internal/email"
	"github.com/shineum/mail-forward-lite/internal/forward"
	"github.com/shineum/mail-forward-lite/internal/sender"
	"github.com/shineum/mail-forward-lite/internal/stream"
)

// ErrForwardAddressMissing is returned when no forward-to address is
// configured. It is detected before any stream read or send attempt.
var ErrForwardAddressMissing = errors.New("no forwarding address configured")

// Receipt describes one completed forward.
type Receipt struct {
	ForwardID   string
	Backend     string
	ContentType string
}

// Handler forwards inbound messages to a fixed address through a delivery
// backend. It holds no per-message state and is safe for concurrent use.
type Handler struct {
	forwardTo string
	sender    sender.Sender
	maxSize   int64
	now       func() time.Time
}

// New creates a Handler. forwardTo is the fixed forward address; maxSize
// caps the buffered message size in bytes (zero means unlimited).
func New(forwardTo string, s sender.Sender, maxSize int64) *Handler {
	return &Handler{
		forwardTo: forwardTo,
		sender:    s,
		maxSize:   maxSize,
		now:       time.Now,
	}
}

// Configured reports whether a forwarding address is set.
func (h *Handler) Configured() bool {
	return h.forwardTo != ""
}

// Handle processes one inbound message: it drains body into text, decodes
// the content, composes the forward payload, and sends it. Each message is
// a single sequential task; no retry is performed on failure.
//
// The body reader is released even when forwarding is aborted early.
func (h *Handler) Handle(ctx context.Context, msg *email.RawMessage, body stream.ChunkReader) (*Receipt, error) {
	if !h.Configured() {
		body.Release()
		return nil, ErrForwardAddressMissing
	}

	text, err := stream.Assemble(ctx, body, h.maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble message body: %w", err)
	}

	content := decoder.Decode(text)
	payload := forward.Compose(msg, content, h.forwardTo, h.now())

	if err := h.sender.Send(ctx, payload); err != nil {
		return nil, err
	}

	receipt := &Receipt{
		ForwardID:   uuid.NewString(),
		Backend:     h.sender.Name(),
		ContentType: content.ContentType,
	}

	slog.Info("message forwarded",
		"forward_id", receipt.ForwardID,
		"backend", receipt.Backend,
		"from", msg.From.Email,
		"subject", msg.Subject,
		"content_type", content.ContentType,
		"html", content.HasHTML(),
	)

	return receipt, nil
}
