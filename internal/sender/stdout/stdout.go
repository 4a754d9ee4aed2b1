// Package stdout implements a Sender that prints forward payloads to
// standard output.
package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shineum/mail-forward-lite/internal/forward"
)

// Provider prints forward payloads in a human-readable format.
type Provider struct {
	// writer is the output destination, defaulting to os.Stdout.
	writer io.Writer
}

// New creates a stdout Provider that writes to os.Stdout.
func New() *Provider {
	return &Provider{writer: os.Stdout}
}

// NewWithWriter creates a stdout Provider that writes to the given writer.
// This is useful for testing.
func NewWithWriter(w io.Writer) *Provider {
	return &Provider{writer: w}
}

// Send prints the payload. It always succeeds.
func (p *Provider) Send(_ context.Context, payload *forward.Payload) error {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString(fmt.Sprintf("From: %s\n", formatAddress(payload.From)))
	b.WriteString(fmt.Sprintf("To: %s\n", formatRecipients(payload)))
	b.WriteString(fmt.Sprintf("Subject: %s\n", payload.Subject))

	if text, ok := payload.TextPart(); ok {
		b.WriteString("Body:\n")
		b.WriteString(text.Value + "\n")
	}
	if _, ok := payload.HTMLPart(); ok {
		b.WriteString("(HTML part included)\n")
	}

	b.WriteString("========================================\n")

	fmt.Fprint(p.writer, b.String())
	return nil
}

// Name returns the backend name.
func (p *Provider) Name() string {
	return "stdout"
}

func formatAddress(a forward.EmailAddress) string {
	if a.Name != "" {
		return fmt.Sprintf("%s <%s>", a.Name, a.Email)
	}
	return a.Email
}

func formatRecipients(payload *forward.Payload) string {
	var to []string
	for _, p := range payload.Personalizations {
		for _, addr := range p.To {
			to = append(to, formatAddress(addr))
		}
	}
	return strings.Join(to, ", ")
}
