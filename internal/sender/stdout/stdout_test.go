package stdout

import (
	"context"
	"strings"
	"testing"

	"github.com/shineum/mail-forward-lite/internal/forward"
)

func TestSendPrintsPayload(t *testing.T) {
	t.Parallel()

	payload := &forward.Payload{
		Personalizations: []forward.Personalization{
			{To: []forward.EmailAddress{{Email: "inbox@forward.example"}}},
		},
		From:    forward.EmailAddress{Email: "alice@example.com", Name: "Alice"},
		Subject: "[Forwarded] status",
		Content: []forward.ContentPart{
			{Type: "text/plain", Value: "the body"},
			{Type: "text/html", Value: "<b>the body</b>"},
		},
	}

	var out strings.Builder
	p := NewWithWriter(&out)

	if err := p.Send(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"From: Alice <alice@example.com>",
		"To: inbox@forward.example",
		"Subject: [Forwarded] status",
		"the body",
		"(HTML part included)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSendTextOnly(t *testing.T) {
	t.Parallel()

	payload := &forward.Payload{
		Personalizations: []forward.Personalization{
			{To: []forward.EmailAddress{{Email: "inbox@forward.example"}}},
		},
		From:    forward.EmailAddress{Email: "a@b.c"},
		Subject: "[Forwarded] plain",
		Content: []forward.ContentPart{
			{Type: "text/plain", Value: "only text"},
		},
	}

	var out strings.Builder
	if err := NewWithWriter(&out).Send(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out.String(), "HTML part") {
		t.Errorf("output should not mention an HTML part:\n%s", out.String())
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	if got := New().Name(); got != "stdout" {
		t.Errorf("Name: got %q, want %q", got, "stdout")
	}
}
