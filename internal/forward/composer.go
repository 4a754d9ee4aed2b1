// Package forward composes the forwarded-message envelope and the outbound
// send payload.
package forward

import (
	"fmt"
	"strings"
	"time"

	"github.com/shineum/mail-forward-lite/internal/email"
)

// SubjectPrefix marks forwarded subjects on the outbound message.
const SubjectPrefix = "[Forwarded] "

// banner is the first line of the forwarded-message envelope.
const banner = "---------- Forwarded message ----------"

// Compose wraps decoded content in a forwarded-message envelope and builds
// the outbound payload: one recipient (the forward address), the original
// sender echoed verbatim, the prefixed subject, a text/plain part, and a
// text/html part iff an HTML body was resolved.
func Compose(msg *email.RawMessage, content email.DecodedContent, forwardTo string, now time.Time) *Payload {
	payload := &Payload{
		Personalizations: []Personalization{
			{To: []EmailAddress{{Email: forwardTo}}},
		},
		From: EmailAddress{
			Email: msg.From.Email,
			Name:  msg.From.Name,
		},
		Subject: SubjectPrefix + msg.Subject,
		Content: []ContentPart{
			{Type: "text/plain", Value: composeText(msg, content.TextBody, now)},
		},
	}

	if content.HasHTML() {
		payload.Content = append(payload.Content, ContentPart{
			Type:  "text/html",
			Value: composeHTML(msg, content.HTMLBody, now),
		})
	}

	return payload
}

// composeText builds the plain-text envelope: banner, From/To/Subject/Date
// header lines, a blank line, then the body, trimmed as a whole.
func composeText(msg *email.RawMessage, body string, now time.Time) string {
	var b strings.Builder

	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "From: %s\n", msg.From.String())
	fmt.Fprintf(&b, "To: %s\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\n", now.Format(time.RFC1123Z))
	b.WriteString("\n")
	b.WriteString(body)

	return strings.TrimSpace(b.String())
}

// composeHTML builds a minimal HTML document: the same envelope fields with
// address and subject text entity-escaped, followed by the resolved HTML
// body embedded verbatim.
func composeHTML(msg *email.RawMessage, htmlBody string, now time.Time) string {
	var b strings.Builder

	b.WriteString("<html><body>\n<div>\n")
	b.WriteString(banner + "<br>\n")
	fmt.Fprintf(&b, "From: %s<br>\n", escapeHTML(msg.From.String()))
	fmt.Fprintf(&b, "To: %s<br>\n", escapeHTML(strings.Join(msg.To, ", ")))
	fmt.Fprintf(&b, "Subject: %s<br>\n", escapeHTML(msg.Subject))
	fmt.Fprintf(&b, "Date: %s<br>\n", now.Format(time.RFC1123Z))
	b.WriteString("</div>\n<br>\n")
	b.WriteString(htmlBody)
	b.WriteString("\n</body></html>")

	return b.String()
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeHTML escapes &, < and > so that "Name <addr>" renders literally
// inside the HTML envelope.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
