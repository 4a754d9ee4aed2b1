// Package email defines the message data model shared across the forwarder.
package email

// Address is an email address with an optional display name.
type Address struct {
	Email string
	Name  string
}

// String formats the address as "Name <email>" when a display name is
// present, or the bare email otherwise.
func (a Address) String() string {
	if a.Name != "" {
		return a.Name + " <" + a.Email + ">"
	}
	return a.Email
}

// RawMessage is the inbound email event as delivered by the mail front.
// It is read-only to the decoding core; the raw body travels separately
// as a chunked byte stream.
type RawMessage struct {
	From    Address
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	RawSize int64
}

// DecodedContent is the structured result of decoding a raw message body.
//
// TextBody is never empty unless the original body was empty. HTMLBody,
// when set, is non-empty. ContentType is a lowercase MIME type token,
// e.g. "text/plain", "text/html", or the outer declared type when no
// section could be resolved.
type DecodedContent struct {
	TextBody    string
	HTMLBody    string
	ContentType string
}

// HasHTML reports whether an HTML body was resolved.
func (d DecodedContent) HasHTML() bool {
	return d.HTMLBody != ""
}
