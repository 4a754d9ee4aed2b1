// Package decoder converts a raw message body into structured content.
//
// The decoder never fails: malformed, headerless, or boundary-less input
// degrades to a plain-text view of whatever was received. It deliberately
// avoids mime/multipart, which rejects input this decoder must accept.
package decoder

import (
	"strings"

	"github.com/shineum/mail-forward-lite/internal/email"
)

const (
	typePlain     = "text/plain"
	typeHTML      = "text/html"
	multipartMark = "multipart"
)

// Decode splits a full message text into headers and body, resolves the
// declared content type, and disassembles multipart bodies into their
// text/plain and text/html sections.
func Decode(text string) email.DecodedContent {
	headers, body, ok := splitHeaderBody(text)
	if !ok {
		// No blank-line boundary anywhere: the whole text is the body.
		return email.DecodedContent{
			TextBody:    strings.TrimSpace(text),
			ContentType: typePlain,
		}
	}

	contentType := resolveContentType(headers)
	if strings.Contains(contentType, multipartMark) {
		if boundary := resolveBoundary(headers); boundary != "" {
			return disassemble(body, boundary, contentType)
		}
		// Declared multipart but no boundary: single-part fallback with
		// the declared type.
	}

	return email.DecodedContent{
		TextBody:    strings.TrimSpace(body),
		ContentType: contentType,
	}
}

// splitHeaderBody separates a message into its header block and body block
// at the first blank-line boundary (CRLF or LF line endings). The body keeps
// any further blank-line-separated segments, rejoined. ok is false when the
// text contains no boundary at all.
func splitHeaderBody(text string) (headers, body string, ok bool) {
	segments := splitOnBlankLines(text)
	if len(segments) < 2 {
		return "", "", false
	}
	return segments[0], strings.Join(segments[1:], "\n\n"), true
}

// splitOnBlankLines splits text on every blank-line boundary, treating
// "\r\n\r\n", "\r\n\n", "\n\r\n" and "\n\n" alike.
func splitOnBlankLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	var segments []string
	rest := normalized
	for {
		i := strings.Index(rest, "\n\n")
		if i < 0 {
			segments = append(segments, rest)
			return segments
		}
		segments = append(segments, rest[:i])
		rest = rest[i+2:]
	}
}

// resolveContentType extracts the declared content type from the header
// block, defaulting to text/plain. The result is trimmed and lowercased,
// with parameters stripped.
func resolveContentType(headers string) string {
	for _, line := range strings.Split(headers, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))
		if !strings.HasPrefix(lower, "content-type:") {
			continue
		}
		value := lower[len("content-type:"):]
		if i := strings.Index(value, ";"); i >= 0 {
			value = value[:i]
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return typePlain
}

// resolveBoundary extracts the multipart boundary token from the header
// block, stripping surrounding quotes. It returns "" when no boundary
// parameter is declared.
func resolveBoundary(headers string) string {
	const key = "boundary="

	i := indexFold(headers, key)
	if i < 0 {
		return ""
	}

	token := headers[i+len(key):]
	if j := strings.IndexAny(token, ";\r\n \t"); j >= 0 {
		token = token[:j]
	}
	return strings.Trim(token, `"'`)
}

// indexFold returns the index in s of the first case-insensitive
// occurrence of key, or -1. Searching and slicing operate on the same
// string, so surrounding non-ASCII text cannot skew the offset the way a
// lowered copy would.
func indexFold(s, key string) int {
	for i := 0; i+len(key) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(key)], key) {
			return i
		}
	}
	return -1
}

// disassemble splits a multipart body on its boundary token and resolves
// the final content via the three-way fallback chain:
//
//	textBody:    last text/plain section, else last text/html section,
//	             else the raw body trimmed
//	htmlBody:    last text/html section, else absent
//	contentType: text/plain if a plain section was found, else text/html
//	             if an HTML section was found, else the declared type
//
// Later sections of the same type overwrite earlier ones. Sections of any
// other type (attachments and the like) are ignored.
func disassemble(body, boundary, declaredType string) email.DecodedContent {
	var plain, html string

	for _, section := range strings.Split(body, "--"+boundary) {
		section = strings.TrimSpace(section)
		if section == "" || section == "--" {
			continue
		}

		header, fragment := splitSection(section)
		if fragment == "" {
			// A typed section with no content contributes nothing.
			continue
		}

		lower := strings.ToLower(header)
		switch {
		case strings.Contains(lower, typePlain):
			plain = fragment
		case strings.Contains(lower, typeHTML):
			html = fragment
		}
	}

	out := email.DecodedContent{ContentType: declaredType}
	switch {
	case plain != "":
		out.TextBody = plain
		out.ContentType = typePlain
	case html != "":
		out.TextBody = html
		out.ContentType = typeHTML
	default:
		out.TextBody = strings.TrimSpace(body)
	}
	out.HTMLBody = html

	return out
}

// splitSection splits one boundary-delimited section into its header
// fragment and body fragment at the first blank-line boundary. A section
// without a blank line has an empty body fragment.
func splitSection(section string) (header, fragment string) {
	segments := splitOnBlankLines(section)
	if len(segments) < 2 {
		return section, ""
	}
	return segments[0], strings.TrimSpace(strings.Join(segments[1:], "\n\n"))
}
