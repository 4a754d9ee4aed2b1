package forward

// Payload is the outbound request body for the transactional-mail send API.
type Payload struct {
	Personalizations []Personalization `json:"personalizations"`
	From             EmailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []ContentPart     `json:"content"`
}

// Personalization holds the recipient set for one delivery.
type Personalization struct {
	To []EmailAddress `json:"to"`
}

// EmailAddress is an address entry in the outbound payload.
type EmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ContentPart is one typed body representation of the outbound message.
type ContentPart struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// TextPart returns the text/plain content part. The composer always emits
// exactly one.
func (p *Payload) TextPart() (ContentPart, bool) {
	return p.part("text/plain")
}

// HTMLPart returns the text/html content part, if one was composed.
func (p *Payload) HTMLPart() (ContentPart, bool) {
	return p.part("text/html")
}

func (p *Payload) part(contentType string) (ContentPart, bool) {
	for _, c := range p.Content {
		if c.Type == contentType {
			return c, true
		}
	}
	return ContentPart{}, false
}
