package a2a

/*
Part is a discriminated union over text and binary content. We keep it
simple by embedding all optional fields in a single struct, which avoids
heavy custom JSON marshalling while staying protocol compliant.

Exactly one of Text or Data should be populated according to the Type
field. This is not enforced at the struct level; file parts arrive from
clients as JSON with Data already base64 encoded.
*/
type Part struct {
	Type PartType `json:"type"`

	Text string `json:"text,omitempty"`
	// Data is base64 encoded binary content.
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// PartType is the discriminator for a Part union.
type PartType string

const (
	PartTypeText PartType = "text"
	PartTypeFile PartType = "file"
)

func NewTextPart(text string) Part {
	return Part{
		Type: PartTypeText,
		Text: text,
	}
}
