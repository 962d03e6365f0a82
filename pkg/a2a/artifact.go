package a2a

/*
Artifact is an opaque named payload produced by an agent during a task.
Data is base64 encoded.
*/
type Artifact struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	MimeType string         `json:"mime_type"`
	Data     string         `json:"data"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
