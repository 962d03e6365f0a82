package runtime

import (
	"strings"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
)

/*
Event is the tagged union of response events an engine emits while
processing a turn. Consumers switch on the concrete type instead of
probing for fields.
*/
type Event interface {
	isEvent()
}

// TextEvent carries a flat fragment of response text.
type TextEvent struct {
	Text string
}

// ContentEvent carries structured content made of message parts, as emitted
// by engines that respond with multi-part payloads.
type ContentEvent struct {
	Parts []a2a.Part
}

func (TextEvent) isEvent()    {}
func (ContentEvent) isEvent() {}

// CollectText folds a sequence of events into one aggregate reply string,
// concatenating every text fragment in order.
func CollectText(events []Event) string {
	var sb strings.Builder

	for _, event := range events {
		switch e := event.(type) {
		case TextEvent:
			sb.WriteString(e.Text)
		case ContentEvent:
			for _, part := range e.Parts {
				if part.Type == a2a.PartTypeText {
					sb.WriteString(part.Text)
				}
			}
		}
	}

	return sb.String()
}
