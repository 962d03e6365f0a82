package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
)

func TestCollectText(t *testing.T) {
	events := []Event{
		TextEvent{Text: "hello "},
		ContentEvent{Parts: []a2a.Part{
			a2a.NewTextPart("structured "),
			{Type: a2a.PartTypeFile, MimeType: "image/png", Data: "iQ=="},
		}},
		TextEvent{Text: "world"},
	}

	assert.Equal(t, "hello structured world", CollectText(events))
}

func TestCollectText_Empty(t *testing.T) {
	assert.Equal(t, "", CollectText(nil))
	assert.Equal(t, "", CollectText([]Event{}))
}

func TestCollectText_SkipsNonTextParts(t *testing.T) {
	events := []Event{
		ContentEvent{Parts: []a2a.Part{
			{Type: a2a.PartTypeFile, MimeType: "application/pdf", Data: "AQI="},
		}},
	}

	assert.Equal(t, "", CollectText(events))
}
