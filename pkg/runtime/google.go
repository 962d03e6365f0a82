package runtime

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/catalog"
)

/*
GoogleEngine runs conversation turns against the Gemini API, executing
function calls through the catalog handlers until the model produces a
final text reply. Structured candidate content surfaces as ContentEvents.
*/
type GoogleEngine struct {
	client *genai.Client
}

func NewGoogleEngine(apiKey string) (*GoogleEngine, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})

	if err != nil {
		return nil, err
	}

	return &GoogleEngine{client: client}, nil
}

func (engine *GoogleEngine) Run(
	ctx context.Context, spec AgentSpec, session *Session, text string,
) ([]Event, error) {
	session.Append(a2a.NewTextMessage(a2a.RoleUser, text))

	contents := convertGoogleHistory(session.History())

	config := &genai.GenerateContentConfig{
		Tools: convertGoogleTools(spec.Tools),
	}

	if spec.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: spec.SystemPrompt}},
		}
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := engine.client.Models.GenerateContent(ctx, spec.Model, contents, config)

		if err != nil {
			return nil, err
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return nil, fmt.Errorf("generation returned no candidates")
		}

		content := resp.Candidates[0].Content
		calls := functionCalls(content)

		if len(calls) == 0 {
			events := contentEvents(content)
			session.Append(a2a.NewTextMessage(a2a.RoleAgent, CollectText(events)))
			return events, nil
		}

		contents = append(contents, content)
		responseParts := make([]*genai.Part, 0, len(calls))

		for _, call := range calls {
			result, err := dispatchGoogleCall(ctx, spec.Tools, call)

			responseMap := map[string]any{"content": result}
			if err != nil {
				log.Error("tool call failed", "tool", call.Name, "error", err)
				responseMap["error"] = map[string]any{"message": err.Error()}
			}

			responseParts = append(responseParts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: responseMap,
				},
			})
		}

		contents = append(contents, &genai.Content{Role: "user", Parts: responseParts})
	}

	return nil, fmt.Errorf("tool loop exceeded %d rounds", maxToolRounds)
}

func dispatchGoogleCall(
	ctx context.Context, tools []catalog.Entry, call *genai.FunctionCall,
) (string, error) {
	for _, entry := range tools {
		if entry.Tool.Name == call.Name {
			return entry.Handler(ctx, call.Args)
		}
	}

	return "", fmt.Errorf("unknown tool called: %s", call.Name)
}

func functionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall

	for _, part := range content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}

	return calls
}

// contentEvents maps a candidate's parts onto the event model: one
// ContentEvent carrying every text part, preserving part boundaries.
func contentEvents(content *genai.Content) []Event {
	parts := make([]a2a.Part, 0, len(content.Parts))

	for _, part := range content.Parts {
		if part.Text != "" {
			parts = append(parts, a2a.NewTextPart(part.Text))
		}
	}

	return []Event{ContentEvent{Parts: parts}}
}

func convertGoogleHistory(history []a2a.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))

	for _, msg := range history {
		role := "user"
		if msg.Role == a2a.RoleAgent {
			role = "model"
		}

		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Text()}},
		})
	}

	return out
}

func convertGoogleTools(tools []catalog.Entry) []*genai.Tool {
	out := make([]*genai.Tool, 0, len(tools))

	for _, entry := range tools {
		properties := make(map[string]*genai.Schema)
		var required []string

		if entry.Tool.InputSchema.Type == "object" {
			required = entry.Tool.InputSchema.Required

			for name, raw := range entry.Tool.InputSchema.Properties {
				propMap, ok := raw.(map[string]any)
				if !ok {
					log.Warn("skipping tool property with unexpected shape", "tool", entry.Tool.Name, "property", name)
					continue
				}

				schemaType := genai.TypeString
				if typeStr, ok := propMap["type"].(string); ok {
					switch typeStr {
					case "number":
						schemaType = genai.TypeNumber
					case "integer":
						schemaType = genai.TypeInteger
					case "boolean":
						schemaType = genai.TypeBoolean
					case "array":
						schemaType = genai.TypeArray
					case "object":
						schemaType = genai.TypeObject
					}
				}

				description, _ := propMap["description"].(string)
				properties[name] = &genai.Schema{
					Type:        schemaType,
					Description: description,
				}
			}
		}

		out = append(out, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        entry.Tool.Name,
				Description: entry.Tool.Description,
				Parameters: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: properties,
					Required:   required,
				},
			}},
		})
	}

	return out
}
