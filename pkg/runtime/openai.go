package runtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/catalog"
)

// maxToolRounds caps the tool-call loop for a single turn.
const maxToolRounds = 8

/*
OpenAIEngine runs conversation turns against the OpenAI chat completions
API (or an Azure OpenAI deployment via base URL override), executing tool
calls through the catalog handlers until the model produces a final text
reply.
*/
type OpenAIEngine struct {
	client openai.Client
}

func NewOpenAIEngine(apiKey, baseURL string) *OpenAIEngine {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIEngine{client: openai.NewClient(opts...)}
}

func (engine *OpenAIEngine) Run(
	ctx context.Context, spec AgentSpec, session *Session, text string,
) ([]Event, error) {
	session.Append(a2a.NewTextMessage(a2a.RoleUser, text))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(spec.Model),
		Messages: convertHistory(spec.SystemPrompt, session.History()),
		Tools:    convertTools(spec.Tools),
	}

	for round := 0; round < maxToolRounds; round++ {
		completion, err := engine.client.Chat.Completions.New(ctx, params)

		if err != nil {
			return nil, err
		}

		if len(completion.Choices) == 0 {
			return nil, fmt.Errorf("completion returned no choices")
		}

		msg := completion.Choices[0].Message

		if len(msg.ToolCalls) == 0 {
			session.Append(a2a.NewTextMessage(a2a.RoleAgent, msg.Content))
			return []Event{TextEvent{Text: msg.Content}}, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())

		for _, tc := range msg.ToolCalls {
			result, err := dispatchToolCall(ctx, spec.Tools, tc.Function.Name, tc.Function.Arguments)

			if err != nil {
				// The model sees the failure and may recover; the turn
				// itself keeps going.
				log.Error("tool call failed", "tool", tc.Function.Name, "error", err)
				result = fmt.Sprintf("Error: %s", err.Error())
			}

			params.Messages = append(params.Messages, openai.ToolMessage(result, tc.ID))
		}
	}

	return nil, fmt.Errorf("tool loop exceeded %d rounds", maxToolRounds)
}

func dispatchToolCall(
	ctx context.Context, tools []catalog.Entry, name, rawArgs string,
) (string, error) {
	var entry catalog.Entry
	found := false

	for _, tool := range tools {
		if tool.Tool.Name == name {
			entry = tool
			found = true
			break
		}
	}

	if !found {
		return "", fmt.Errorf("unknown tool called: %s", name)
	}

	args := make(map[string]any)

	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return "", fmt.Errorf("malformed tool args: %w", err)
		}
	}

	return entry.Handler(ctx, args)
}

func convertHistory(
	systemPrompt string, history []a2a.Message,
) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)

	if systemPrompt != "" {
		out = append(out, openai.SystemMessage(systemPrompt))
	}

	for _, msg := range history {
		switch msg.Role {
		case a2a.RoleAgent:
			out = append(out, openai.AssistantMessage(msg.Text()))
		default:
			out = append(out, openai.UserMessage(msg.Text()))
		}
	}

	return out
}

func convertTools(tools []catalog.Entry) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(tools))

	for _, entry := range tools {
		var paramSchema map[string]any

		if entry.Tool.RawInputSchema != nil {
			_ = json.Unmarshal(entry.Tool.RawInputSchema, &paramSchema)
		} else {
			b, _ := json.Marshal(entry.Tool.InputSchema)
			_ = json.Unmarshal(b, &paramSchema)
		}

		out = append(out, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        entry.Tool.Name,
				Description: openai.String(entry.Tool.Description),
				Parameters:  openai.FunctionParameters(paramSchema),
			},
		})
	}

	return out
}
