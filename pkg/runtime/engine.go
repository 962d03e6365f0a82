package runtime

import (
	"context"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/catalog"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/errors"
)

// AgentSpec is what an engine needs to know about the agent it is running
// a turn for.
type AgentSpec struct {
	Name         string
	Model        string
	SystemPrompt string
	Tools        []catalog.Entry
}

/*
Engine is the execution collaborator that turns one conversation turn into
a sequence of response events. Implementations append both the user turn
and the agent reply to the session history, so the session carries the
full conversation across calls.
*/
type Engine interface {
	Run(ctx context.Context, spec AgentSpec, session *Session, text string) ([]Event, error)
}

// Provider names accepted in configuration.
const (
	ProviderOpenAI = "openai"
	ProviderGoogle = "google"
)

// Config holds the credentials and selection for the engine binding. The
// binding is chosen once at construction, never per agent.
type Config struct {
	Provider string

	OpenAIAPIKey  string
	OpenAIBaseURL string

	GoogleAPIKey string
}

// NewEngine selects and constructs the configured engine binding. It fails
// fast when the selected provider has no credentials.
func NewEngine(cfg Config) (Engine, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.ErrConfiguration.WithMessagef(
				"openai provider selected but no API key configured",
			)
		}
		return NewOpenAIEngine(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), nil
	case ProviderGoogle:
		if cfg.GoogleAPIKey == "" {
			return nil, errors.ErrConfiguration.WithMessagef(
				"google provider selected but no API key configured",
			)
		}
		return NewGoogleEngine(cfg.GoogleAPIKey)
	}

	return nil, errors.ErrConfiguration.WithMessagef(
		"unknown llm provider %q", cfg.Provider,
	)
}
