package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/errors"
)

func TestNewEngine_OpenAI(t *testing.T) {
	engine, err := NewEngine(Config{
		Provider:     ProviderOpenAI,
		OpenAIAPIKey: "sk-test",
	})

	require.NoError(t, err)
	assert.IsType(t, &OpenAIEngine{}, engine)
}

func TestNewEngine_DefaultsToOpenAI(t *testing.T) {
	engine, err := NewEngine(Config{OpenAIAPIKey: "sk-test"})

	require.NoError(t, err)
	assert.IsType(t, &OpenAIEngine{}, engine)
}

func TestNewEngine_MissingOpenAIKey(t *testing.T) {
	_, err := NewEngine(Config{Provider: ProviderOpenAI})

	require.Error(t, err)

	apiErr, ok := err.(*errors.ApiError)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.Status)
}

func TestNewEngine_MissingGoogleKey(t *testing.T) {
	_, err := NewEngine(Config{Provider: ProviderGoogle})

	require.Error(t, err)
}

func TestNewEngine_UnknownProvider(t *testing.T) {
	_, err := NewEngine(Config{Provider: "mistral"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral")
}
