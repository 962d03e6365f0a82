package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/catalog"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/registry"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/runtime"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/tasks"
)

// stubEngine replies with a fixed text so handler tests run without any
// provider SDK.
type stubEngine struct {
	reply string
}

func (engine *stubEngine) Run(
	ctx context.Context, spec runtime.AgentSpec, session *runtime.Session, text string,
) ([]runtime.Event, error) {
	session.Append(a2a.NewTextMessage(a2a.RoleUser, text))
	session.Append(a2a.NewTextMessage(a2a.RoleAgent, engine.reply))

	return []runtime.Event{runtime.TextEvent{Text: engine.reply}}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cat := catalog.NewCatalog()
	catalog.RegisterBuiltinTools(cat)

	reg := registry.NewRegistry(
		registry.NewMemoryStore(),
		registry.NewFactory(cat, &stubEngine{reply: "stub reply"}),
		"http://localhost:8000",
	)

	sessions := runtime.NewSessionStore()
	manager := tasks.NewManager(tasks.NewMemoryStore(), reg, sessions)

	return NewServer(Config{
		Host:        "127.0.0.1",
		Port:        8000,
		Environment: "test",
		Version:     "1.0.0",
		BaseURL:     "http://localhost:8000",
		CardBaseURL: "https://agents.example.com",
	}, reg, manager, sessions)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.App().Test(req)
	require.NoError(t, err)

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createAgent(t *testing.T, srv *Server, name string, deploy bool) registry.AgentRecord {
	t.Helper()

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/agents", AgentCreateRequest{
		Definition: registry.AgentDefinition{
			Name:         name,
			DisplayName:  "Test Agent",
			Description:  "Handles test conversations",
			SystemPrompt: "You are helpful.",
			Tools: []registry.ToolDefinition{
				{
					Name:        "echo",
					Description: "Echo text",
					Parameters: map[string]any{
						"properties": map[string]any{
							"text": map[string]any{"type": "string", "description": "Text to echo"},
						},
						"required": []any{"text"},
					},
				},
			},
		},
		DeployImmediately: deploy,
	})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[registry.AgentRecord](t, resp)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decodeBody[HealthResponse](t, resp)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "1.0.0", health.Version)
	assert.Equal(t, "test", health.Environment)
}

func TestPlatformCard(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/.well-known/agent.json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	card := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "A2A Self-Service Platform", card["name"])
	assert.Equal(t, "https://agents.example.com", card["url"])
}

func TestCreateAgent(t *testing.T) {
	srv := newTestServer(t)

	record := createAgent(t, srv, "assistant", false)
	assert.Equal(t, "assistant", record.Name)
	assert.Equal(t, registry.StatusDraft, record.Status)
	assert.Empty(t, record.A2AEndpoint)
}

func TestCreateAgent_DeployImmediately(t *testing.T) {
	srv := newTestServer(t)

	record := createAgent(t, srv, "assistant", true)
	assert.Equal(t, registry.StatusActive, record.Status)
	assert.Equal(t, "http://localhost:8000/api/v1/agents/assistant/invoke", record.A2AEndpoint)
}

func TestCreateAgent_MissingName(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/agents", AgentCreateRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAgents(t *testing.T) {
	srv := newTestServer(t)

	for i := range 3 {
		createAgent(t, srv, fmt.Sprintf("agent-%d", i), false)
	}

	resp := doJSON(t, srv, http.MethodGet, "/api/v1/agents?page=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decodeBody[AgentListResponse](t, resp)
	assert.Equal(t, 3, list.Total)
	assert.Len(t, list.Agents, 2)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 2, list.PageSize)
}

func TestGetAgent(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", false)

	resp := doJSON(t, srv, http.MethodGet, "/api/v1/agents/assistant", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	record := decodeBody[registry.AgentRecord](t, resp)
	assert.Equal(t, "assistant", record.Name)

	resp = doJSON(t, srv, http.MethodGet, "/api/v1/agents/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeployAgent(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", false)

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/agents/assistant/deploy", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	record := decodeBody[registry.AgentRecord](t, resp)
	assert.Equal(t, registry.StatusActive, record.Status)
	assert.NotEmpty(t, record.A2AEndpoint)

	resp = doJSON(t, srv, http.MethodPost, "/api/v1/agents/ghost/deploy", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteAgent(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", false)

	resp := doJSON(t, srv, http.MethodDelete, "/api/v1/agents/assistant", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodDelete, "/api/v1/agents/assistant", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvokeAgent(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", true)

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/agents/assistant/invoke", AgentInvokeRequest{
		Message: "hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody[AgentInvokeResponse](t, resp)
	assert.Equal(t, "stub reply", out.Response)
	assert.Equal(t, "assistant", out.AgentName)
	assert.NotEmpty(t, out.SessionID)
}

func TestInvokeAgent_NotDeployed(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", false)

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/agents/assistant/invoke", AgentInvokeRequest{
		Message: "hello",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAgentCard(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", true)

	resp := doJSON(t, srv, http.MethodGet, "/a2a/agents/assistant/agent.json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	card := decodeBody[a2a.AgentCard](t, resp)
	assert.Equal(t, "assistant", card.Name)
	assert.Equal(t, "https://agents.example.com/a2a/agents/assistant", card.URL)
	assert.Equal(t, "0.1", card.ProtocolVersion)
	require.Len(t, card.Skills, 1)
	assert.Equal(t, "echo", card.Skills[0].ID)
	require.Len(t, card.Skills[0].Parameters, 1)
	assert.Equal(t, "text", card.Skills[0].Parameters[0].Name)
	assert.True(t, card.Skills[0].Parameters[0].Required)

	resp = doJSON(t, srv, http.MethodGet, "/a2a/agents/ghost/agent.json", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", true)

	resp := doJSON(t, srv, http.MethodPost, "/a2a/agents/assistant/tasks", a2a.TaskCreateRequest{
		Message: a2a.NewTextMessage(a2a.RoleUser, "hi"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	task := decodeBody[a2a.Task](t, resp)
	assert.Equal(t, a2a.TaskStateCompleted, task.State)
	require.Len(t, task.Messages, 2)
	assert.Equal(t, "stub reply", task.Messages[1].Text())

	// Fetch it back.
	resp = doJSON(t, srv, http.MethodGet, "/a2a/agents/assistant/tasks/"+task.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Follow-up message continues the conversation.
	resp = doJSON(t, srv, http.MethodPost,
		"/a2a/agents/assistant/tasks/"+task.ID+"/messages",
		a2a.TaskSendMessageRequest{Message: a2a.NewTextMessage(a2a.RoleUser, "more")},
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	task = decodeBody[a2a.Task](t, resp)
	assert.Len(t, task.Messages, 4)

	// Cancel, then follow-ups are rejected.
	resp = doJSON(t, srv, http.MethodPost,
		"/a2a/agents/assistant/tasks/"+task.ID+"/cancel", nil,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	task = decodeBody[a2a.Task](t, resp)
	assert.Equal(t, a2a.TaskStateCanceled, task.State)

	resp = doJSON(t, srv, http.MethodPost,
		"/a2a/agents/assistant/tasks/"+task.ID+"/messages",
		a2a.TaskSendMessageRequest{Message: a2a.NewTextMessage(a2a.RoleUser, "late")},
	)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTask_NotFound(t *testing.T) {
	srv := newTestServer(t)
	createAgent(t, srv, "assistant", true)

	resp := doJSON(t, srv, http.MethodGet, "/a2a/agents/assistant/tasks/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateTask_UnknownAgent(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/a2a/agents/ghost/tasks", a2a.TaskCreateRequest{
		Message: a2a.NewTextMessage(a2a.RoleUser, "hi"),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
