package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
)

// Client talks to a running platform instance. It is what the CLI uses.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListAgents retrieves one page of registered agents.
func (client *Client) ListAgents(page, pageSize int) (*AgentListResponse, error) {
	url := fmt.Sprintf("%s/api/v1/agents?page=%d&page_size=%d", client.baseURL, page, pageSize)

	log.Debug("listing agents", "url", url)

	resp, err := client.httpClient.Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to connect to platform: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("platform returned status %d: %s", resp.StatusCode, string(body))
	}

	var out AgentListResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode agent list: %w", err)
	}

	return &out, nil
}

// GetAgentCard retrieves the discovery document for one agent.
func (client *Client) GetAgentCard(name string) (*a2a.AgentCard, error) {
	url := fmt.Sprintf("%s/a2a/agents/%s/agent.json", client.baseURL, name)

	resp, err := client.httpClient.Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to connect to platform: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("platform returned status %d: %s", resp.StatusCode, string(body))
	}

	var card a2a.AgentCard

	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("failed to decode agent card: %w", err)
	}

	return &card, nil
}
