package registry

import "time"

/*
AgentStatus enumerates the lifecycle states of a registered agent.

Registration starts an agent in draft. Deployment moves it through
deploying to active, or to failed with the error recorded. There is no
transition back to draft; a failed agent stays failed until redeployed.
Inactive is reserved for future use and is not reachable today.
*/
type AgentStatus string

const (
	StatusDraft     AgentStatus = "draft"
	StatusDeploying AgentStatus = "deploying"
	StatusActive    AgentStatus = "active"
	StatusInactive  AgentStatus = "inactive"
	StatusFailed    AgentStatus = "failed"
)

// ToolDefinition references a catalog tool by name and carries the declared
// parameter schema the agent card advertises. The callable itself always
// comes from the catalog.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

/*
AgentDefinition is the declarative form of an agent. It is immutable once
registered; re-registering the same name overwrites the previous
definition. Sub-agents are referenced by name and resolved at deployment
time against the already-deployed instances.
*/
type AgentDefinition struct {
	Name         string           `json:"name"`
	DisplayName  string           `json:"display_name"`
	Description  string           `json:"description"`
	SystemPrompt string           `json:"system_prompt"`
	Model        string           `json:"model,omitempty"`
	Tools        []ToolDefinition `json:"tools,omitempty"`
	SubAgents    []string         `json:"sub_agents,omitempty"`
	Metadata     map[string]any   `json:"metadata,omitempty"`
}

// DefaultModel is assumed when a definition does not name one.
const DefaultModel = "gpt-4o"

// ModelOrDefault returns the definition's model, falling back to
// DefaultModel.
func (def *AgentDefinition) ModelOrDefault() string {
	if def.Model == "" {
		return DefaultModel
	}
	return def.Model
}

/*
AgentRecord is the registry's view of a registered agent: the definition
metadata plus lifecycle status, timestamps and the derived invocation
endpoint. It is what both API surfaces return for an agent.
*/
type AgentRecord struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	DisplayName string         `json:"display_name"`
	Description string         `json:"description"`
	Status      AgentStatus    `json:"status"`
	A2AEndpoint string         `json:"a2a_endpoint,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
