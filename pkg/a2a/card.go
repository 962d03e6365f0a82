package a2a

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SkillParameter describes one input of a skill, derived from the owning
// tool's declared parameter schema.
type SkillParameter struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
}

// Skill is one advertised capability of an agent. Agents expose one skill
// per resolved tool.
type Skill struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Parameters  []SkillParameter `json:"parameters,omitempty"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
}

// AgentProvider identifies the organization behind an agent.
type AgentProvider struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

/*
AgentCard is the discovery document advertising an agent's skills and
capabilities, served at /agents/{name}/agent.json.
*/
type AgentCard struct {
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	URL             string         `json:"url"`
	Version         string         `json:"version"`
	Skills          []Skill        `json:"skills"`
	ProtocolVersion string         `json:"protocol_version"`
	Authentication  map[string]any `json:"authentication,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	Provider        *AgentProvider `json:"provider,omitempty"`
}

func (card *AgentCard) String() string {
	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		Bold(true)

	indent := "   "
	bullet := "│ "

	sb.WriteString(headerStyle.Render("Agent Card") + "\n")
	sb.WriteString(bullet + labelStyle.Render("Name: ") + valueStyle.Render(card.Name) + "\n")
	if card.Description != "" {
		sb.WriteString(bullet + labelStyle.Render("Description: ") + valueStyle.Render(card.Description) + "\n")
	}
	sb.WriteString(bullet + labelStyle.Render("URL: ") + valueStyle.Render(card.URL) + "\n")
	sb.WriteString(bullet + labelStyle.Render("Version: ") + valueStyle.Render(card.Version) + "\n")

	if card.Provider != nil {
		sb.WriteString("\n" + sectionStyle.Render("Provider") + "\n")
		sb.WriteString(bullet + labelStyle.Render("Name: ") + valueStyle.Render(card.Provider.Name) + "\n")
		if card.Provider.URL != "" {
			sb.WriteString(bullet + labelStyle.Render("URL: ") + valueStyle.Render(card.Provider.URL) + "\n")
		}
	}

	if len(card.Skills) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("Skills") + "\n")
		for i, skill := range card.Skills {
			sb.WriteString(bullet + labelStyle.Render(fmt.Sprintf("Skill %d", i+1)) + "\n")
			sb.WriteString(bullet + indent + labelStyle.Render("ID: ") + valueStyle.Render(skill.ID) + "\n")
			sb.WriteString(bullet + indent + labelStyle.Render("Name: ") + valueStyle.Render(skill.Name) + "\n")
			if skill.Description != "" {
				sb.WriteString(bullet + indent + labelStyle.Render("Description: ") + valueStyle.Render(skill.Description) + "\n")
			}
			for _, param := range skill.Parameters {
				required := ""
				if param.Required {
					required = " (required)"
				}
				sb.WriteString(bullet + indent + indent + valueStyle.Render(
					fmt.Sprintf("%s: %s%s", param.Name, param.Type, required),
				) + "\n")
			}
		}
	}

	return sb.String()
}
