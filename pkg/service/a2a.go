package service

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/a2a"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/errors"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/registry"
)

// handleAgentCard serves the discovery document for one agent.
func (srv *Server) handleAgentCard(ctx fiber.Ctx) error {
	name := ctx.Params("name")

	record, err := srv.registry.Get(ctx, name)

	if err != nil {
		return respondError(ctx, err)
	}

	def, err := srv.registry.Definition(ctx, name)

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(srv.buildAgentCard(record, def))
}

// buildAgentCard projects a record and its definition into the capability
// advertisement: one skill per declared tool, with parameters derived from
// the tool's JSON-schema parameter shape.
func (srv *Server) buildAgentCard(
	record registry.AgentRecord, def registry.AgentDefinition,
) a2a.AgentCard {
	skills := make([]a2a.Skill, 0, len(def.Tools))

	for _, tool := range def.Tools {
		skills = append(skills, a2a.Skill{
			ID:          tool.Name,
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  skillParameters(tool.Parameters),
		})
	}

	return a2a.AgentCard{
		Name:            record.Name,
		Description:     record.Description,
		URL:             fmt.Sprintf("%s/a2a/agents/%s", srv.cfg.CardBaseURL, record.Name),
		Version:         "1.0.0",
		Skills:          skills,
		ProtocolVersion: "0.1",
		Provider: &a2a.AgentProvider{
			Name: "A2A Self-Service Platform",
			URL:  srv.cfg.CardBaseURL,
		},
		Metadata: map[string]any{
			"display_name": record.DisplayName,
			"status":       string(record.Status),
		},
	}
}

// skillParameters flattens a JSON-schema-like parameter shape into skill
// parameters, marking one required when the schema's required set lists it.
func skillParameters(schema map[string]any) []a2a.SkillParameter {
	properties, ok := schema["properties"].(map[string]any)

	if !ok {
		return nil
	}

	required := make(map[string]bool)

	switch reqs := schema["required"].(type) {
	case []string:
		for _, name := range reqs {
			required[name] = true
		}
	case []any:
		for _, name := range reqs {
			if s, ok := name.(string); ok {
				required[s] = true
			}
		}
	}

	params := make([]a2a.SkillParameter, 0, len(properties))

	for name, raw := range properties {
		info, _ := raw.(map[string]any)

		paramType := "string"
		if t, ok := info["type"].(string); ok {
			paramType = t
		}

		description, _ := info["description"].(string)

		params = append(params, a2a.SkillParameter{
			Name:        name,
			Description: description,
			Type:        paramType,
			Required:    required[name],
		})
	}

	return params
}

func (srv *Server) handleCreateTask(ctx fiber.Ctx) error {
	var req a2a.TaskCreateRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return respondError(ctx, errors.ErrValidation.WithMessagef("invalid task request: %v", err))
	}

	task, err := srv.tasks.CreateTask(ctx, ctx.Params("name"), req)

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(task)
}

func (srv *Server) handleGetTask(ctx fiber.Ctx) error {
	task, err := srv.tasks.GetTask(ctx, ctx.Params("id"))

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(task)
}

func (srv *Server) handleSendMessage(ctx fiber.Ctx) error {
	var req a2a.TaskSendMessageRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return respondError(ctx, errors.ErrValidation.WithMessagef("invalid message request: %v", err))
	}

	task, err := srv.tasks.SendMessage(ctx, ctx.Params("id"), req.Message)

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(task)
}

func (srv *Server) handleCancelTask(ctx fiber.Ctx) error {
	task, err := srv.tasks.CancelTask(ctx, ctx.Params("id"))

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(task)
}
