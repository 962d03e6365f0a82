package service

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/errors"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/registry"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/runtime"
)

// AgentCreateRequest is the body of POST /api/v1/agents.
type AgentCreateRequest struct {
	Definition        registry.AgentDefinition `json:"definition"`
	DeployImmediately bool                     `json:"deploy_immediately"`
}

// AgentListResponse is the body of GET /api/v1/agents.
type AgentListResponse struct {
	Agents   []registry.AgentRecord `json:"agents"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// AgentInvokeRequest is the body of POST /api/v1/agents/{name}/invoke.
type AgentInvokeRequest struct {
	Message   string         `json:"message"`
	SessionID string         `json:"session_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// AgentInvokeResponse is the reply to an invocation.
type AgentInvokeResponse struct {
	Response  string         `json:"response"`
	SessionID string         `json:"session_id"`
	AgentName string         `json:"agent_name"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func (srv *Server) handleCreateAgent(ctx fiber.Ctx) error {
	var req AgentCreateRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return respondError(ctx, errors.ErrValidation.WithMessagef("invalid agent request: %v", err))
	}

	if req.Definition.Name == "" {
		return respondError(ctx, errors.ErrValidation.WithMessagef("agent name is required"))
	}

	record, err := srv.registry.Register(ctx, req.Definition, req.DeployImmediately)

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(record)
}

func (srv *Server) handleListAgents(ctx fiber.Ctx) error {
	page := fiber.Query(ctx, "page", 1)
	pageSize := fiber.Query(ctx, "page_size", 10)

	records, total, err := srv.registry.List(ctx, page, pageSize)

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(AgentListResponse{
		Agents:   records,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (srv *Server) handleGetAgent(ctx fiber.Ctx) error {
	record, err := srv.registry.Get(ctx, ctx.Params("name"))

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(record)
}

func (srv *Server) handleDeployAgent(ctx fiber.Ctx) error {
	record, err := srv.registry.Deploy(ctx, ctx.Params("name"))

	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(record)
}

func (srv *Server) handleDeleteAgent(ctx fiber.Ctx) error {
	if err := srv.registry.Delete(ctx, ctx.Params("name")); err != nil {
		return respondError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// handleInvokeAgent drives one exchange outside of any task, reusing the
// caller's session when a session id is supplied.
func (srv *Server) handleInvokeAgent(ctx fiber.Ctx) error {
	name := ctx.Params("name")

	var req AgentInvokeRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return respondError(ctx, errors.ErrValidation.WithMessagef("invalid invoke request: %v", err))
	}

	instance, ok := srv.registry.GetInstance(ctx, name)

	if !ok {
		return respondError(ctx, errors.ErrAgentNotFound.WithMessagef(
			"agent '%s' not found or not deployed", name,
		))
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session := srv.sessions.GetOrCreate(sessionID)
	events, err := instance.Run(ctx, session, req.Message)

	if err != nil {
		log.Error("agent invocation failed", "agent", name, "error", err)
		return respondError(ctx, errors.ErrInternal.WithMessagef(
			"failed to invoke agent '%s': %v", name, err,
		))
	}

	return ctx.JSON(AgentInvokeResponse{
		Response:  runtime.CollectText(events),
		SessionID: sessionID,
		AgentName: name,
		Metadata:  req.Context,
	})
}
