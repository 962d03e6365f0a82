package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/errors"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/registry"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/runtime"
	"github.com/GeoPark-hackers/a2a-agent-selfservice/pkg/tasks"
)

// Config carries the settings the HTTP surfaces need.
type Config struct {
	Host        string
	Port        int
	Environment string
	Version     string

	// BaseURL is where the management API is reachable; invocation
	// endpoints derive from it.
	BaseURL string
	// CardBaseURL is the externally visible base advertised on agent
	// cards, which differs per deployment stage.
	CardBaseURL string
}

/*
Server exposes the platform over two parallel surfaces: the management API
under /api/v1 and the A2A protocol under /a2a. Both act on the same
registry and task manager; neither holds state of its own.
*/
type Server struct {
	app      *fiber.App
	cfg      Config
	registry *registry.Registry
	tasks    *tasks.Manager
	sessions *runtime.SessionStore
}

func NewServer(
	cfg Config,
	reg *registry.Registry,
	manager *tasks.Manager,
	sessions *runtime.SessionStore,
) *Server {
	srv := &Server{
		app: fiber.New(fiber.Config{
			AppName:      "A2A Agent Self-Service",
			ServerHeader: "A2A-Selfservice",
		}),
		cfg:      cfg,
		registry: reg,
		tasks:    manager,
		sessions: sessions,
	}

	srv.registerRoutes()
	return srv
}

func (srv *Server) registerRoutes() {
	srv.app.Use(logger.New())

	srv.app.Get("/", func(ctx fiber.Ctx) error {
		return ctx.Redirect().To("/.well-known/agent.json")
	})
	srv.app.Get("/health", srv.handleHealth)
	srv.app.Get("/.well-known/agent.json", srv.handlePlatformCard)

	api := srv.app.Group("/api/v1")
	api.Post("/agents", srv.handleCreateAgent)
	api.Get("/agents", srv.handleListAgents)
	api.Get("/agents/:name", srv.handleGetAgent)
	api.Post("/agents/:name/deploy", srv.handleDeployAgent)
	api.Delete("/agents/:name", srv.handleDeleteAgent)
	api.Post("/agents/:name/invoke", srv.handleInvokeAgent)

	a2aGroup := srv.app.Group("/a2a")
	a2aGroup.Get("/agents/:name/agent.json", srv.handleAgentCard)
	a2aGroup.Post("/agents/:name/tasks", srv.handleCreateTask)
	a2aGroup.Get("/agents/:name/tasks/:id", srv.handleGetTask)
	a2aGroup.Post("/agents/:name/tasks/:id/messages", srv.handleSendMessage)
	a2aGroup.Post("/agents/:name/tasks/:id/cancel", srv.handleCancelTask)
}

// Listen blocks serving the configured address.
func (srv *Server) Listen() error {
	return srv.app.Listen(
		fmt.Sprintf("%s:%d", srv.cfg.Host, srv.cfg.Port),
		fiber.ListenConfig{DisableStartupMessage: true},
	)
}

// App exposes the fiber app, used by tests to issue in-process requests.
func (srv *Server) App() *fiber.App {
	return srv.app
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
}

func (srv *Server) handleHealth(ctx fiber.Ctx) error {
	return ctx.JSON(HealthResponse{
		Status:      "healthy",
		Version:     srv.cfg.Version,
		Environment: srv.cfg.Environment,
		Timestamp:   time.Now().UTC(),
	})
}

// handlePlatformCard serves the platform-level discovery document.
func (srv *Server) handlePlatformCard(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"name":             "A2A Self-Service Platform",
		"description":      "Platform for creating and managing AI agents",
		"url":              srv.cfg.CardBaseURL,
		"version":          srv.cfg.Version,
		"protocol_version": "0.1",
		"agents_endpoint":  "/api/v1/agents",
		"a2a_base":         "/a2a",
	})
}

// respondError maps platform errors onto HTTP responses. Anything that is
// not an ApiError is an unclassified failure and maps to a 500 with the
// error text included.
func respondError(ctx fiber.Ctx, err error) error {
	if apiErr, ok := err.(*errors.ApiError); ok {
		return ctx.Status(apiErr.Status).JSON(fiber.Map{"detail": apiErr.Message})
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
}
